package domain

import "time"

// StoreItem is a purchasable color. ID is the 6-digit hex code, used both as
// the swatch and as the SKU sent to PayPal.
type StoreItem struct {
	ID    string `json:"id" binding:"required,len=6,hexadecimal,excludesall=xX"`
	Name  string `json:"name" binding:"required"`
	Price string `json:"price" binding:"required"`
}

// CartItem is a StoreItem the user selected; ids are unique within a cart
type CartItem = StoreItem

// Customer is the buyer contact block of the checkout form
type Customer struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// Shipping is the free-text shipping address; Country is a country name, not a code
type Shipping struct {
	Address1 string `json:"address1" validate:"required"`
	Address2 string `json:"address2"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	ZipCode  string `json:"zipCode" validate:"required,numeric,min=5"`
	Country  string `json:"country" validate:"required"`
}

// FullName joins first and last name the way PayPal's shipping.name expects
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// IdempotencyKey maps a client Idempotency-Key to the PayPal order it created
type IdempotencyKey struct {
	Key         string    `json:"key"`
	RequestHash string    `json:"request_hash"`
	OrderID     string    `json:"order_id"`
	CreatedAt   time.Time `json:"created_at"`
}
