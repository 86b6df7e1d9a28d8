package paypal

import "encoding/json"

// Field names below follow the PayPal Orders v2 contract and must not change.

// OrderRequest is the body of POST /v2/checkout/orders
type OrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
	PaymentSource *PaymentSource `json:"payment_source,omitempty"`
}

type PurchaseUnit struct {
	ReferenceID string    `json:"reference_id,omitempty"`
	Amount      Amount    `json:"amount"`
	Items       []Item    `json:"items,omitempty"`
	Shipping    *Shipping `json:"shipping,omitempty"`
}

type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type Amount struct {
	CurrencyCode string     `json:"currency_code"`
	Value        string     `json:"value"`
	Breakdown    *Breakdown `json:"breakdown,omitempty"`
}

type Breakdown struct {
	ItemTotal Money `json:"item_total"`
	Shipping  Money `json:"shipping"`
	TaxTotal  Money `json:"tax_total"`
	Discount  Money `json:"discount"`
}

type Item struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	SKU        string `json:"sku,omitempty"`
	Category   string `json:"category,omitempty"`
	UnitAmount Money  `json:"unit_amount"`
}

type Shipping struct {
	Name    *ShippingName `json:"name,omitempty"`
	Address *Address      `json:"address,omitempty"`
}

type ShippingName struct {
	FullName string `json:"full_name"`
}

type Address struct {
	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	AdminArea2   string `json:"admin_area_2,omitempty"`
	AdminArea1   string `json:"admin_area_1,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

type PaymentSource struct {
	PayPal *PayPalSource `json:"paypal,omitempty"`
}

type PayPalSource struct {
	ExperienceContext *ExperienceContext `json:"experience_context,omitempty"`
	EmailAddress      string             `json:"email_address,omitempty"`
	Name              *PayerName         `json:"name,omitempty"`
	Phone             *Phone             `json:"phone,omitempty"`
	Address           *Address           `json:"address,omitempty"`
}

type ExperienceContext struct {
	PaymentMethodPreference string `json:"payment_method_preference,omitempty"`
	UserAction              string `json:"user_action,omitempty"`
	BrandName               string `json:"brand_name,omitempty"`
	Locale                  string `json:"locale,omitempty"`
	ShippingPreference      string `json:"shipping_preference,omitempty"`
	ReturnURL               string `json:"return_url,omitempty"`
	CancelURL               string `json:"cancel_url,omitempty"`
}

type PayerName struct {
	GivenName string `json:"given_name,omitempty"`
	Surname   string `json:"surname,omitempty"`
}

type Phone struct {
	PhoneType   string      `json:"phone_type,omitempty"`
	PhoneNumber PhoneNumber `json:"phone_number"`
}

type PhoneNumber struct {
	NationalNumber string `json:"national_number"`
}

// Order is the subset of a PayPal order the gateway reads. Raw keeps the full body.
type Order struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Links  []Link          `json:"links,omitempty"`
	Raw    json.RawMessage `json:"-"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// ApproveURL returns the payer-action link PayPal hands back for redirect flows
func (o *Order) ApproveURL() string {
	for _, l := range o.Links {
		if l.Rel == "payer-action" || l.Rel == "approve" {
			return l.Href
		}
	}
	return ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
