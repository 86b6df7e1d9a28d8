package service

import "github.com/decalcomanie/colorstore/internal/domain"

// CreateOrderRequest is the body of POST /api/create-order
type CreateOrderRequest struct {
	Items    []domain.StoreItem `json:"items" binding:"required,min=1,dive"`
	Customer domain.Customer    `json:"customer"`
	Shipping domain.Shipping    `json:"shipping"`
}

// CreateOrderResponse carries the PayPal order id back to the storefront
type CreateOrderResponse struct {
	Order string `json:"order"`
}

// CaptureOrderRequest is the body of POST /api/capture-order.
// orderId is accepted for older storefront builds.
type CaptureOrderRequest struct {
	Order   string `json:"order"`
	OrderID string `json:"orderId"`
}

// ID returns whichever order id field was set
func (r CaptureOrderRequest) ID() string {
	if r.Order != "" {
		return r.Order
	}
	return r.OrderID
}
