package domain

// Currency is fixed for the whole store
const Currency = "USD"

// OrderIntent is the PayPal order intent
type OrderIntent string

const (
	OrderIntentCapture   OrderIntent = "CAPTURE"
	OrderIntentAuthorize OrderIntent = "AUTHORIZE"
)

// OrderStatus is the PayPal Orders v2 status
type OrderStatus string

const (
	OrderStatusCreated             OrderStatus = "CREATED"
	OrderStatusSaved               OrderStatus = "SAVED"
	OrderStatusApproved            OrderStatus = "APPROVED"
	OrderStatusVoided              OrderStatus = "VOIDED"
	OrderStatusCompleted           OrderStatus = "COMPLETED"
	OrderStatusPayerActionRequired OrderStatus = "PAYER_ACTION_REQUIRED"
)

// IsValid checks if the order status is one PayPal documents
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated,
		OrderStatusSaved,
		OrderStatusApproved,
		OrderStatusVoided,
		OrderStatusCompleted,
		OrderStatusPayerActionRequired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further capture is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusVoided
}
