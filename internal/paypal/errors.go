package paypal

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx answer from PayPal. Name, Message, DebugID and Details
// are filled from PayPal's error body when it has one.
type APIError struct {
	StatusCode int           `json:"status"`
	Name       string        `json:"name,omitempty"`
	Message    string        `json:"message,omitempty"`
	DebugID    string        `json:"debug_id,omitempty"`
	Details    []ErrorDetail `json:"details,omitempty"`
	Body       string        `json:"-"`
}

type ErrorDetail struct {
	Field       string `json:"field,omitempty"`
	Value       string `json:"value,omitempty"`
	Location    string `json:"location,omitempty"`
	Issue       string `json:"issue,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e *APIError) Error() string {
	if e.Name != "" || e.Message != "" {
		return fmt.Sprintf("paypal API error: status %d, %s: %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("paypal API error: status %d, body: %s", e.StatusCode, e.Body)
}

// newAPIError decodes both the Orders error shape (name/message/details) and
// the OAuth shape (error/error_description).
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}

	var parsed struct {
		Name             string        `json:"name"`
		Message          string        `json:"message"`
		DebugID          string        `json:"debug_id"`
		Details          []ErrorDetail `json:"details"`
		Error            string        `json:"error"`
		ErrorDescription string        `json:"error_description"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}

	apiErr.Name = parsed.Name
	apiErr.Message = parsed.Message
	apiErr.DebugID = parsed.DebugID
	apiErr.Details = parsed.Details
	if apiErr.Name == "" {
		apiErr.Name = parsed.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = parsed.ErrorDescription
	}
	return apiErr
}
