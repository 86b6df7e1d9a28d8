package storefront

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CheckoutForm collects customer and shipping fields before payment
type CheckoutForm struct {
	Customer domain.Customer `validate:"required"`
	Shipping domain.Shipping `validate:"required"`
}

// NewCheckoutForm returns the form pre-filled with the demo buyer
func NewCheckoutForm() *CheckoutForm {
	return &CheckoutForm{
		Customer: domain.Customer{
			FirstName: "John",
			LastName:  "Doe",
			Phone:     "+1 (484) 473-1088",
			Email:     "john@doe.email",
		},
		Shipping: domain.Shipping{
			Address1: "2211 North First Street",
			Address2: "Paypal Headquarters",
			City:     "San Jose",
			State:    "CA",
			ZipCode:  "95131",
			Country:  "United States",
		},
	}
}

// FormFields lists the names Set accepts, in display order
var FormFields = []string{
	"firstName", "lastName", "phone", "email",
	"address1", "address2", "city", "zipCode", "state", "country",
}

// Set edits one field by its JSON name
func (f *CheckoutForm) Set(field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case "firstName":
		f.Customer.FirstName = value
	case "lastName":
		f.Customer.LastName = value
	case "phone":
		f.Customer.Phone = value
	case "email":
		f.Customer.Email = value
	case "address1":
		f.Shipping.Address1 = value
	case "address2":
		f.Shipping.Address2 = value
	case "city":
		f.Shipping.City = value
	case "state":
		f.Shipping.State = value
	case "zipCode":
		f.Shipping.ZipCode = value
	case "country":
		f.Shipping.Country = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Get returns one field by its JSON name
func (f *CheckoutForm) Get(field string) string {
	switch field {
	case "firstName":
		return f.Customer.FirstName
	case "lastName":
		return f.Customer.LastName
	case "phone":
		return f.Customer.Phone
	case "email":
		return f.Customer.Email
	case "address1":
		return f.Shipping.Address1
	case "address2":
		return f.Shipping.Address2
	case "city":
		return f.Shipping.City
	case "state":
		return f.Shipping.State
	case "zipCode":
		return f.Shipping.ZipCode
	case "country":
		return f.Shipping.Country
	}
	return ""
}

// Validate checks every field. The returned *errors.ErrValidation maps each
// failing field's JSON name to the rule it broke.
func (f *CheckoutForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonName(fe.Field())] = fe.Tag()
	}
	return &errors.ErrValidation{Message: "checkout form is incomplete", Fields: fields}
}

func jsonName(structField string) string {
	if structField == "" {
		return structField
	}
	// Address1 -> address1, ZipCode -> zipCode
	return strings.ToLower(structField[:1]) + structField[1:]
}
