package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/decalcomanie/colorstore/internal/country"
	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/internal/paypal"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

// PayloadOptions are the store-wide settings copied into experience_context
type PayloadOptions struct {
	BrandName string
	Locale    string
	ReturnURL string
	CancelURL string
}

// CartTotal sums item prices. Prices are decimal strings with at most two
// decimals; anything else is a validation error.
func CartTotal(items []domain.StoreItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, item := range items {
		price, err := parsePrice(item.Price)
		if err != nil {
			return decimal.Zero, &errors.ErrValidation{
				Message: fmt.Sprintf("invalid price for item %s", item.ID),
				Fields:  map[string]string{fmt.Sprintf("items[%d].price", i): err.Error()},
			}
		}
		total = total.Add(price)
	}
	return total, nil
}

// FormatAmount renders money with exactly two decimals
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price: %q", s)
	}
	// Whole cents only; unit amounts must sum to item_total exactly
	if !price.Equal(price.Truncate(2)) {
		return decimal.Zero, fmt.Errorf("more than two decimals: %q", s)
	}
	return price, nil
}

// NormalizePhone keeps digits and a single leading '+'
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	if strings.HasPrefix(phone, "+") {
		b.WriteByte('+')
	}
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildOrderPayload turns a checkout submission into a PayPal Orders v2 body
func BuildOrderPayload(req CreateOrderRequest, opts PayloadOptions) (*paypal.OrderRequest, error) {
	if len(req.Items) == 0 {
		return nil, &errors.ErrValidation{Message: "cart is empty"}
	}

	total, err := CartTotal(req.Items)
	if err != nil {
		return nil, err
	}
	value := FormatAmount(total)

	items := make([]paypal.Item, len(req.Items))
	for i, item := range req.Items {
		price, _ := parsePrice(item.Price)
		items[i] = paypal.Item{
			Name:       item.Name,
			Quantity:   "1",
			SKU:        item.ID,
			UnitAmount: usd(FormatAmount(price)),
		}
	}

	// A miss leaves country_code out; PayPal gets to reject it
	countryCode, _ := country.Code(req.Shipping.Country)
	address := &paypal.Address{
		AddressLine1: req.Shipping.Address1,
		AddressLine2: req.Shipping.Address2,
		AdminArea2:   req.Shipping.City,
		AdminArea1:   req.Shipping.State,
		PostalCode:   req.Shipping.ZipCode,
		CountryCode:  countryCode,
	}

	source := &paypal.PayPalSource{
		ExperienceContext: &paypal.ExperienceContext{
			PaymentMethodPreference: "IMMEDIATE_PAYMENT_REQUIRED",
			UserAction:              "PAY_NOW",
			BrandName:               opts.BrandName,
			Locale:                  opts.Locale,
			ShippingPreference:      "SET_PROVIDED_ADDRESS",
			ReturnURL:               opts.ReturnURL,
			CancelURL:               opts.CancelURL,
		},
		EmailAddress: req.Customer.Email,
		Name: &paypal.PayerName{
			GivenName: req.Customer.FirstName,
			Surname:   req.Customer.LastName,
		},
		Address: address,
	}
	if phone := NormalizePhone(req.Customer.Phone); phone != "" && phone != "+" {
		source.Phone = &paypal.Phone{PhoneNumber: paypal.PhoneNumber{NationalNumber: phone}}
	}

	return &paypal.OrderRequest{
		Intent: string(domain.OrderIntentCapture),
		PurchaseUnits: []paypal.PurchaseUnit{
			{
				Amount: paypal.Amount{
					CurrencyCode: domain.Currency,
					Value:        value,
					Breakdown: &paypal.Breakdown{
						ItemTotal: usd(value),
						Shipping:  usd("0"),
						TaxTotal:  usd("0"),
						Discount:  usd("0"),
					},
				},
				Items: items,
				Shipping: &paypal.Shipping{
					Name:    &paypal.ShippingName{FullName: req.Customer.FullName()},
					Address: address,
				},
			},
		},
		PaymentSource: &paypal.PaymentSource{PayPal: source},
	}, nil
}

func usd(value string) paypal.Money {
	return paypal.Money{CurrencyCode: domain.Currency, Value: value}
}
