package service

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

func fixtureRequest(items ...domain.StoreItem) CreateOrderRequest {
	return CreateOrderRequest{
		Items: items,
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

func TestCartTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.StoreItem
		want  string
	}{
		{"single", []domain.StoreItem{{ID: "AABBCC", Price: "10.00"}}, "10.00"},
		{"sum", []domain.StoreItem{{ID: "000001", Price: "10.10"}, {ID: "000002", Price: "0.20"}}, "10.30"},
		{"float trap", []domain.StoreItem{{ID: "000001", Price: "0.1"}, {ID: "000002", Price: "0.2"}}, "0.30"},
		{"trailing zeros", []domain.StoreItem{{ID: "000001", Price: "1.500"}, {ID: "000002", Price: "2"}}, "3.50"},
		{"integers", []domain.StoreItem{{ID: "000001", Price: "999"}, {ID: "000002", Price: " 1 "}}, "1000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := CartTotal(tt.items)
			if err != nil {
				t.Fatalf("CartTotal: %v", err)
			}
			if got := FormatAmount(total); got != tt.want {
				t.Fatalf("total = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCartTotalRejectsBadPrice(t *testing.T) {
	for _, price := range []string{"abc", "", "-1.00", "1.005", "0.001"} {
		_, err := CartTotal([]domain.StoreItem{{ID: "AABBCC", Price: price}})
		var verr *errors.ErrValidation
		if !stderrors.As(err, &verr) {
			t.Fatalf("price %q: expected validation error, got %v", price, err)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+1 (484) 473-1088": "+14844731088",
		"484.473.1088":      "4844731088",
		"  +33 1 23 45":     "+3312345",
		"1+2":               "12",
		"++1":               "+1",
		"":                  "",
	}
	for in, want := range tests {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildOrderPayload(t *testing.T) {
	req := fixtureRequest(
		domain.StoreItem{ID: "AABBCC", Name: "Silver", Price: "10.00"},
		domain.StoreItem{ID: "112233", Name: "Bunker", Price: "5.5"},
	)
	payload, err := BuildOrderPayload(req, PayloadOptions{BrandName: "Décalcomanie", Locale: "en-US"})
	if err != nil {
		t.Fatalf("BuildOrderPayload: %v", err)
	}

	if payload.Intent != "CAPTURE" {
		t.Fatalf("intent = %q", payload.Intent)
	}
	unit := payload.PurchaseUnits[0]
	if unit.Amount.Value != "15.50" || unit.Amount.CurrencyCode != "USD" {
		t.Fatalf("amount = %+v", unit.Amount)
	}
	b := unit.Amount.Breakdown
	if b.ItemTotal.Value != "15.50" || b.Shipping.Value != "0" || b.TaxTotal.Value != "0" || b.Discount.Value != "0" {
		t.Fatalf("breakdown = %+v", b)
	}
	for _, m := range []string{b.ItemTotal.CurrencyCode, b.Shipping.CurrencyCode, b.TaxTotal.CurrencyCode, b.Discount.CurrencyCode} {
		if m != "USD" {
			t.Fatalf("breakdown currency %q", m)
		}
	}
	if len(unit.Items) != 2 || unit.Items[1].SKU != "112233" || unit.Items[1].Quantity != "1" || unit.Items[1].UnitAmount.Value != "5.50" {
		t.Fatalf("items = %+v", unit.Items)
	}
	if unit.Shipping.Name.FullName != "John Doe" || unit.Shipping.Address.AdminArea2 != "San Jose" {
		t.Fatalf("shipping = %+v", unit.Shipping)
	}

	pp := payload.PaymentSource.PayPal
	if pp.ExperienceContext.UserAction != "PAY_NOW" || pp.ExperienceContext.PaymentMethodPreference != "IMMEDIATE_PAYMENT_REQUIRED" || pp.ExperienceContext.BrandName != "Décalcomanie" {
		t.Fatalf("experience_context = %+v", pp.ExperienceContext)
	}
	if pp.Address.CountryCode != "US" || pp.Address.PostalCode != "95131" || pp.Address.AdminArea1 != "CA" {
		t.Fatalf("address = %+v", pp.Address)
	}
	if pp.Phone.PhoneNumber.NationalNumber != "+14844731088" {
		t.Fatalf("phone = %+v", pp.Phone)
	}
	if pp.Name.GivenName != "John" || pp.Name.Surname != "Doe" || pp.EmailAddress != "john@doe.email" {
		t.Fatalf("contact = %+v %q", pp.Name, pp.EmailAddress)
	}
}

func TestBuildOrderPayloadItemTotalMatchesUnitAmounts(t *testing.T) {
	req := fixtureRequest(
		domain.StoreItem{ID: "000001", Name: "a", Price: "0.1"},
		domain.StoreItem{ID: "000002", Name: "b", Price: "0.20"},
		domain.StoreItem{ID: "000003", Name: "c", Price: "999.99"},
		domain.StoreItem{ID: "000004", Name: "d", Price: "3.330"},
	)
	payload, err := BuildOrderPayload(req, PayloadOptions{})
	if err != nil {
		t.Fatalf("BuildOrderPayload: %v", err)
	}

	unit := payload.PurchaseUnits[0]
	sum := decimal.Zero
	for _, it := range unit.Items {
		sum = sum.Add(decimal.RequireFromString(it.UnitAmount.Value))
	}
	if got := sum.StringFixed(2); got != unit.Amount.Breakdown.ItemTotal.Value || got != unit.Amount.Value {
		t.Fatalf("sum(unit_amount) = %s, item_total = %s, amount = %s", got, unit.Amount.Breakdown.ItemTotal.Value, unit.Amount.Value)
	}

	_, err = BuildOrderPayload(fixtureRequest(
		domain.StoreItem{ID: "000001", Name: "a", Price: "1.005"},
		domain.StoreItem{ID: "000002", Name: "b", Price: "1.005"},
	), PayloadOptions{})
	var verr *errors.ErrValidation
	if !stderrors.As(err, &verr) {
		t.Fatalf("sub-cent prices: expected ErrValidation, got %v", err)
	}
}

func TestBuildOrderPayloadWireNames(t *testing.T) {
	payload, err := BuildOrderPayload(fixtureRequest(domain.StoreItem{ID: "AABBCC", Name: "x", Price: "10.00"}), PayloadOptions{})
	if err != nil {
		t.Fatalf("BuildOrderPayload: %v", err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc struct {
		PurchaseUnits []struct {
			Amount struct {
				Value     string `json:"value"`
				Breakdown struct {
					ItemTotal struct {
						Value string `json:"value"`
					} `json:"item_total"`
					TaxTotal struct {
						Value string `json:"value"`
					} `json:"tax_total"`
				} `json:"breakdown"`
			} `json:"amount"`
		} `json:"purchase_units"`
		PaymentSource struct {
			PayPal struct {
				Address struct {
					AddressLine1 string `json:"address_line_1"`
					CountryCode  string `json:"country_code"`
				} `json:"address"`
			} `json:"paypal"`
		} `json:"payment_source"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	amount := doc.PurchaseUnits[0].Amount
	if amount.Value != "10.00" || amount.Breakdown.ItemTotal.Value != "10.00" || amount.Breakdown.TaxTotal.Value != "0" {
		t.Fatalf("amount on the wire = %+v", amount)
	}
	if doc.PaymentSource.PayPal.Address.AddressLine1 != "2211 North First Street" || doc.PaymentSource.PayPal.Address.CountryCode != "US" {
		t.Fatalf("address on the wire = %+v", doc.PaymentSource.PayPal.Address)
	}
}

func TestBuildOrderPayloadUnknownCountry(t *testing.T) {
	req := fixtureRequest(domain.StoreItem{ID: "AABBCC", Name: "x", Price: "1"})
	req.Shipping.Country = "Atlantis"

	payload, err := BuildOrderPayload(req, PayloadOptions{})
	if err != nil {
		t.Fatalf("BuildOrderPayload: %v", err)
	}
	raw, _ := json.Marshal(payload.PaymentSource.PayPal.Address)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	if _, ok := m["country_code"]; ok {
		t.Fatalf("country_code should be omitted on a lookup miss: %s", raw)
	}
}

func TestBuildOrderPayloadEmptyCart(t *testing.T) {
	_, err := BuildOrderPayload(fixtureRequest(), PayloadOptions{})
	var verr *errors.ErrValidation
	if !stderrors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
