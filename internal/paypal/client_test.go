package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/decalcomanie/colorstore/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.PayPalConfig{
		APIBaseURL:   srv.URL,
		ClientID:     "client",
		ClientSecret: "secret",
	}, 5*time.Second, zaptest.NewLogger(t))
}

func writeToken(t *testing.T, w http.ResponseWriter, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	if !ok || user != "client" || pass != "secret" {
		t.Errorf("unexpected basic auth: %q %q %v", user, pass, ok)
	}
	if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Errorf("unexpected token content type %q", ct)
	}
	if err := r.ParseForm(); err != nil {
		t.Errorf("parse form: %v", err)
	}
	if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
		t.Errorf("grant_type = %q", got)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"access_token":"t","token_type":"Bearer","expires_in":32400}`)
}

func TestAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/oauth2/token" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeToken(t, w, r)
	})

	token, err := client.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if token != "t" {
		t.Fatalf("token = %q, want t", token)
	}
}

func TestAccessTokenRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"invalid_client","error_description":"Client Authentication failed"}`)
	})

	_, err := client.AccessToken(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Name != "invalid_client" || apiErr.Message != "Client Authentication failed" {
		t.Fatalf("unexpected error fields: %+v", apiErr)
	}
}

func TestCreateOrder(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/v1/oauth2/token":
			writeToken(t, w, r)
		case "/v2/checkout/orders":
			if got := r.Header.Get("Authorization"); got != "Bearer t" {
				t.Errorf("Authorization = %q", got)
			}
			if got := r.Header.Get(RequestIDHeader); got != "req-1" {
				t.Errorf("%s = %q", RequestIDHeader, got)
			}
			var body OrderRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode body: %v", err)
			}
			if body.Intent != "CAPTURE" {
				t.Errorf("intent = %q", body.Intent)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"ORDER1","status":"PAYER_ACTION_REQUIRED","links":[{"href":"https://paypal/approve","rel":"payer-action","method":"GET"}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	order, err := client.CreateOrder(context.Background(), &OrderRequest{Intent: "CAPTURE"}, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "ORDER1" {
		t.Fatalf("order id = %q", order.ID)
	}
	if order.ApproveURL() != "https://paypal/approve" {
		t.Fatalf("approve url = %q", order.ApproveURL())
	}
	if len(calls) != 2 || calls[0] != "/v1/oauth2/token" {
		t.Fatalf("expected token then create, got %v", calls)
	}
}

func TestCreateOrderGeneratesRequestID(t *testing.T) {
	seen := map[string]bool{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			writeToken(t, w, r)
			return
		}
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			t.Errorf("missing %s", RequestIDHeader)
		}
		seen[id] = true
		_, _ = io.WriteString(w, `{"id":"X"}`)
	})

	for i := 0; i < 2; i++ {
		if _, err := client.CreateOrder(context.Background(), &OrderRequest{Intent: "CAPTURE"}, ""); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}
	if len(seen) != 2 {
		t.Fatalf("expected a fresh request id per call, got %v", seen)
	}
}

func TestCreateOrderUnprocessable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			writeToken(t, w, r)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed.","debug_id":"abc123","details":[{"field":"/payment_source/paypal/address/country_code","issue":"MISSING_REQUIRED_PARAMETER"}]}`)
	})

	_, err := client.CreateOrder(context.Background(), &OrderRequest{Intent: "CAPTURE"}, "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.DebugID != "abc123" || len(apiErr.Details) != 1 || apiErr.Details[0].Issue != "MISSING_REQUIRED_PARAMETER" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if !strings.Contains(apiErr.Error(), "UNPROCESSABLE_ENTITY") {
		t.Fatalf("error string %q", apiErr.Error())
	}
}

func TestCaptureOrderRelaysBody(t *testing.T) {
	const captured = `{"id":"ORDER1","status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"CAP1"}]}}]}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			writeToken(t, w, r)
			return
		}
		if r.Method != http.MethodPost || r.URL.Path != "/v2/checkout/orders/ORDER1/capture" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, captured)
	})

	raw, err := client.CaptureOrder(context.Background(), "ORDER1")
	if err != nil {
		t.Fatalf("CaptureOrder: %v", err)
	}
	if string(raw) != captured {
		t.Fatalf("capture body altered: %s", raw)
	}
}

func TestGetOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			writeToken(t, w, r)
			return
		}
		if r.Method != http.MethodGet || r.URL.Path != "/v2/checkout/orders/ORDER1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"id":"ORDER1","status":"APPROVED"}`)
	})

	raw, err := client.GetOrder(context.Background(), "ORDER1")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if !strings.Contains(string(raw), "APPROVED") {
		t.Fatalf("unexpected body %s", raw)
	}
}
