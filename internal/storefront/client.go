package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/internal/paypal"
)

// GatewayClient talks to the order gateway's /api routes
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGatewayClient(baseURL string, timeout time.Duration) *GatewayClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GatewayClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GatewayError is a non-2xx answer from the gateway
type GatewayError struct {
	StatusCode int
	Message    string
	PayPal     *paypal.APIError
}

func (e *GatewayError) Error() string {
	if e.PayPal != nil && e.PayPal.Name != "" {
		return fmt.Sprintf("gateway %d: %s (paypal %s: %s)", e.StatusCode, e.Message, e.PayPal.Name, e.PayPal.Message)
	}
	return fmt.Sprintf("gateway %d: %s", e.StatusCode, e.Message)
}

// Catalog fetches a freshly generated catalog; size <= 0 uses the gateway default
func (g *GatewayClient) Catalog(ctx context.Context, size int) ([]domain.StoreItem, error) {
	u, err := url.Parse(g.baseURL + "/api/catalog")
	if err != nil {
		return nil, err
	}
	if size > 0 {
		q := u.Query()
		q.Set("size", strconv.Itoa(size))
		u.RawQuery = q.Encode()
	}

	body, err := g.do(ctx, http.MethodGet, u.String(), nil, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Items []domain.StoreItem `json:"items"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return out.Items, nil
}

// CreateOrder submits the cart and form and returns the PayPal order id.
// A non-empty idempotencyKey makes retries return the same order.
func (g *GatewayClient) CreateOrder(ctx context.Context, items []domain.CartItem, form *CheckoutForm, idempotencyKey string) (string, error) {
	payload, err := json.Marshal(struct {
		Items    []domain.CartItem `json:"items"`
		Customer domain.Customer   `json:"customer"`
		Shipping domain.Shipping   `json:"shipping"`
	}{items, form.Customer, form.Shipping})
	if err != nil {
		return "", err
	}

	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}
	body, err := g.do(ctx, http.MethodPost, g.baseURL+"/api/create-order", payload, headers)
	if err != nil {
		return "", err
	}

	var out struct {
		Order string `json:"order"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to decode create-order response: %w", err)
	}
	if out.Order == "" {
		return "", fmt.Errorf("gateway returned no order id")
	}
	return out.Order, nil
}

// CaptureOrder captures an approved order and returns PayPal's raw response
func (g *GatewayClient) CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{"order": orderID})
	if err != nil {
		return nil, err
	}
	body, err := g.do(ctx, http.MethodPost, g.baseURL+"/api/capture-order", payload, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// GetOrder reads an order's status without capturing it
func (g *GatewayClient) GetOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	body, err := g.do(ctx, http.MethodGet, g.baseURL+"/api/orders/"+url.PathEscape(orderID), nil, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (g *GatewayClient) do(ctx context.Context, method, rawURL string, payload []byte, headers map[string]string) ([]byte, error) {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := &GatewayError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		var parsed struct {
			Error  string           `json:"error"`
			PayPal *paypal.APIError `json:"paypal"`
		}
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
			gwErr.Message = parsed.Error
			gwErr.PayPal = parsed.PayPal
		}
		return nil, gwErr
	}
	return body, nil
}
