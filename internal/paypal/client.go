package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/config"
	"github.com/decalcomanie/colorstore/internal/metrics"
)

// RequestIDHeader makes order creation idempotent on PayPal's side
const RequestIDHeader = "PayPal-Request-Id"

type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient creates a PayPal REST client. A zero timeout means 30s.
func NewClient(cfg config.PayPalConfig, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimSuffix(cfg.APIBaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// AccessToken exchanges the client credentials for a bearer token.
// Tokens are not cached: every order operation asks for a new one.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "token")
	if err != nil {
		c.logger.Error("Error acquiring access token", zap.Error(err))
		return "", err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to unmarshal token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}
	return tok.AccessToken, nil
}

// CreateOrder posts a new order. An empty requestID gets a fresh UUID so each
// call is its own PayPal request; pass a stable one to make retries idempotent.
func (c *Client) CreateOrder(ctx context.Context, order *OrderRequest, requestID string) (*Order, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}
	c.logger.Debug("Creating PayPal order", zap.String("request_id", requestID), zap.ByteString("payload", payload))

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/v2/checkout/orders", token, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set(RequestIDHeader, requestID)

	body, err := c.do(req, "create_order")
	if err != nil {
		return nil, err
	}

	var created Order
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w, body: %s", err, string(body))
	}
	if created.ID == "" {
		return nil, fmt.Errorf("paypal returned an order without id, body: %s", string(body))
	}
	created.Raw = body
	return &created, nil
}

// CaptureOrder finalizes payment for an approved order and returns PayPal's
// capture response unmodified.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", token, []byte("{}"))
	if err != nil {
		return nil, err
	}
	body, err := c.do(req, "capture_order")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// GetOrder reads an order's current state without changing it
func (c *Client) GetOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/v2/checkout/orders/"+url.PathEscape(orderID), token, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req, "get_order")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path, token string, payload []byte) (*http.Request, error) {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes req and returns the body of a 2xx response, or an *APIError
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream("paypal", op, 0, start)
		return nil, fmt.Errorf("failed to execute %s request: %w", op, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("paypal", op, resp.StatusCode, start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, body)
		c.logger.Warn("PayPal returned non-2xx",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("name", apiErr.Name),
			zap.String("debug_id", apiErr.DebugID),
		)
		return nil, apiErr
	}

	return body, nil
}
