package colorapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/metrics"
)

// Client calls The Color API (https://www.thecolorapi.com) to name hex colors
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a color API client. A zero timeout means 30s.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ColorResponse is the subset of /id we read
type ColorResponse struct {
	Hex struct {
		Value string `json:"value"`
		Clean string `json:"clean"`
	} `json:"hex"`
	Name struct {
		Value           string `json:"value"`
		ClosestNamedHex string `json:"closest_named_hex"`
		ExactMatchName  bool   `json:"exact_match_name"`
	} `json:"name"`
}

// Name returns the human name of a 6-digit hex color (no leading '#')
func (c *Client) Name(ctx context.Context, hex string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("color api client not configured: base URL required")
	}
	u, err := url.Parse(c.baseURL + "/id")
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("hex", strings.TrimPrefix(hex, "#"))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream("colorapi", "name", 0, start)
		c.logger.Warn("Color API request failed", zap.Error(err), zap.String("hex", hex))
		return "", err
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("colorapi", "name", resp.StatusCode, start)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("color api returned %d: %s", resp.StatusCode, string(body))
	}

	var out ColorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode color api response: %w", err)
	}
	if out.Name.Value == "" {
		return "", fmt.Errorf("color api returned no name for %s", hex)
	}
	return out.Name.Value, nil
}
