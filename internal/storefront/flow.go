package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

// Gateway is the part of GatewayClient the checkout flow uses
type Gateway interface {
	Catalog(ctx context.Context, size int) ([]domain.StoreItem, error)
	CreateOrder(ctx context.Context, items []domain.CartItem, form *CheckoutForm, idempotencyKey string) (string, error)
	CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error)
	GetOrder(ctx context.Context, orderID string) (json.RawMessage, error)
}

// Checkout drives a State through refresh, order creation and capture
type Checkout struct {
	state   *State
	gateway Gateway
	logger  *zap.Logger
}

func NewCheckout(state *State, gateway Gateway, logger *zap.Logger) *Checkout {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checkout{state: state, gateway: gateway, logger: logger}
}

// Refresh replaces the catalog with a freshly generated one
func (c *Checkout) Refresh(ctx context.Context, size int) error {
	items, err := c.gateway.Catalog(ctx, size)
	if err != nil {
		return err
	}
	c.state.ReplaceCatalog(items)
	c.logger.Debug("Catalog refreshed", zap.Int("items", len(items)))
	return nil
}

// PlaceOrder validates the form, creates a PayPal order for the cart and
// remembers its id. The cart is kept until the order is captured.
func (c *Checkout) PlaceOrder(ctx context.Context) (string, error) {
	items := c.state.Cart.Items()
	if len(items) == 0 {
		return "", &errors.ErrValidation{Message: "cart is empty"}
	}
	if err := c.state.Form.Validate(); err != nil {
		return "", err
	}

	fingerprint, err := json.Marshal(struct {
		Items []domain.CartItem
		Form  *CheckoutForm
	}{items, c.state.Form})
	if err != nil {
		return "", err
	}
	key := c.state.CheckoutKey(string(fingerprint))

	orderID, err := c.gateway.CreateOrder(ctx, items, c.state.Form, key)
	if err != nil {
		c.logger.Error("Failed to create order", zap.Error(err), zap.Int("items", len(items)))
		return "", err
	}

	c.state.SetLastOrderID(orderID)
	c.logger.Info("Order created",
		zap.String("order_id", orderID),
		zap.String("total", c.state.Cart.Total()),
	)
	return orderID, nil
}

// Status reads orderID, or the last created order when orderID is blank,
// without capturing it
func (c *Checkout) Status(ctx context.Context, orderID string) (json.RawMessage, error) {
	orderID = c.orderID(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("no order to look up")
	}
	return c.gateway.GetOrder(ctx, orderID)
}

// Capture captures orderID, or the last created order when orderID is blank.
// The cart is cleared only when the capture succeeds.
func (c *Checkout) Capture(ctx context.Context, orderID string) (json.RawMessage, error) {
	orderID = c.orderID(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("no order to capture")
	}

	result, err := c.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		c.logger.Error("Failed to capture order", zap.Error(err), zap.String("order_id", orderID))
		return nil, err
	}

	c.state.Cart.Clear()
	c.state.ResetCheckout()
	c.logger.Info("Order captured", zap.String("order_id", orderID))
	return result, nil
}

func (c *Checkout) orderID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return c.state.LastOrderID()
}
