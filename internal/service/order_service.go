package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/paypal"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

// PayPalOrders is the part of the PayPal client the order service needs
type PayPalOrders interface {
	CreateOrder(ctx context.Context, order *paypal.OrderRequest, requestID string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error)
	GetOrder(ctx context.Context, orderID string) (json.RawMessage, error)
}

type OrderService struct {
	paypal  PayPalOrders
	options PayloadOptions
	logger  *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(pp PayPalOrders, options PayloadOptions, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		paypal:  pp,
		options: options,
		logger:  logger,
	}
}

// CreateOrder builds the PayPal payload for a checkout and creates the order.
// requestID becomes PayPal-Request-Id; empty means a fresh one per call.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest, requestID string) (string, error) {
	payload, err := BuildOrderPayload(req, s.options)
	if err != nil {
		return "", err
	}

	s.logger.Info("Creating PayPal order",
		zap.Int("item_count", len(req.Items)),
		zap.String("total", payload.PurchaseUnits[0].Amount.Value),
		zap.String("country_code", payload.PurchaseUnits[0].Shipping.Address.CountryCode),
	)

	order, err := s.paypal.CreateOrder(ctx, payload, requestID)
	if err != nil {
		return "", &errors.ErrUpstream{Service: "paypal", Op: "create order", Err: err}
	}

	s.logger.Info("PayPal order created", zap.String("order_id", order.ID), zap.String("status", order.Status))
	return order.ID, nil
}

// CaptureOrder finalizes payment. It never falls back to a status read.
func (s *OrderService) CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, &errors.ErrValidation{Message: "order id is required"}
	}

	raw, err := s.paypal.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, &errors.ErrUpstream{Service: "paypal", Op: "capture order", Err: err}
	}

	s.logger.Info("PayPal order captured", zap.String("order_id", orderID))
	return raw, nil
}

// GetOrder reads the order status from PayPal
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, &errors.ErrValidation{Message: "order id is required"}
	}

	raw, err := s.paypal.GetOrder(ctx, orderID)
	if err != nil {
		return nil, &errors.ErrUpstream{Service: "paypal", Op: "get order", Err: err}
	}
	return raw, nil
}
