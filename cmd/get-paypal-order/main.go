package main

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/config"
	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/internal/paypal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/get-paypal-order/main.go <paypal_order_id>")
		fmt.Println("Example: go run cmd/get-paypal-order/main.go 5O190127TN364715T")
		os.Exit(1)
	}

	orderID := strings.TrimSpace(os.Args[1])

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := paypal.NewClient(cfg.PayPal, cfg.HTTPClientTimeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("🔍 Fetching order from PayPal: %s\n\n", orderID)

	raw, err := client.GetOrder(ctx, orderID)
	if err != nil {
		var apiErr *paypal.APIError
		if stderrors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "❌ PayPal returned %d %s: %s (debug_id %s)\n",
				apiErr.StatusCode, apiErr.Name, apiErr.Message, apiErr.DebugID)
		} else {
			fmt.Fprintf(os.Stderr, "❌ Failed to query PayPal: %v\n", err)
		}
		os.Exit(1)
	}

	var order struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		Intent        string `json:"intent"`
		CreateTime    string `json:"create_time"`
		PurchaseUnits []struct {
			Amount struct {
				CurrencyCode string `json:"currency_code"`
				Value        string `json:"value"`
			} `json:"amount"`
			Items []struct {
				Name string `json:"name"`
				SKU  string `json:"sku"`
			} `json:"items"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(raw, &order); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to parse order: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Order:   %s\n", order.ID)
	fmt.Printf("Status:  %s\n", order.Status)
	switch status := domain.OrderStatus(order.Status); {
	case status == domain.OrderStatusApproved:
		fmt.Println("         buyer approved, ready to capture")
	case status.IsTerminal():
		fmt.Println("         final, nothing left to capture")
	case !status.IsValid():
		fmt.Println("         ⚠️  unknown status")
	}
	fmt.Printf("Intent:  %s\n", order.Intent)
	fmt.Printf("Created: %s\n", order.CreateTime)
	for _, pu := range order.PurchaseUnits {
		fmt.Printf("Amount:  %s %s\n", pu.Amount.Value, pu.Amount.CurrencyCode)
		for _, it := range pu.Items {
			fmt.Printf("  - %s (sku %s)\n", it.Name, it.SKU)
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err == nil {
		fmt.Printf("\nRaw response:\n%s\n", pretty.String())
	}
}
