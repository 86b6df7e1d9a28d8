package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/config"
	"github.com/decalcomanie/colorstore/internal/paypal"
)

// Fetches a client-credentials access token with the configured PayPal app,
// useful for checking PAYPAL_CLIENT_ID/PAYPAL_CLIENT_SECRET or calling the API by hand.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := paypal.NewClient(cfg.PayPal, cfg.HTTPClientTimeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("🔑 Requesting access token from %s\n\n", cfg.PayPal.APIBaseURL)

	token, err := client.AccessToken(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to get access token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Access Token obtained!\n\n")
	fmt.Printf("curl -H \"Authorization: Bearer %s\" %s/v2/checkout/orders/<id>\n", token, cfg.PayPal.APIBaseURL)
}
