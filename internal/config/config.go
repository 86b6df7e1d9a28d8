package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultPayPalAPIURL is the PayPal sandbox REST endpoint
	DefaultPayPalAPIURL = "https://api-m.sandbox.paypal.com"
	// DefaultColorAPIURL is the public color-naming API used for the catalog
	DefaultColorAPIURL = "https://www.thecolorapi.com"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	PayPal      PayPalConfig
	Catalog     CatalogConfig
	Redis       RedisConfig
	// HTTPClientTimeout bounds every outbound call (PayPal, color API)
	HTTPClientTimeout time.Duration
	IdempotencyTTL    time.Duration
}

// PayPalConfig holds the Orders v2 credentials and checkout branding
type PayPalConfig struct {
	APIBaseURL   string // PAYPAL_API_URL, e.g. https://api-m.sandbox.paypal.com
	ClientID     string
	ClientSecret string
	BrandName    string
	Locale       string
	ReturnURL    string // optional, sent in experience_context
	CancelURL    string
}

type CatalogConfig struct {
	ColorAPIURL string
	Size        int
}

// RedisConfig is optional; an empty Addr keeps idempotency keys and color names in process
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "4000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CATALOG_SIZE", 6)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "30s")
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")

	viper.AutomaticEnv()

	// A missing .env is fine, plain environment variables are enough
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "4000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		PayPal: PayPalConfig{
			APIBaseURL:   strings.TrimSuffix(strings.TrimSpace(getEnvOrViper("PAYPAL_API_URL", DefaultPayPalAPIURL)), "/"),
			ClientID:     strings.TrimSpace(getEnvOrViper("PAYPAL_CLIENT_ID", "")),
			ClientSecret: strings.TrimSpace(getEnvOrViper("PAYPAL_CLIENT_SECRET", "")),
			BrandName:    getEnvOrViper("PAYPAL_BRAND_NAME", "Décalcomanie"),
			Locale:       getEnvOrViper("PAYPAL_LOCALE", "en-US"),
			ReturnURL:    strings.TrimSpace(getEnvOrViper("PAYPAL_RETURN_URL", "")),
			CancelURL:    strings.TrimSpace(getEnvOrViper("PAYPAL_CANCEL_URL", "")),
		},
		Catalog: CatalogConfig{
			ColorAPIURL: strings.TrimSuffix(getEnvOrViper("COLOR_API_URL", DefaultColorAPIURL), "/"),
			Size:        viper.GetInt("CATALOG_SIZE"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getEnvOrViper("REDIS_ADDR", "")),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
		},
		HTTPClientTimeout: viper.GetDuration("HTTP_CLIENT_TIMEOUT"),
		IdempotencyTTL:    viper.GetDuration("IDEMPOTENCY_TTL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and clamps numeric options
func (c *Config) Validate() error {
	if c.PayPal.ClientID == "" {
		return fmt.Errorf("PAYPAL_CLIENT_ID is required")
	}
	if c.PayPal.ClientSecret == "" {
		return fmt.Errorf("PAYPAL_CLIENT_SECRET is required")
	}
	if c.PayPal.APIBaseURL == "" {
		return fmt.Errorf("PAYPAL_API_URL is required")
	}
	if c.Catalog.Size <= 0 {
		c.Catalog.Size = 6
	}
	if c.HTTPClientTimeout <= 0 {
		c.HTTPClientTimeout = 30 * time.Second
	}
	if c.IdempotencyTTL <= 0 {
		c.IdempotencyTTL = 24 * time.Hour
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
