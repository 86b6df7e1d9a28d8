package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/decalcomanie/colorstore/internal/api"
	"github.com/decalcomanie/colorstore/internal/catalog"
	"github.com/decalcomanie/colorstore/internal/colorapi"
	"github.com/decalcomanie/colorstore/internal/config"
	"github.com/decalcomanie/colorstore/internal/paypal"
	"github.com/decalcomanie/colorstore/internal/repository"
	"github.com/decalcomanie/colorstore/internal/repository/memory"
	"github.com/decalcomanie/colorstore/internal/repository/redis"
	"github.com/decalcomanie/colorstore/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting order gateway",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("paypal_api", cfg.PayPal.APIBaseURL),
	)

	// Idempotency keys and color names live in Redis when configured
	var repos *repository.Repositories
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := redis.NewConnection(ctx, cfg.Redis)
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		defer client.Close()
		repos = redis.NewRepositories(client, cfg.IdempotencyTTL, logger)
		logger.Info("Using redis store", zap.String("addr", cfg.Redis.Addr))
	} else {
		repos = memory.NewRepositories(cfg.IdempotencyTTL)
		logger.Info("REDIS_ADDR not set, using in-process store")
	}

	pp := paypal.NewClient(cfg.PayPal, cfg.HTTPClientTimeout, logger)
	orders := service.NewOrderService(pp, service.PayloadOptions{
		BrandName: cfg.PayPal.BrandName,
		Locale:    cfg.PayPal.Locale,
		ReturnURL: cfg.PayPal.ReturnURL,
		CancelURL: cfg.PayPal.CancelURL,
	}, logger)

	colors := colorapi.NewClient(cfg.Catalog.ColorAPIURL, cfg.HTTPClientTimeout, logger)
	generator := catalog.NewGenerator(colors, repos.ColorNames, logger)

	// Initialize router
	router := api.NewRouter(cfg, api.Dependencies{
		Orders:  orders,
		Catalog: generator,
		Repos:   repos,
	}, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPClientTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}
