package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/api/handlers"
	"github.com/decalcomanie/colorstore/internal/api/middleware"
	"github.com/decalcomanie/colorstore/internal/catalog"
	"github.com/decalcomanie/colorstore/internal/config"
	"github.com/decalcomanie/colorstore/internal/metrics"
	"github.com/decalcomanie/colorstore/internal/repository"
	"github.com/decalcomanie/colorstore/internal/service"
)

const serviceName = "order-gateway"

// Dependencies are the components the router wires into handlers
type Dependencies struct {
	Orders  *service.OrderService
	Catalog *catalog.Generator
	Repos   *repository.Repositories
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Dependencies, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(metrics.Middleware(serviceName))
	router.Use(middleware.CORSMiddleware())

	// Preflights without an Origin header skip the CORS layer; answer them too
	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Décalcomanie order gateway",
			"endpoints": []string{
				"GET /health",
				"GET /metrics",
				"GET /api/catalog",
				"POST /api/create-order",
				"POST /api/capture-order",
				"GET /api/orders/:id",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiRoutes := router.Group("/api")
	{
		createOrder := []gin.HandlerFunc{handlers.HandleCreateOrder(deps.Orders, deps.Repos, logger)}
		if deps.Repos != nil && deps.Repos.IdempotencyKey != nil {
			createOrder = append([]gin.HandlerFunc{middleware.IdempotencyMiddleware(deps.Repos.IdempotencyKey, logger)}, createOrder...)
		}
		apiRoutes.POST("/create-order", createOrder...)
		apiRoutes.POST("/capture-order", handlers.HandleCaptureOrder(deps.Orders, logger))
		apiRoutes.GET("/orders/:id", handlers.HandleGetOrder(deps.Orders, logger))
		if deps.Catalog != nil {
			apiRoutes.GET("/catalog", handlers.HandleGetCatalog(deps.Catalog, cfg.Catalog.Size, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.String("panic", fmt.Sprintf("%v", recovered)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
