package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/api/middleware"
	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/internal/repository"
	"github.com/decalcomanie/colorstore/internal/service"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

// HandleCreateOrder handles POST /api/create-order
func HandleCreateOrder(orders *service.OrderService, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Replay of an idempotent request: answer from the store, PayPal is not called
		key, requestHash, existingOrderID, isExisting := middleware.GetIdempotencyInfo(c)
		if isExisting {
			c.JSON(http.StatusOK, service.CreateOrderResponse{Order: existingOrderID})
			return
		}

		var req service.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Info("Rejected create-order body", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing or invalid items in the request body.",
				"details": err.Error(),
			})
			return
		}

		requestID := ""
		if key != "" {
			requestID = paypalRequestID(key, requestHash)
		}

		orderID, err := orders.CreateOrder(c.Request.Context(), req, requestID)
		if err != nil {
			respondError(c, logger, "An error occurred while creating the PayPal order.", err)
			return
		}

		if key != "" && repos != nil && repos.IdempotencyKey != nil {
			storeErr := repos.IdempotencyKey.Create(c.Request.Context(), &domain.IdempotencyKey{
				Key:         key,
				RequestHash: requestHash,
				OrderID:     orderID,
			})
			var conflict *errors.ErrConflict
			if storeErr != nil && !stderrors.As(storeErr, &conflict) {
				logger.Warn("Failed to store idempotency key", zap.String("order_id", orderID), zap.Error(storeErr))
			}
		}

		c.JSON(http.StatusOK, service.CreateOrderResponse{Order: orderID})
	}
}

// HandleCaptureOrder handles POST /api/capture-order. It always captures;
// status reads go through HandleGetOrder.
func HandleCaptureOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CaptureOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid order in the request body.", "details": err.Error()})
			return
		}
		if req.ID() == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid order in the request body."})
			return
		}

		raw, err := orders.CaptureOrder(c.Request.Context(), req.ID())
		if err != nil {
			respondError(c, logger, "An error occurred while capturing the PayPal order.", err)
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
	}
}

// HandleGetOrder handles GET /api/orders/:id
func HandleGetOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := orders.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, "An error occurred while fetching the PayPal order.", err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
	}
}

// paypalRequestID derives a stable PayPal-Request-Id from the client's key so a
// retried request is deduplicated by PayPal even if our store lost the key
func paypalRequestID(key, requestHash string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key+":"+requestHash)).String()
}
