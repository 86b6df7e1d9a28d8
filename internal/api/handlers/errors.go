package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/paypal"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

// respondError maps service errors to HTTP. Validation problems are the
// caller's fault (400); everything else is a 500 with a generic message, plus
// PayPal's structured error when there is one.
func respondError(c *gin.Context, logger *zap.Logger, message string, err error) {
	var verr *errors.ErrValidation
	if stderrors.As(err, &verr) {
		resp := gin.H{"error": verr.Error()}
		if len(verr.Fields) > 0 {
			resp["fields"] = verr.Fields
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	logger.Error(message, zap.Error(err))

	resp := gin.H{"error": message}
	var apiErr *paypal.APIError
	if stderrors.As(err, &apiErr) {
		resp["paypal"] = apiErr
	}
	c.JSON(http.StatusInternalServerError, resp)
}
