package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/catalog"
)

// HandleGetCatalog handles GET /api/catalog. Every call draws a fresh catalog.
func HandleGetCatalog(gen *catalog.Generator, defaultSize int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		size := defaultSize
		if s := c.Query("size"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > catalog.MaxSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and " + strconv.Itoa(catalog.MaxSize)})
				return
			}
			size = n
		}

		items, err := gen.Generate(c.Request.Context(), size)
		if err != nil {
			logger.Error("Failed to generate catalog", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while generating the catalog."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
