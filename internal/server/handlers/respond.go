package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Validation and stock problems are user-correctable (400), lookups against
// missing resources are 404, and everything else is a generic 500 whose
// detail stays in the server log.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		stockErr      *apperrors.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
