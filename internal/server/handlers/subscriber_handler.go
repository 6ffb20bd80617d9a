package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// SubscriberLister reads newsletter signups.
type SubscriberLister interface {
	List(ctx context.Context) ([]models.Subscriber, error)
}

// SubscriberHandler exposes the read-only newsletter view.
type SubscriberHandler struct {
	store  SubscriberLister
	logger *zap.Logger
}

// NewSubscriberHandler constructs the HTTP handler adapter.
func NewSubscriberHandler(store SubscriberLister, logger *zap.Logger) *SubscriberHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriberHandler{store: store, logger: logger}
}

// List handles GET /subscribers.
func (h *SubscriberHandler) List(c *gin.Context) {
	subscribers, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if subscribers == nil {
		subscribers = []models.Subscriber{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(subscribers), "subscribers": subscribers})
}
