package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
	"github.com/alibiomar/ashe-admin-api/internal/service/order"
)

// OrderHandler exposes the admin order views and status transitions.
type OrderHandler struct {
	svc    order.Service
	logger *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter.
func NewOrderHandler(svc order.Service, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, logger: logger}
}

// List handles GET /orders?status=...
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid status payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
