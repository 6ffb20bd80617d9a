package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
	"github.com/alibiomar/ashe-admin-api/internal/service/spending"
)

// SpendingHandler exposes spending CRUD over HTTP.
type SpendingHandler struct {
	svc    spending.Service
	logger *zap.Logger
}

// NewSpendingHandler constructs the HTTP handler adapter.
func NewSpendingHandler(svc spending.Service, logger *zap.Logger) *SpendingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpendingHandler{svc: svc, logger: logger}
}

type recordSpendingRequest struct {
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Date        *time.Time `json:"date"`
	Notes       string     `json:"notes"`
}

// Record handles POST /spendings.
func (h *SpendingHandler) Record(c *gin.Context) {
	var req recordSpendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid spending payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input := spending.Input{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Notes:       req.Notes,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	created, err := h.svc.Record(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /spendings with optional date-range and category filters.
func (h *SpendingHandler) List(c *gin.Context) {
	filter := models.SpendingFilter{Category: c.Query("category")}

	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
			return
		}
		filter.Start = start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be YYYY-MM-DD"})
			return
		}
		filter.End = end.AddDate(0, 0, 1)
	}

	spendings, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if spendings == nil {
		spendings = []models.Spending{}
	}
	c.JSON(http.StatusOK, spendings)
}

// Delete handles DELETE /spendings?id=...
func (h *SpendingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Query("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
