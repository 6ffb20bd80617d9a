package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
	"github.com/alibiomar/ashe-admin-api/internal/service/inventory"
)

// SalesHandler exposes the offline sale ledger over HTTP.
type SalesHandler struct {
	svc    inventory.Service
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter.
func NewSalesHandler(svc inventory.Service, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{svc: svc, logger: logger}
}

type recordSaleRequest struct {
	ProductID    string               `json:"productId"`
	ColorName    string               `json:"colorName"`
	Sizes        map[string]int       `json:"sizes"`
	CustomerInfo *models.CustomerInfo `json:"customerInfo"`
	TotalAmount  *float64             `json:"totalAmount"`
	Notes        string               `json:"notes"`
	SaleDate     *time.Time           `json:"saleDate"`
}

// Record handles POST /offline-sales.
func (h *SalesHandler) Record(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input := inventory.SaleInput{
		ProductID:    req.ProductID,
		ColorName:    req.ColorName,
		Sizes:        req.Sizes,
		CustomerInfo: req.CustomerInfo,
		TotalAmount:  req.TotalAmount,
		Notes:        req.Notes,
	}
	if req.SaleDate != nil {
		input.SaleDate = *req.SaleDate
	}

	sale, err := h.svc.RecordSale(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// List handles GET /offline-sales with optional date-range and product
// filters. End dates are inclusive of the whole day.
func (h *SalesHandler) List(c *gin.Context) {
	filter := models.SaleFilter{ProductID: c.Query("productId")}

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

	sales, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if sales == nil {
		sales = []models.OfflineSale{}
	}
	c.JSON(http.StatusOK, sales)
}
