package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
	"github.com/alibiomar/ashe-admin-api/internal/service/catalog"
)

// CatalogHandler exposes product CRUD over HTTP.
type CatalogHandler struct {
	svc    catalog.Service
	logger *zap.Logger
}

// NewCatalogHandler constructs the HTTP handler adapter.
func NewCatalogHandler(svc catalog.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// List handles GET /products.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create handles POST /products.
func (h *CatalogHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), product)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /products/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), product)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /products/:id.
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
