package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/service/stats"
)

// StatsHandler serves the aggregated KPI report.
type StatsHandler struct {
	svc    stats.Service
	logger *zap.Logger
}

// NewStatsHandler constructs the HTTP handler adapter.
func NewStatsHandler(svc stats.Service, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

// Get handles GET /stats. Individual source failures degrade inside the
// report (see dataQuality); only a total failure surfaces as 500.
func (h *StatsHandler) Get(c *gin.Context) {
	report, err := h.svc.BuildReport(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building stats report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, report)
}
