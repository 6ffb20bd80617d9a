package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
	"github.com/alibiomar/ashe-admin-api/internal/service/notify"
)

// NotificationHandler lets the console push manual notifications.
type NotificationHandler struct {
	svc    notify.Service
	logger *zap.Logger
}

// NewNotificationHandler constructs the HTTP handler adapter.
func NewNotificationHandler(svc notify.Service, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{svc: svc, logger: logger}
}

// SendPush handles POST /notifications/push.
func (h *NotificationHandler) SendPush(c *gin.Context) {
	var req models.PushNotification
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid push payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SendPush(c.Request.Context(), req); err != nil {
		h.logger.Error("failed sending push", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send notification"})
		return
	}

	c.Status(http.StatusAccepted)
}
