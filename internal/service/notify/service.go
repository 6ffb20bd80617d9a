package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/config"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
	"github.com/alibiomar/ashe-admin-api/pkg/clients/mailer"
	"github.com/alibiomar/ashe-admin-api/pkg/clients/push"
)

// Service describes the notification glue available to the rest of the
// application. Retry and backoff are deliberately left to the providers.
type Service interface {
	SendPush(ctx context.Context, notification models.PushNotification) error
	SendOrderStatusEmail(ctx context.Context, order *models.Order, newStatus string) error
	SendLowStockAlert(ctx context.Context, alerts []models.StockAlert) error
}

// Dispatcher fans notifications out to the push and email providers. Either
// client may be nil when its credentials are not configured; those sends are
// skipped with a warning instead of failing callers.
type Dispatcher struct {
	cfg    config.PushConfig
	push   push.Client
	mailer mailer.Client
	logger *zap.Logger
}

// NewDispatcher wires a new notification dispatcher.
func NewDispatcher(cfg config.PushConfig, pushClient push.Client, mailerClient mailer.Client, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{cfg: cfg, push: pushClient, mailer: mailerClient, logger: logger}
}

// SendPush delivers a push payload, defaulting to the admin topic.
func (d *Dispatcher) SendPush(ctx context.Context, notification models.PushNotification) error {
	if d.push == nil {
		d.logger.Warn("push provider not configured, dropping notification", zap.String("title", notification.Title))
		return nil
	}

	topic := notification.Topic
	if topic == "" {
		topic = d.cfg.AdminTopic
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := d.push.SendToTopic(ctxWithTimeout, push.SendRequest{
		Topic: topic,
		Title: notification.Title,
		Body:  notification.Body,
		Data:  notification.Data,
	})
	return err
}

// SendOrderStatusEmail tells the customer their order moved to a new status.
func (d *Dispatcher) SendOrderStatusEmail(ctx context.Context, order *models.Order, newStatus string) error {
	if d.mailer == nil {
		d.logger.Warn("email provider not configured, dropping status email", zap.String("order_id", order.ID.Hex()))
		return nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := d.mailer.SendEmail(ctxWithTimeout, mailer.SendEmailRequest{
		To:      order.UserInfo.Email,
		Subject: fmt.Sprintf("Your order is now %s", newStatus),
		HTML:    orderStatusBody(order, newStatus),
	})
	return err
}

// SendLowStockAlert pushes an inventory warning to the admin topic.
func (d *Dispatcher) SendLowStockAlert(ctx context.Context, alerts []models.StockAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	lines := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		lines = append(lines, fmt.Sprintf("%s (%s): %s", alert.ProductName, alert.ColorName, strings.Join(alert.Sizes, ", ")))
	}

	return d.SendPush(ctx, models.PushNotification{
		Title: fmt.Sprintf("%d products need restocking", len(alerts)),
		Body:  strings.Join(lines, "\n"),
	})
}

func orderStatusBody(order *models.Order, newStatus string) string {
	name := order.UserInfo.Name
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	fmt.Fprintf(&b, "<p>Your order <strong>%s</strong> is now <strong>%s</strong>.</p>", order.ID.Hex(), newStatus)
	if len(order.Items) > 0 {
		b.WriteString("<ul>")
		for _, item := range order.Items {
			fmt.Fprintf(&b, "<li>%s (size %s)</li>", item.Name, item.Size)
		}
		b.WriteString("</ul>")
	}
	b.WriteString("<p>Thank you for shopping with us.</p>")
	return b.String()
}
