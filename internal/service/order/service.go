package order

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// Store reads orders and applies status transitions.
type Store interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// Notifier informs the customer of a status change. Delivery is best-effort;
// a failed notification never fails the transition.
type Notifier interface {
	SendOrderStatusEmail(ctx context.Context, order *models.Order, newStatus string) error
}

// Service describes the operations the HTTP layer can perform.
type Service interface {
	List(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
}

// Manager handles the admin-driven order lifecycle.
type Manager struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
}

// NewManager wires a new order service instance.
func NewManager(store Store, notifier Notifier, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, notifier: notifier, logger: logger}
}

// List returns orders, optionally restricted to one status, newest first.
func (m *Manager) List(ctx context.Context, status string) ([]models.Order, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, apperrors.Validation("unknown status %q, expected one of: %s", status, strings.Join(models.OrderStatuses, ", "))
	}
	return m.store.List(ctx, status)
}

// UpdateStatus moves an order to a new status and emails the customer.
func (m *Manager) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Validation("unknown status %q, expected one of: %s", status, strings.Join(models.OrderStatuses, ", "))
	}

	order, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.store.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if m.notifier != nil && order.UserInfo.Email != "" {
		if err := m.notifier.SendOrderStatusEmail(ctx, order, status); err != nil {
			m.logger.Warn("status email failed",
				zap.String("order_id", id),
				zap.String("status", status),
				zap.Error(err))
		}
	}

	order.Status = status
	return order, nil
}
