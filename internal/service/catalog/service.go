package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// Store persists catalog products.
type Store interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Insert(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service describes the operations the HTTP layer can perform.
type Service interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// Manager maintains the product catalog.
type Manager struct {
	store  Store
	logger *zap.Logger
}

// NewManager wires a new catalog service instance.
func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger}
}

// Get fetches one product.
func (m *Manager) Get(ctx context.Context, id string) (*models.Product, error) {
	return m.store.GetByID(ctx, id)
}

// List returns all products, newest first.
func (m *Manager) List(ctx context.Context) ([]models.Product, error) {
	return m.store.List(ctx)
}

// Create validates and persists a new product.
func (m *Manager) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	created, err := m.store.Insert(ctx, product)
	if err != nil {
		return nil, err
	}

	m.logger.Info("product created", zap.String("product_id", created.ID.Hex()), zap.String("name", created.Name))
	return created, nil
}

// Update validates and merges changes onto an existing product.
func (m *Manager) Update(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return m.store.Update(ctx, id, product)
}

// Delete removes a product.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func validateProduct(product models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return apperrors.Validation("name is required")
	}
	if product.Price < 0 {
		return apperrors.Validation("price must not be negative")
	}
	for _, color := range product.Colors {
		if strings.TrimSpace(color.Name) == "" {
			return apperrors.Validation("every color needs a name")
		}
		for size, qty := range color.Stock {
			if qty < 0 {
				return apperrors.Validation("stock for color %q size %q must not be negative", color.Name, size)
			}
		}
	}
	return nil
}
