package spending

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// Store persists spendings.
type Store interface {
	Insert(ctx context.Context, spending models.Spending) (*models.Spending, error)
	List(ctx context.Context, filter models.SpendingFilter) ([]models.Spending, error)
	Delete(ctx context.Context, id string) error
}

// Service describes the operations the HTTP layer can perform.
type Service interface {
	Record(ctx context.Context, input Input) (*models.Spending, error)
	List(ctx context.Context, filter models.SpendingFilter) ([]models.Spending, error)
	Delete(ctx context.Context, id string) error
}

// Input is a spending creation request.
type Input struct {
	Description string
	Amount      float64
	Category    string
	Date        time.Time
	Notes       string
}

// Recorder validates and stores spendings.
type Recorder struct {
	store  Store
	logger *zap.Logger
}

// NewRecorder wires a new spending service instance.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, logger: logger}
}

// Record validates and persists one spending. An empty category falls back
// to the default; anything outside the fixed label set is rejected.
func (r *Recorder) Record(ctx context.Context, input Input) (*models.Spending, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.Validation("description is required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.Validation("amount must be greater than zero")
	}

	category := input.Category
	if category == "" {
		category = models.DefaultSpendingCategory
	}
	if !models.ValidSpendingCategory(category) {
		return nil, apperrors.Validation("unknown category %q, expected one of: %s", category, strings.Join(models.SpendingCategories, ", "))
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	spending := models.Spending{
		Description: input.Description,
		Amount:      input.Amount,
		Category:    category,
		Date:        date,
		Notes:       input.Notes,
	}

	created, err := r.store.Insert(ctx, spending)
	if err != nil {
		return nil, err
	}

	r.logger.Info("spending recorded",
		zap.String("spending_id", created.ID.Hex()),
		zap.String("category", created.Category),
		zap.Float64("amount", created.Amount))

	return created, nil
}

// List returns spendings matching the filter, newest first.
func (r *Recorder) List(ctx context.Context, filter models.SpendingFilter) ([]models.Spending, error) {
	if filter.Category != "" && !models.ValidSpendingCategory(filter.Category) {
		return nil, apperrors.Validation("unknown category %q", filter.Category)
	}
	return r.store.List(ctx, filter)
}

// Delete removes a spending by id.
func (r *Recorder) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("id is required")
	}
	return r.store.Delete(ctx, id)
}
