package spending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

type memStore struct {
	spendings  []models.Spending
	lastFilter models.SpendingFilter
}

func (s *memStore) Insert(_ context.Context, spending models.Spending) (*models.Spending, error) {
	spending.ID = primitive.NewObjectID()
	spending.CreatedAt = time.Now().UTC()
	spending.UpdatedAt = spending.CreatedAt
	s.spendings = append(s.spendings, spending)
	return &spending, nil
}

func (s *memStore) List(_ context.Context, filter models.SpendingFilter) ([]models.Spending, error) {
	s.lastFilter = filter
	return s.spendings, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	for i, spending := range s.spendings {
		if spending.ID.Hex() == id {
			s.spendings = append(s.spendings[:i], s.spendings[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("spending %s not found", id)
}

func TestRecord_PersistsWithDefaults(t *testing.T) {
	store := &memStore{}
	svc := NewRecorder(store, nil)

	created, err := svc.Record(context.Background(), Input{
		Description: "packaging tape",
		Amount:      12.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "general", created.Category)
	assert.False(t, created.Date.IsZero())
	assert.False(t, created.ID.IsZero())
	assert.Len(t, store.spendings, 1)
}

func TestRecord_Validation(t *testing.T) {
	svc := NewRecorder(&memStore{}, nil)

	cases := []struct {
		name  string
		input Input
	}{
		{"missing description", Input{Amount: 10}},
		{"zero amount", Input{Description: "ads", Amount: 0}},
		{"negative amount", Input{Description: "ads", Amount: -3}},
		{"unknown category", Input{Description: "ads", Amount: 10, Category: "snacks"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.input)
			var validationErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestList_RejectsUnknownCategoryFilter(t *testing.T) {
	store := &memStore{}
	svc := NewRecorder(store, nil)

	_, err := svc.List(context.Background(), models.SpendingFilter{Category: "snacks"})
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	filter := models.SpendingFilter{Category: "marketing", Start: time.Now().AddDate(0, -1, 0)}
	_, err = svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, filter, store.lastFilter)
}

func TestDelete(t *testing.T) {
	store := &memStore{}
	svc := NewRecorder(store, nil)

	created, err := svc.Record(context.Background(), Input{Description: "ads", Amount: 10})
	require.NoError(t, err)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, svc.Delete(context.Background(), ""), &validationErr)

	require.NoError(t, svc.Delete(context.Background(), created.ID.Hex()))
	assert.Empty(t, store.spendings)

	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(t, svc.Delete(context.Background(), created.ID.Hex()), &notFoundErr)
}
