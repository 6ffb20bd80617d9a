package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

type memStore struct {
	orders map[string]*models.Order
}

func (s *memStore) GetByID(_ context.Context, id string) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order %s not found", id)
	}
	copied := *o
	return &copied, nil
}

func (s *memStore) List(_ context.Context, status string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id, status string) error {
	o, ok := s.orders[id]
	if !ok {
		return apperrors.NotFound("order %s not found", id)
	}
	o.Status = status
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) SendOrderStatusEmail(_ context.Context, _ *models.Order, newStatus string) error {
	n.sent = append(n.sent, newStatus)
	return n.err
}

func seedOrder() (*memStore, string) {
	o := &models.Order{
		ID:       primitive.NewObjectID(),
		Status:   models.OrderStatusNew,
		UserInfo: models.OrderUserInfo{Email: "customer@example.com"},
	}
	return &memStore{orders: map[string]*models.Order{o.ID.Hex(): o}}, o.ID.Hex()
}

func TestUpdateStatus_TransitionsAndNotifies(t *testing.T) {
	store, id := seedOrder()
	notifier := &fakeNotifier{}
	svc := NewManager(store, notifier, nil)

	updated, err := svc.UpdateStatus(context.Background(), id, models.OrderStatusShipped)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, models.OrderStatusShipped, store.orders[id].Status)
	assert.Equal(t, []string{models.OrderStatusShipped}, notifier.sent)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	store, id := seedOrder()
	svc := NewManager(store, &fakeNotifier{}, nil)

	_, err := svc.UpdateStatus(context.Background(), id, "Cancelled")
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.OrderStatusNew, store.orders[id].Status)
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	store, _ := seedOrder()
	svc := NewManager(store, &fakeNotifier{}, nil)

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), models.OrderStatusPending)
	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestUpdateStatus_NotificationFailureDoesNotFailTransition(t *testing.T) {
	store, id := seedOrder()
	notifier := &fakeNotifier{err: errors.New("provider down")}
	svc := NewManager(store, notifier, nil)

	updated, err := svc.UpdateStatus(context.Background(), id, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestList_RejectsUnknownStatusFilter(t *testing.T) {
	store, _ := seedOrder()
	svc := NewManager(store, &fakeNotifier{}, nil)

	_, err := svc.List(context.Background(), "Refunded")
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	orders, err := svc.List(context.Background(), models.OrderStatusNew)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
