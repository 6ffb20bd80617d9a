package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// OrderRepository reads online orders and applies status transitions.
type OrderRepository struct {
	client *Client
}

// NewOrderRepository builds a repository over the orders collection.
func NewOrderRepository(client *Client) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) collection() *mongo.Collection {
	return r.client.database().Collection(collOrders)
}

// GetByID fetches one order.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("order %s not found", id)
	}

	var order models.Order
	err = r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("order %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return &order, nil
}

// List returns orders, optionally restricted to one status, newest first.
func (r *OrderRepository) List(ctx context.Context, status string) ([]models.Order, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("order %s not found", id)
	}

	res, err := r.collection().UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update order %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("order %s not found", id)
	}
	return nil
}
