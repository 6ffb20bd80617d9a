package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// SpendingRepository persists business expenses.
type SpendingRepository struct {
	client *Client
}

// NewSpendingRepository builds a repository over the spendings collection.
func NewSpendingRepository(client *Client) *SpendingRepository {
	return &SpendingRepository{client: client}
}

func (r *SpendingRepository) collection() *mongo.Collection {
	return r.client.database().Collection(collSpendings)
}

// Insert writes a spending and returns it with the generated id.
func (r *SpendingRepository) Insert(ctx context.Context, spending models.Spending) (*models.Spending, error) {
	now := time.Now().UTC()
	spending.ID = primitive.NewObjectID()
	spending.CreatedAt = now
	spending.UpdatedAt = now

	if _, err := r.collection().InsertOne(ctx, spending); err != nil {
		return nil, fmt.Errorf("insert spending: %w", err)
	}
	return &spending, nil
}

// List returns spendings matching the filter, newest first.
func (r *SpendingRepository) List(ctx context.Context, filter models.SpendingFilter) ([]models.Spending, error) {
	query := bson.M{}

	if !filter.Start.IsZero() || !filter.End.IsZero() {
		dateRange := bson.M{}
		if !filter.Start.IsZero() {
			dateRange["$gte"] = filter.Start
		}
		if !filter.End.IsZero() {
			dateRange["$lt"] = filter.End
		}
		query["date"] = dateRange
	}

	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list spendings: %w", err)
	}
	defer cursor.Close(ctx)

	var spendings []models.Spending
	if err := cursor.All(ctx, &spendings); err != nil {
		return nil, fmt.Errorf("decode spendings: %w", err)
	}
	return spendings, nil
}

// Delete removes a spending by id.
func (r *SpendingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("spending %s not found", id)
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete spending %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("spending %s not found", id)
	}
	return nil
}
