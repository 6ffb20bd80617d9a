package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// SaleRepository persists immutable offline sale records.
type SaleRepository struct {
	client *Client
}

// NewSaleRepository builds a repository over the offline_sales collection.
func NewSaleRepository(client *Client) *SaleRepository {
	return &SaleRepository{client: client}
}

func (r *SaleRepository) collection() *mongo.Collection {
	return r.client.database().Collection(collSales)
}

// Insert writes a sale record and returns it with the generated id. Meant to
// run inside WithTransaction alongside the stock update.
func (r *SaleRepository) Insert(ctx context.Context, sale models.OfflineSale) (*models.OfflineSale, error) {
	sale.ID = primitive.NewObjectID()
	if _, err := r.collection().InsertOne(ctx, sale); err != nil {
		return nil, fmt.Errorf("insert offline sale: %w", err)
	}
	return &sale, nil
}

// List returns sales matching the filter, newest sale date first.
func (r *SaleRepository) List(ctx context.Context, filter models.SaleFilter) ([]models.OfflineSale, error) {
	query := bson.M{}

	if !filter.Start.IsZero() || !filter.End.IsZero() {
		dateRange := bson.M{}
		if !filter.Start.IsZero() {
			dateRange["$gte"] = filter.Start
		}
		if !filter.End.IsZero() {
			dateRange["$lt"] = filter.End
		}
		query["saleDate"] = dateRange
	}

	if filter.ProductID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.ProductID)
		if err != nil {
			return nil, apperrors.Validation("invalid productId %q", filter.ProductID)
		}
		query["productId"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "saleDate", Value: -1}})
	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list offline sales: %w", err)
	}
	defer cursor.Close(ctx)

	var sales []models.OfflineSale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode offline sales: %w", err)
	}
	return sales, nil
}
