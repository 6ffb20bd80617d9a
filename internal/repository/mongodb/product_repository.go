package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// ProductRepository persists catalog products.
type ProductRepository struct {
	client *Client
}

// NewProductRepository builds a repository over the products collection.
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

func (r *ProductRepository) collection() *mongo.Collection {
	return r.client.database().Collection(collProducts)
}

// GetByID fetches one product. A malformed or unknown id maps to NotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("product %s not found", id)
	}

	var product models.Product
	err = r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("product %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &product, nil
}

// List returns all products, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Insert writes a new product and returns it with the generated id.
func (r *ProductRepository) Insert(ctx context.Context, product models.Product) (*models.Product, error) {
	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection().InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &product, nil
}

// Update merges the provided fields onto an existing product.
func (r *ProductRepository) Update(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("product %s not found", id)
	}

	update := bson.M{"$set": bson.M{
		"name":      product.Name,
		"price":     product.Price,
		"category":  product.Category,
		"colors":    product.Colors,
		"updatedAt": time.Now().UTC(),
	}}

	res, err := r.collection().UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, apperrors.NotFound("product %s not found", id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("product %s not found", id)
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("product %s not found", id)
	}
	return nil
}

// UpdateColorStock replaces the stock map of one color variant, leaving the
// other colors untouched. Meant to run inside WithTransaction.
func (r *ProductRepository) UpdateColorStock(ctx context.Context, productID string, colorName string, stock map[string]int) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return apperrors.NotFound("product %s not found", productID)
	}

	filter := bson.M{"_id": oid, "colors.name": colorName}
	update := bson.M{"$set": bson.M{
		"colors.$.stock": stock,
		"updatedAt":      time.Now().UTC(),
	}}

	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update stock for product %s color %s: %w", productID, colorName, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("product %s has no color %q", productID, colorName)
	}
	return nil
}
