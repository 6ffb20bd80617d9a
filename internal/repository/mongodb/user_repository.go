package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// UserRepository reads storefront accounts, consumed only for counting.
type UserRepository struct {
	client *Client
}

// NewUserRepository builds a repository over the users collection.
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

// List returns all storefront accounts.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.client.database().Collection(collUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// SubscriberRepository reads newsletter signups.
type SubscriberRepository struct {
	client *Client
}

// NewSubscriberRepository builds a repository over the newsletter_signups
// collection.
func NewSubscriberRepository(client *Client) *SubscriberRepository {
	return &SubscriberRepository{client: client}
}

func (r *SubscriberRepository) collection() *mongo.Collection {
	return r.client.database().Collection(collNewsletter)
}

// List returns all newsletter signups, newest first.
func (r *SubscriberRepository) List(ctx context.Context) ([]models.Subscriber, error) {
	opts := options.Find().SetSort(bson.D{{Key: "subscribedAt", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var subscribers []models.Subscriber
	if err := cursor.All(ctx, &subscribers); err != nil {
		return nil, fmt.Errorf("decode subscribers: %w", err)
	}
	return subscribers, nil
}
