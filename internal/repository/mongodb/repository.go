package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Collection names used across the admin console.
const (
	collProducts   = "products"
	collSales      = "offline_sales"
	collSpendings  = "spendings"
	collOrders     = "orders"
	collUsers      = "users"
	collNewsletter = "newsletter_signups"
	collSnapshots  = "stats_snapshots"
)

// Client wraps the shared MongoDB connection and hands out collection-scoped
// repositories.
type Client struct {
	client *mongo.Client
	dbName string
}

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(ctx context.Context, uri, dbName string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: client, dbName: dbName}, nil
}

func (c *Client) database() *mongo.Database {
	return c.client.Database(c.dbName)
}

// WithTransaction runs fn inside a causally consistent multi-document
// transaction. Operations issued with the callback context join the
// transaction; the driver re-runs fn on transient conflicts, so stock reads
// inside fn always see committed state.
func (c *Client) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := c.client.StartSession()
	if err != nil {
		return fmt.Errorf("start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	}, txOpts)
	return err
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
