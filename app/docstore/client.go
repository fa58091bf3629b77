package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client wraps the MongoDB connection for the document sink.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects to the document sink and verifies the connection.
func NewClient(ctx context.Context, uri, dbName string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: client, db: client.Database(dbName)}, nil
}

// Close releases the connection. Safe to call on every exit path.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func (c *Client) Drop(ctx context.Context, collection string) error {
	return c.db.Collection(collection).Drop(ctx)
}

func (c *Client) InsertMany(ctx context.Context, collection string, docs []any, ordered bool) (*mongo.InsertManyResult, error) {
	return c.db.Collection(collection).InsertMany(ctx, docs,
		options.InsertMany().SetOrdered(ordered))
}

func (c *Client) CreateIndexes(ctx context.Context, collection string, models []mongo.IndexModel) error {
	_, err := c.db.Collection(collection).Indexes().CreateMany(ctx, models)
	return err
}

var _ DocumentStore = (*Client)(nil)
