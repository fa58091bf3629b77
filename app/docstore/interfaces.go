package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// DocumentStore is the operation surface the loader needs from the document
// sink.
type DocumentStore interface {
	Drop(ctx context.Context, collection string) error
	InsertMany(ctx context.Context, collection string, docs []any, ordered bool) (*mongo.InsertManyResult, error)
	CreateIndexes(ctx context.Context, collection string, models []mongo.IndexModel) error
}
