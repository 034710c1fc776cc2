// Package basesvc provides the generic MongoDB-backed service that domain
// services embed or wrap.
package basesvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"video_vault/internal/common"
)

// BaseServiceMongo defines the document store contract this system needs:
// point create, point read, conditional whole-document replace, and a
// collection scan. Implemented on *mongo.Collection; faked in tests.
//
// Type parameters:
//   - Model: document type
type BaseServiceMongo[Model any] interface {
	// InsertOne creates a new document.
	InsertOne(ctx context.Context, data Model) (Model, error)

	// FindOneByID point-reads a document by its _id. A missing document
	// returns common.ErrNotFound, which is a normal outcome callers must
	// branch on, not a failure.
	FindOneByID(ctx context.Context, id string) (Model, error)

	// Find scans the collection with the given filter and options.
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)

	// ReplaceOne replaces the whole document matching filter. When the
	// filter matches nothing (document gone, or its version moved on) it
	// returns common.ErrConflict; the caller decides whether that means
	// not-found or a stale write.
	ReplaceOne(ctx context.Context, filter interface{}, doc Model) error
}

// BaseServiceMongoImpl implements BaseServiceMongo on a collection handle.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo creates a base service for the given collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection returns the underlying MongoDB collection.
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// InsertOne creates a new document in the collection.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T
	if _, err := s.collection.InsertOne(ctx, data); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return data, nil
}

// FindOneByID point-reads a document by _id.
func (s *BaseServiceMongoImpl[T]) FindOneByID(ctx context.Context, id string) (T, error) {
	var result T
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// Find scans the collection with filter and options.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// ReplaceOne replaces the document matching filter with doc.
func (s *BaseServiceMongoImpl[T]) ReplaceOne(ctx context.Context, filter interface{}, doc T) error {
	result, err := s.collection.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return common.ErrConflict
	}
	return nil
}
