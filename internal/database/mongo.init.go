// Package database wires the MongoDB client and ensures the schema-level
// prerequisites (database, collections, indexes) exist before traffic.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"video_vault/internal/logger"
)

// Connect opens a MongoDB client for the given connection string and
// verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.GetAppLogger().Info("Connected to MongoDB")
	return client, nil
}

// EnsureDatabaseAndCollections makes sure the database and the videos
// collection exist, creating the collection when absent. MongoDB creates
// the database implicitly with its first collection. Also ensures the
// createdAt descending index backing the video list scan.
func EnsureDatabaseAndCollections(client *mongo.Client, dbName string, collections ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)

	collList, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, collectionName := range collections {
		exists := false
		for _, existingColl := range collList {
			if existingColl == collectionName {
				exists = true
				break
			}
		}
		if !exists {
			logger.GetAppLogger().Infof("Collection %s does not exist, creating it", collectionName)
			if err := db.CreateCollection(ctx, collectionName); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
			}
		}

		if err := ensureCreatedAtIndex(ctx, db.Collection(collectionName)); err != nil {
			return err
		}
	}

	logger.GetAppLogger().Infof("Database and collections are ensured in database: %s", dbName)
	return nil
}

// ensureCreatedAtIndex creates the createdAt descending index used for
// newest-first list queries. CreateOne is a no-op when it already exists.
func ensureCreatedAtIndex(ctx context.Context, collection *mongo.Collection) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_createdAt_desc"),
	}
	if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create createdAt index on %s: %w", collection.Name(), err)
	}
	return nil
}
