// Package mongo provides the MongoDB-backed page store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Woeter69/web-scrapper/internal/crawler"
)

// probeTimeout bounds connection and ping attempts so an unreachable server
// degrades the crawl to local-only instead of stalling it.
const probeTimeout = 2 * time.Second

// collection is the slice of *mongo.Collection the store uses; tests
// substitute a fake.
type collection interface {
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// Store persists page records in a MongoDB collection, one document per URL.
type Store struct {
	client *mongo.Client
	coll   collection
	logger *zap.Logger
}

// New connects a Store to the given database and collection. The driver
// connects lazily; call Ping to verify the server is actually reachable.
func New(ctx context.Context, uri, database, collectionName string, logger *zap.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
		logger: logger,
	}, nil
}

// Ping probes server connectivity within probeTimeout.
func (s *Store) Ping(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := s.client.Ping(probeCtx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// Upsert stores the record keyed by its URL, replacing any previous document
// for the same URL.
func (s *Store) Upsert(ctx context.Context, rec *crawler.PageRecord) error {
	filter := bson.M{"url": rec.URL}
	update := bson.M{"$set": rec}
	if _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert page %s: %w", rec.URL, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}
