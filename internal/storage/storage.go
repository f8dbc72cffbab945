// Package storage selects and constructs the optional remote page store.
// The abstraction keeps the crawl independent of a specific backend: the
// engine only ever sees an upsert keyed by URL.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Woeter69/web-scrapper/internal/config"
	"github.com/Woeter69/web-scrapper/internal/crawler"
	"github.com/Woeter69/web-scrapper/internal/storage/mongo"
	"github.com/Woeter69/web-scrapper/internal/storage/postgres"
	"github.com/Woeter69/web-scrapper/internal/storage/sqlite"
)

// Store is a page store: an upsert keyed by record URL, a connectivity
// probe, and a closer. Implementations must keep one document/row per URL.
type Store interface {
	Upsert(ctx context.Context, rec *crawler.PageRecord) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New builds the store named by cfg.Provider. A nil Store with a nil error
// means remote storage is disabled and the crawl runs local-only.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Provider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderMongo:
		if cfg.Mongo.URI == "" {
			logger.Info("Mongo URI not configured; remote storage disabled")
			return nil, nil
		}
		return mongo.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, logger)
	case config.ProviderPostgres:
		return postgres.New(ctx, postgres.Config{
			DSN:   cfg.Postgres.DSN,
			Table: cfg.Postgres.Table,
		}, logger)
	case config.ProviderSQLite:
		return sqlite.New(cfg.SQLite.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
