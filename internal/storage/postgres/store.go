// Package postgres provides the Postgres-backed page store.
package postgres

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Woeter69/web-scrapper/internal/crawler"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config controls the Postgres connection pool used for page rows.
type Config struct {
	DSN             string
	Table           string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// execCloser is the slice of *pgxpool.Pool the store uses; tests substitute
// pgxmock.
type execCloser interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Ping(context.Context) error
	Close()
}

// Store writes page rows into Postgres, one row per URL.
type Store struct {
	pool   execCloser
	table  string
	logger *zap.Logger
}

// New creates a Postgres-backed Store using the provided config and ensures
// the page table exists.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("storage.postgres.dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "pages"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	store := &Store{
		pool:   pool,
		table:  table,
		logger: logger,
	}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewWithPool constructs a store from an existing pool (primarily for
// testing). It does not touch the schema.
func NewWithPool(pool execCloser, table string, logger *zap.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "pages"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Store{
		pool:   pool,
		table:  table,
		logger: logger,
	}, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	url TEXT PRIMARY KEY,
	domain TEXT NOT NULL,
	scraped_at TIMESTAMPTZ NOT NULL,
	title TEXT NOT NULL,
	headings TEXT[] NOT NULL,
	paragraphs TEXT[] NOT NULL,
	links TEXT[] NOT NULL
)`, s.table)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure table %s: %w", s.table, err)
	}
	return nil
}

// Upsert stores the record keyed by its URL, replacing any previous row for
// the same URL.
func (s *Store) Upsert(ctx context.Context, rec *crawler.PageRecord) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("page store is not configured")
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	url,
	domain,
	scraped_at,
	title,
	headings,
	paragraphs,
	links
) VALUES (
	$1,$2,$3,$4,$5,$6,$7
)
ON CONFLICT (url) DO UPDATE SET
	domain = EXCLUDED.domain,
	scraped_at = EXCLUDED.scraped_at,
	title = EXCLUDED.title,
	headings = EXCLUDED.headings,
	paragraphs = EXCLUDED.paragraphs,
	links = EXCLUDED.links`, s.table)

	args := []any{
		rec.URL,
		rec.Domain,
		rec.ScrapedAt,
		rec.Title,
		rec.Headings,
		rec.Paragraphs,
		rec.Links,
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert page %s: %w", rec.URL, err)
	}
	return nil
}

// Ping probes pool connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Close releases the underlying pool resources.
func (s *Store) Close(context.Context) error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}
