// Package sqlite provides an embedded SQLite-backed page store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Woeter69/web-scrapper/internal/crawler"
)

// Store persists page records in an embedded SQLite database, so a crawl can
// leave behind a queryable artifact without running any server.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// New opens the database at path, creating the file and its parent directory
// if needed, and ensures the schema.
func New(path string, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite supports a single writer; the crawl is sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	store := &Store{
		db:     db,
		path:   path,
		logger: logger,
	}
	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return store, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		domain TEXT NOT NULL,
		scraped_at TEXT NOT NULL,
		title TEXT NOT NULL,
		headings TEXT NOT NULL,
		paragraphs TEXT NOT NULL,
		links TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_domain ON pages(domain);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Upsert stores the record keyed by its URL, replacing any previous row for
// the same URL. List fields are stored as JSON text.
func (s *Store) Upsert(ctx context.Context, rec *crawler.PageRecord) error {
	headings, err := json.Marshal(rec.Headings)
	if err != nil {
		return fmt.Errorf("marshal headings: %w", err)
	}
	paragraphs, err := json.Marshal(rec.Paragraphs)
	if err != nil {
		return fmt.Errorf("marshal paragraphs: %w", err)
	}
	links, err := json.Marshal(rec.Links)
	if err != nil {
		return fmt.Errorf("marshal links: %w", err)
	}

	query := `
	INSERT INTO pages (url, domain, scraped_at, title, headings, paragraphs, links)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		domain = excluded.domain,
		scraped_at = excluded.scraped_at,
		title = excluded.title,
		headings = excluded.headings,
		paragraphs = excluded.paragraphs,
		links = excluded.links`
	_, err = s.db.ExecContext(ctx, query,
		rec.URL,
		rec.Domain,
		rec.ScrapedAt.UTC().Format(time.RFC3339Nano),
		rec.Title,
		string(headings),
		string(paragraphs),
		string(links),
	)
	if err != nil {
		return fmt.Errorf("upsert page %s: %w", rec.URL, err)
	}
	return nil
}

// Ping verifies the database file is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
