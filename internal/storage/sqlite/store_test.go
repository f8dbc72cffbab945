package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Woeter69/web-scrapper/internal/crawler"
)

func testRecord() *crawler.PageRecord {
	return &crawler.PageRecord{
		URL:        "https://example.com/page",
		Domain:     "example.com",
		ScrapedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Title:      "Page",
		Headings:   []string{"Page", "Details"},
		Paragraphs: []string{"A paragraph comfortably over the length threshold."},
		Links:      []string{"https://example.com/other"},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "crawl.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store
}

func TestStoreUpsertReplacesRow(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Upsert(ctx, testRecord()))

	updated := testRecord()
	updated.Title = "Page, revised"
	require.NoError(t, store.Upsert(ctx, updated))

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count))
	require.Equal(t, 1, count, "upsert must not duplicate rows for the same URL")

	var title, headings string
	err := store.db.QueryRowContext(ctx,
		"SELECT title, headings FROM pages WHERE url = ?", updated.URL).Scan(&title, &headings)
	require.NoError(t, err)
	require.Equal(t, "Page, revised", title)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(headings), &got))
	require.Equal(t, updated.Headings, got)
}

func TestNewCreatesParentDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "deep", "crawl.db")
	store, err := New(path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})

	require.FileExists(t, path)
}

func TestStoreDistinctURLsKeepDistinctRows(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	first := testRecord()
	second := testRecord()
	second.URL = "https://example.com/other"
	require.NoError(t, store.Upsert(ctx, first))
	require.NoError(t, store.Upsert(ctx, second))

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count))
	require.Equal(t, 2, count)
}
