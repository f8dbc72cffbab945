package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Woeter69/web-scrapper/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		UserAgent:      "app-test-agent/1.0",
		MaxPages:       2,
		DelaySeconds:   0,
		RequestTimeout: 5 * time.Second,
		MaxBodyBytes:   1 << 20,
		OutputDir:      t.TempDir(),
		Storage:        config.StorageConfig{Provider: config.ProviderNone},
	}
}

func TestAppRunCrawlsEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Home</title></head><body>
			<a href="/a">first</a> <a href="/b">second</a></body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.Metrics.Addr = "127.0.0.1:0"

	a := Build(context.Background(), cfg, zap.NewNop())
	t.Cleanup(func() { a.Close(context.Background()) })

	summary, err := a.Run(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, 2, summary.PagesScraped)
	require.Equal(t, srv.URL, summary.Seed)
	require.NotEmpty(t, summary.CrawlID)

	parsed, err := url.Parse(srv.URL)
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Join(cfg.OutputDir, parsed.Host))
	require.NoError(t, err)
	require.Len(t, entries, 2, "each scraped page is saved as one file")
}

func TestBuildWithoutProviderHasNoStore(t *testing.T) {
	t.Parallel()

	a := Build(context.Background(), testConfig(t), zap.NewNop())
	require.Nil(t, a.store)
}

func TestBuildDegradesWhenStoreUnavailable(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Storage = config.StorageConfig{
		Provider: config.ProviderPostgres,
		Postgres: config.PostgresConfig{DSN: "://not-a-dsn"},
	}

	a := Build(context.Background(), cfg, zap.NewNop())
	require.Nil(t, a.store, "a broken store must not block startup")
}

func TestRunFailsWhenOutputDirUnwritable(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	cfg.OutputDir = blocker

	a := Build(context.Background(), cfg, zap.NewNop())
	summary, err := a.Run(context.Background(), "https://example.com")
	require.Error(t, err)
	require.Nil(t, summary)
	require.Contains(t, err.Error(), "output directory")
}
