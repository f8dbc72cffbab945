package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// No t.Parallel: Load reads the process environment.
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent-but-unused"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.UserAgent != "GlobalWebScraper/1.0" {
		t.Fatalf("unexpected default user agent %q", cfg.UserAgent)
	}
	if cfg.MaxPages != 10 {
		t.Fatalf("expected default max_pages 10, got %d", cfg.MaxPages)
	}
	if cfg.DelaySeconds != 1 {
		t.Fatalf("expected default delay_seconds 1, got %d", cfg.DelaySeconds)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("expected default request_timeout 10s, got %v", cfg.RequestTimeout)
	}
	if cfg.OutputDir != "scraped-data" {
		t.Fatalf("expected default output_dir scraped-data, got %q", cfg.OutputDir)
	}
	if cfg.Storage.Provider != ProviderMongo {
		t.Fatalf("expected default provider mongo, got %q", cfg.Storage.Provider)
	}
	if cfg.Storage.Mongo.URI != "" {
		t.Fatalf("expected empty default mongo uri, got %q", cfg.Storage.Mongo.URI)
	}
	if cfg.Storage.Mongo.Database != "web_scraper" || cfg.Storage.Mongo.Collection != "scraped_pages" {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Storage.Mongo)
	}
	if got := cfg.Delay(); got != time.Second {
		t.Fatalf("expected delay 1s, got %v", got)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
user_agent: test-agent/2.0
max_pages: 25
delay_seconds: 0
request_timeout: 3s
output_dir: out
storage:
  provider: sqlite
  sqlite:
    path: out/pages.db
metrics:
  addr: "127.0.0.1:9091"
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.UserAgent != "test-agent/2.0" {
		t.Fatalf("expected user agent override, got %q", cfg.UserAgent)
	}
	if cfg.MaxPages != 25 || cfg.DelaySeconds != 0 {
		t.Fatalf("expected crawl overrides to apply: %+v", cfg)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("expected request_timeout 3s, got %v", cfg.RequestTimeout)
	}
	if cfg.Storage.Provider != ProviderSQLite || cfg.Storage.SQLite.Path != "out/pages.db" {
		t.Fatalf("expected sqlite storage overrides: %+v", cfg.Storage)
	}
	if cfg.Metrics.Addr != "127.0.0.1:9091" {
		t.Fatalf("expected metrics addr override, got %q", cfg.Metrics.Addr)
	}
	if cfg.Logging.Development {
		t.Fatal("expected development logging to be disabled")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SCRAPER_MAX_PAGES", "3")
	t.Setenv("SCRAPER_USER_AGENT", "env-agent/1.0")
	t.Setenv("SCRAPER_STORAGE_PROVIDER", "none")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxPages != 3 {
		t.Fatalf("expected env max_pages 3, got %d", cfg.MaxPages)
	}
	if cfg.UserAgent != "env-agent/1.0" {
		t.Fatalf("expected env user agent, got %q", cfg.UserAgent)
	}
	if cfg.Storage.Provider != ProviderNone {
		t.Fatalf("expected env provider none, got %q", cfg.Storage.Provider)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		UserAgent:      "agent",
		MaxPages:       10,
		DelaySeconds:   1,
		RequestTimeout: 10 * time.Second,
		MaxBodyBytes:   1024,
		OutputDir:      "scraped-data",
		Storage:        StorageConfig{Provider: ProviderNone},
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{
			name:   "missing user agent",
			mutate: func(c *Config) { c.UserAgent = "" },
			want:   "user_agent",
		},
		{
			name:   "negative max pages",
			mutate: func(c *Config) { c.MaxPages = -1 },
			want:   "max_pages",
		},
		{
			name:   "negative delay",
			mutate: func(c *Config) { c.DelaySeconds = -2 },
			want:   "delay_seconds",
		},
		{
			name:   "zero timeout",
			mutate: func(c *Config) { c.RequestTimeout = 0 },
			want:   "request_timeout",
		},
		{
			name:   "missing output dir",
			mutate: func(c *Config) { c.OutputDir = "" },
			want:   "output_dir",
		},
		{
			name:   "postgres without dsn",
			mutate: func(c *Config) { c.Storage.Provider = ProviderPostgres },
			want:   "storage.postgres.dsn",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Storage.Provider = ProviderSQLite
				c.Storage.SQLite.Path = ""
			},
			want: "storage.sqlite.path",
		},
		{
			name:   "unknown provider",
			mutate: func(c *Config) { c.Storage.Provider = "redis" },
			want:   "storage.provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
