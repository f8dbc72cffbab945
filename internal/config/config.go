// Package config loads and validates scraper configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob the scraper reads at startup. All values
// originate from Viper so they can come from a config file or environment
// variables with the SCRAPER_ prefix (SCRAPER_MAX_PAGES, SCRAPER_STORAGE_PROVIDER, ...).
type Config struct {
	UserAgent      string        `mapstructure:"user_agent"`
	MaxPages       int           `mapstructure:"max_pages"`
	DelaySeconds   int           `mapstructure:"delay_seconds"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int           `mapstructure:"max_body_bytes"`
	OutputDir      string        `mapstructure:"output_dir"`
	Storage        StorageConfig `mapstructure:"storage"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
	Logging        LoggingConfig `mapstructure:"logging"`
}

// StorageConfig selects and configures the optional remote page store.
type StorageConfig struct {
	Provider string         `mapstructure:"provider"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
}

// MongoConfig holds MongoDB connection settings. An empty URI disables the
// remote store entirely; the crawl then persists to local files only.
type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

// SQLiteConfig holds the path of the embedded SQLite page store.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig controls the optional debug HTTP server. An empty address
// disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Providers accepted for storage.provider.
const (
	ProviderNone     = "none"
	ProviderMongo    = "mongo"
	ProviderPostgres = "postgres"
	ProviderSQLite   = "sqlite"
)

// Load builds a Config from disk/environment. When path is empty a
// config.yaml in the working directory is used if present; a missing file is
// not an error because every key has a default.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("user_agent", "GlobalWebScraper/1.0")
	v.SetDefault("max_pages", 10)
	v.SetDefault("delay_seconds", 1)
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("max_body_bytes", 10*1024*1024)
	v.SetDefault("output_dir", "scraped-data")
	v.SetDefault("storage.provider", ProviderMongo)
	v.SetDefault("storage.mongo.uri", "")
	v.SetDefault("storage.mongo.database", "web_scraper")
	v.SetDefault("storage.mongo.collection", "scraped_pages")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.table", "scraped_pages")
	v.SetDefault("storage.sqlite.path", "scraped-data/pages.db")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent must be set")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max_pages must be >= 0")
	}
	if c.DelaySeconds < 0 {
		return fmt.Errorf("delay_seconds must be >= 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be > 0")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	switch c.Storage.Provider {
	case ProviderNone, ProviderMongo:
	case ProviderPostgres:
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("storage.postgres.dsn must be set when storage.provider is %q", ProviderPostgres)
		}
	case ProviderSQLite:
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path must be set when storage.provider is %q", ProviderSQLite)
		}
	default:
		return fmt.Errorf("unknown storage.provider %q", c.Storage.Provider)
	}
	return nil
}

// Delay converts delay_seconds into a duration for the politeness pause.
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}
