// Package app initializes and holds the scraper's long-lived services,
// acting as a dependency injection container for the CLI commands.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Woeter69/web-scrapper/internal/api"
	"github.com/Woeter69/web-scrapper/internal/clock/system"
	"github.com/Woeter69/web-scrapper/internal/config"
	"github.com/Woeter69/web-scrapper/internal/crawler"
	"github.com/Woeter69/web-scrapper/internal/id/uuid"
	"github.com/Woeter69/web-scrapper/internal/storage"
	"go.uber.org/zap"
)

// storeProbeTimeout bounds the startup reachability check of the remote
// store. Crawls should not hang on a dead database before the first fetch.
const storeProbeTimeout = 2 * time.Second

// App holds the shared services for one scraper process: the resolved
// configuration, the logger, and the optional remote page store. It is
// created once at startup and handed to the command layer.
type App struct {
	cfg    config.Config
	logger *zap.Logger
	store  storage.Store
}

// Build assembles the application services. The remote store is strictly
// optional: if it is disabled, misconfigured, or unreachable the scraper
// logs a warning and continues with local file output only, so Build never
// fails.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) *App {
	a := &App{cfg: cfg, logger: logger}
	a.store = a.setupStore(ctx)
	return a
}

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Config returns the resolved configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Run executes one crawl from seedURL and returns its summary. When a
// metrics address is configured, the debug HTTP server runs for the duration
// of the crawl and is shut down before Run returns.
func (a *App) Run(ctx context.Context, seedURL string) (*crawler.Summary, error) {
	engine, err := a.buildEngine()
	if err != nil {
		return nil, err
	}

	var metricsSrv *api.Server
	if addr := a.cfg.Metrics.Addr; addr != "" {
		metricsSrv = api.NewServer(addr, a.logger.Named("api"))
		go func() {
			if err := metricsSrv.Start(); err != nil {
				a.logger.Warn("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	summary, err := engine.Crawl(ctx, seedURL)

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := metricsSrv.Shutdown(shutdownCtx); serr != nil {
			a.logger.Warn("Metrics server shutdown failed", zap.Error(serr))
		}
	}

	return summary, err
}

// Close releases the remote store connection if one was established.
func (a *App) Close(ctx context.Context) {
	if a.store == nil {
		return
	}
	if err := a.store.Close(ctx); err != nil {
		a.logger.Warn("Error closing remote store", zap.Error(err))
	}
}

// setupStore connects and probes the configured remote store. Any failure
// degrades to local-only persistence rather than aborting startup.
func (a *App) setupStore(ctx context.Context) storage.Store {
	store, err := storage.New(ctx, a.cfg.Storage, a.logger.Named("storage"))
	if err != nil {
		a.logger.Warn("Remote store unavailable; continuing with local files only", zap.Error(err))
		return nil
	}
	if store == nil {
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, storeProbeTimeout)
	defer cancel()
	if err := store.Ping(probeCtx); err != nil {
		a.logger.Warn("Remote store unreachable; continuing with local files only", zap.Error(err))
		closeCtx, cancelClose := context.WithTimeout(context.Background(), storeProbeTimeout)
		defer cancelClose()
		if cerr := store.Close(closeCtx); cerr != nil {
			a.logger.Warn("Error closing unreachable store", zap.Error(cerr))
		}
		return nil
	}

	a.logger.Info("Remote store connected", zap.String("provider", a.cfg.Storage.Provider))
	return store
}

// buildEngine wires fetcher, robots gate, extractor, and sinks into a crawl
// engine. The local file sink is mandatory; the remote store, when present,
// is attached as an optional sink ahead of it.
func (a *App) buildEngine() (*crawler.Engine, error) {
	sink := crawler.NewCompositeSink(a.logger.Named("sink"))
	if a.store != nil {
		sink.Append(crawler.NewStoreSink(a.cfg.Storage.Provider, a.store), false)
	}
	fileSink, err := crawler.NewFileSink(a.cfg.OutputDir, a.logger.Named("files"))
	if err != nil {
		return nil, fmt.Errorf("prepare output directory: %w", err)
	}
	sink.Append(fileSink, true)

	fetcher := crawler.NewCollyFetcher(a.cfg.UserAgent, a.cfg.RequestTimeout, a.cfg.MaxBodyBytes, a.logger.Named("fetcher"))
	gate := crawler.NewRobotsGate(a.cfg.UserAgent, a.cfg.Delay(), a.cfg.RequestTimeout, a.logger.Named("robots"))

	return crawler.NewEngine(
		crawler.Config{MaxPages: a.cfg.MaxPages},
		a.logger.Named("crawler"),
		fetcher,
		gate,
		crawler.NewExtractor(),
		sink,
		system.New(),
		uuid.New(),
	), nil
}
