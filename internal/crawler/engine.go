package crawler

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// Config holds the settings for one crawl session. It is decoupled from
// Viper so the engine stays testable without configuration machinery.
type Config struct {
	// MaxPages caps how many pages a crawl may successfully scrape. Zero
	// means the crawl is an immediate no-op.
	MaxPages int
}

// Engine walks one site breadth-first from a seed URL: it pops the frontier
// head, asks the gate for permission, fetches, extracts, persists, then
// appends the page's same-domain links to the frontier tail. Per-page errors
// are contained in their iteration; the loop ends only when the frontier or
// the page budget runs out.
//
// An Engine runs one crawl at a time; Crawl is not safe for concurrent use.
type Engine struct {
	cfg       Config
	logger    *zap.Logger
	fetcher   Fetcher
	gate      Gate
	extractor *Extractor
	sink      Sink
	clock     Clock
	ids       IDGenerator
	pause     pauseController
}

// NewEngine wires an Engine from its collaborators.
func NewEngine(
	cfg Config,
	logger *zap.Logger,
	fetcher Fetcher,
	gate Gate,
	extractor *Extractor,
	sink Sink,
	clk Clock,
	ids IDGenerator,
) *Engine {
	return &Engine{
		cfg:       cfg,
		logger:    logger,
		fetcher:   fetcher,
		gate:      gate,
		extractor: extractor,
		sink:      sink,
		clock:     clk,
		ids:       ids,
		pause:     &timerPauseController{},
	}
}

// Crawl runs one bounded breadth-first crawl from seedURL and reports what
// happened. The seed must be an absolute http(s) URL. On cancellation the
// returned summary reflects the progress made and the context's error is
// returned alongside it.
func (e *Engine) Crawl(ctx context.Context, seedURL string) (*Summary, error) {
	parsed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("parse seed URL %q: %w", seedURL, err)
	}
	if !isWebScheme(parsed.Scheme) || parsed.Host == "" {
		return nil, fmt.Errorf("seed URL %q is not an absolute http(s) URL", seedURL)
	}
	crawlID, err := e.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate crawl id: %w", err)
	}

	logger := e.logger.With(
		zap.String("crawl_id", crawlID),
		zap.String("seed", seedURL),
	)
	summary := &Summary{
		CrawlID: crawlID,
		Seed:    seedURL,
	}
	start := e.clock.Now()
	state := newCrawlState(seedURL)

	logger.Info("Starting crawl", zap.Int("max_pages", e.cfg.MaxPages))

	for state.pending() > 0 && state.scraped < e.cfg.MaxPages {
		if ctx.Err() != nil {
			logger.Warn("Crawl canceled", zap.Int("pages_scraped", state.scraped))
			break
		}
		current, ok := state.popFront()
		if !ok || state.isVisited(current) {
			continue
		}

		switch e.gate.Evaluate(ctx, current) {
		case DecisionDeny:
			// Denied URLs stay unvisited so a later rediscovery is
			// re-evaluated against the policy.
			TotalRobotsDenied.Inc()
			summary.Skipped++
			logger.Info("Skipping URL disallowed by robots.txt", zap.String("url", current))
			continue
		case DecisionUnavailable:
			TotalRobotsUnavailable.Inc()
		}

		res, err := e.fetcher.Fetch(ctx, current)
		if err != nil {
			state.markVisited(current)
			summary.Failed++
			TotalFetchFailures.Inc()
			logger.Warn("Fetch failed", zap.String("url", current), zap.Error(err))
			continue
		}

		rec, err := e.extractor.Extract(current, res)
		if err != nil {
			state.markVisited(current)
			summary.Failed++
			logger.Warn("Extraction failed", zap.String("url", current), zap.Error(err))
			continue
		}
		rec.ScrapedAt = e.clock.Now()

		if err := e.sink.Save(ctx, rec); err != nil {
			state.markVisited(current)
			summary.Failed++
			logger.Error("Save failed", zap.String("url", current), zap.Error(err))
			continue
		}

		state.markVisited(current)
		state.scraped++
		TotalPagesScraped.Inc()
		added := state.enqueue(rec.Links)
		TotalLinksDiscovered.Add(float64(added))
		logger.Info("Page scraped",
			zap.String("url", current),
			zap.String("title", rec.Title),
			zap.Int("links_found", len(rec.Links)),
			zap.Int("links_enqueued", added),
			zap.Int("pages_scraped", state.scraped),
		)

		e.pause.Pause(ctx, e.gate.Delay())
	}

	summary.PagesScraped = state.scraped
	summary.Duration = e.clock.Now().Sub(start)
	logger.Info("Crawl finished",
		zap.Int("pages_scraped", summary.PagesScraped),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration),
	)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
