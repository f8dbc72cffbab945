package crawler

import (
	"context"
	"time"
)

// Fetcher retrieves one URL and returns the body plus metadata. Network
// errors, timeouts, and non-2xx statuses all surface as errors so the engine
// sees a single "fetch failed" outcome.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*FetchResult, error)
}

// Gate decides per URL whether a fetch is permitted and owns the configured
// politeness delay. It never sleeps itself; the engine applies the delay.
type Gate interface {
	Evaluate(ctx context.Context, pageURL string) Decision
	Delay() time.Duration
}

// Sink durably records one page.
type Sink interface {
	Save(ctx context.Context, rec *PageRecord) error
	Name() string
}

// PageStore is the slice of a remote store the StoreSink needs: an upsert
// keyed by record URL.
type PageStore interface {
	Upsert(ctx context.Context, rec *PageRecord) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces crawl run IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
