package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalPagesScraped tracks the number of pages successfully fetched,
	// extracted, and persisted.
	TotalPagesScraped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_pages_scraped_total",
		Help: "The total number of pages successfully scraped and saved.",
	})
	// TotalFetchFailures tracks fetches that ended in a transport error,
	// timeout, or non-2xx status.
	TotalFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_fetch_failures_total",
		Help: "The total number of failed page fetches.",
	})
	// TotalRobotsDenied tracks URLs skipped because robots.txt forbids them.
	TotalRobotsDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_robots_denied_total",
		Help: "The total number of URLs skipped due to robots exclusion.",
	})
	// TotalRobotsUnavailable tracks policy lookups that failed and were
	// allowed through by the fail-open rule.
	TotalRobotsUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_robots_unavailable_total",
		Help: "The total number of robots policy lookups that failed open.",
	})
	// TotalLinksDiscovered tracks same-domain links appended to the frontier.
	TotalLinksDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_links_discovered_total",
		Help: "The total number of same-domain links added to the frontier.",
	})
	// TotalSinkFailures tracks persistence failures, labeled by sink.
	TotalSinkFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_sink_failures_total",
		Help: "The total number of failed record saves, labeled by sink.",
	}, []string{"sink"})
)
