package crawler

import (
	"time"
)

// PageRecord is the unit of extracted knowledge persisted for each scraped
// page. URL is the canonical identity key: re-scraping the same URL replaces
// the stored record, it never duplicates it.
type PageRecord struct {
	URL        string    `json:"url" bson:"url"`
	Domain     string    `json:"domain" bson:"domain"`
	ScrapedAt  time.Time `json:"scraped_at" bson:"scraped_at"`
	Title      string    `json:"title" bson:"title"`
	Headings   []string  `json:"headings" bson:"headings"`
	Paragraphs []string  `json:"paragraphs" bson:"paragraphs"`
	Links      []string  `json:"links" bson:"links"`
}

// NoTitle is the sentinel stored when a page has no usable title element.
const NoTitle = "No Title"

// FetchResult carries the body and metadata of one successful fetch.
type FetchResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Decision is the three-valued outcome of a robots policy check.
type Decision int

// Gate decisions. Unavailable means the policy could not be resolved; the
// engine maps it to an allow (fail-open) and says so in the logs.
const (
	DecisionAllow Decision = iota
	DecisionDeny
	DecisionUnavailable
)

// String returns a log-friendly name for the decision.
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDeny:
		return "deny"
	case DecisionUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Summary reports the outcome of one crawl invocation.
type Summary struct {
	CrawlID      string        `json:"crawl_id"`
	Seed         string        `json:"seed"`
	PagesScraped int           `json:"pages_scraped"`
	Skipped      int           `json:"skipped"`
	Failed       int           `json:"failed"`
	Duration     time.Duration `json:"duration"`
}
