package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// maxRobotsBytes caps how much of a robots.txt response is read.
const maxRobotsBytes = 1 << 20

// RobotsGate enforces robots.txt directives per origin and owns the
// politeness delay between visits. Evaluate returns a three-valued Decision
// rather than swallowing lookup errors: the engine maps DecisionUnavailable
// to an allow (fail-open), favoring availability when the policy itself
// cannot be fetched.
//
// The crawl loop is sequential, so the per-origin cache is a plain map with a
// single owner.
type RobotsGate struct {
	client    *http.Client
	cache     map[string]*robotstxt.RobotsData
	userAgent string
	delay     time.Duration
	logger    *zap.Logger
}

// NewRobotsGate builds a RobotsGate; timeout bounds each robots.txt fetch.
func NewRobotsGate(userAgent string, delay, timeout time.Duration, logger *zap.Logger) *RobotsGate {
	return &RobotsGate{
		client:    &http.Client{Timeout: timeout},
		cache:     make(map[string]*robotstxt.RobotsData),
		userAgent: userAgent,
		delay:     delay,
		logger:    logger,
	}
}

// Delay returns the configured pause between successful visits. The gate is
// the source of truth for the value; the engine does the sleeping.
func (g *RobotsGate) Delay() time.Duration {
	return g.delay
}

// Evaluate implements Gate. Denials are never cached per URL: a denied URL
// rediscovered later is evaluated again against the (cached) policy.
func (g *RobotsGate) Evaluate(ctx context.Context, pageURL string) Decision {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return DecisionUnavailable
	}
	data, err := g.load(ctx, parsed)
	if err != nil {
		g.logger.Warn("robots policy unavailable; failing open",
			zap.String("url", pageURL), zap.Error(err))
		return DecisionUnavailable
	}
	group := data.FindGroup(g.userAgent)
	if group == nil {
		return DecisionAllow
	}
	robotsPath := parsed.EscapedPath()
	if robotsPath == "" {
		robotsPath = "/"
	}
	if group.Test(robotsPath) {
		return DecisionAllow
	}
	return DecisionDeny
}

// load fetches and parses robots.txt for the URL's origin, caching successes
// for the remainder of the crawl. Failures are not cached, so a later URL on
// the same origin retries the lookup.
func (g *RobotsGate) load(ctx context.Context, parsed *url.URL) (*robotstxt.RobotsData, error) {
	origin := strings.ToLower(parsed.Scheme + "://" + parsed.Host)
	if data, ok := g.cache[origin]; ok {
		return data, nil
	}

	robotsURL := *parsed
	robotsURL.Path = path.Join("/", "robots.txt")
	robotsURL.RawPath = ""
	robotsURL.RawQuery = ""
	robotsURL.Fragment = ""
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new robots request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			g.logger.Debug("Failed to close robots response body", zap.Error(cerr))
		}
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return nil, fmt.Errorf("read robots body: %w", err)
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots: %w", err)
	}
	g.cache[origin] = data
	return data, nil
}
