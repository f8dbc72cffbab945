package crawler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollyFetcher implements Fetcher using the Colly collector. Robots handling
// is disabled on the collector because the gate owns that decision, and URL
// revisits are allowed because the engine's visited set is the sole dedup
// guard.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based Fetcher. maxBodyBytes
// caps how much of a response body is buffered.
func NewCollyFetcher(userAgent string, timeout time.Duration, maxBodyBytes int, logger *zap.Logger) *CollyFetcher {
	base := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(maxBodyBytes),
	)
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(timeout)

	return &CollyFetcher{
		baseCollector: base,
		logger:        logger,
	}
}

// Fetch retrieves one page via a clone of the base collector. Transport
// errors, timeouts, and non-2xx statuses all surface as errors, matching the
// engine's single failure path.
func (f *CollyFetcher) Fetch(ctx context.Context, pageURL string) (*FetchResult, error) {
	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchOutcome, 1)
	var once sync.Once
	send := func(res fetchOutcome) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		contentType := ""
		if r.Headers != nil {
			contentType = r.Headers.Get("Content-Type")
		}
		send(fetchOutcome{result: &FetchResult{
			StatusCode:  r.StatusCode,
			Body:        append([]byte{}, r.Body...),
			ContentType: contentType,
		}})
	})

	collector.OnError(func(_ *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		send(fetchOutcome{err: err})
	})

	if err := collector.Visit(pageURL); err != nil {
		return nil, err
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return res.result, res.err
	default:
		return nil, errors.New("fetch produced no result")
	}
}

type fetchOutcome struct {
	result *FetchResult
	err    error
}
