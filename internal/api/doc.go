// Package api exposes the scraper's debug HTTP surface: health probes for
// liveness checks and a Prometheus metrics endpoint. The server is optional
// and runs only for the duration of a crawl.
package api
