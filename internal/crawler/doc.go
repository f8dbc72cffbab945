// Package crawler implements the bounded single-host crawling engine,
// including the fetcher, robots gate, content extractor, sinks, and the
// breadth-first orchestration loop used by the web-scrapper CLI.
package crawler
