// Package main hosts the web-scrapper CLI entrypoint.
//
// Architecture overview:
//   - CLI: cmd builds a Cobra command tree. The application container is
//     assembled in PersistentPreRunE from internal/app and stashed in the
//     command context, so subcommands stay decoupled from service wiring.
//   - Crawl engine: internal/crawler.Engine walks one site breadth-first
//     from a seed URL. A FIFO frontier plus a visited set guarantees each
//     URL is fetched at most once per run; the page budget (max_pages)
//     bounds the crawl.
//   - Politeness: robots.txt is fetched once per origin and cached for the
//     run. Disallowed URLs are skipped without being marked visited, and a
//     fixed delay separates successive page fetches. Unreachable robots
//     policies fail open.
//   - Fetch & extract: pages are fetched through a Colly collector with a
//     shared transport, then parsed with goquery. The extractor pulls the
//     title, h1-h3 headings, paragraphs longer than 20 runes, and deduped
//     same-host links, decoding non-UTF-8 charsets when declared.
//   - Persistence: every scraped page is written as pretty-printed JSON
//     under output_dir/<domain>/. When a remote store (MongoDB, PostgreSQL,
//     or SQLite) is configured, pages are also upserted there keyed by URL;
//     a dead remote store degrades to local-only output at startup.
//   - Configuration & plumbing: Viper populates config from config.yaml and
//     SCRAPER_* env vars; zap provides structured logging; Prometheus
//     counters track scraped pages, robots denials, and sink failures, and
//     are exposed on an optional debug HTTP server (metrics.addr).
//
// Operational notes:
//   - Concurrency model: one crawl at a time, one fetch in flight. The
//     frontier and visited set are plain maps owned by the engine loop.
//   - Shutdown: SIGINT/SIGTERM cancel the command context; the engine stops
//     at the next loop iteration and reports the pages already scraped.
//   - The debug server exposes /healthz, /readyz, and /metrics and runs only
//     while a crawl is in flight.
//
// Quick checklist:
//   - Configure via config.yaml or env vars: SCRAPER_MAX_PAGES,
//     SCRAPER_DELAY_SECONDS, SCRAPER_USER_AGENT, SCRAPER_OUTPUT_DIR,
//     SCRAPER_STORAGE_PROVIDER (none/mongo/postgres/sqlite), and the
//     matching SCRAPER_STORAGE_* connection settings.
//   - Run locally: go run . crawl https://example.com (or omit the URL to
//     be prompted for one).
package main
