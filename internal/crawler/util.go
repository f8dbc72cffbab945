package crawler

import (
	"net/url"
	"strings"
)

// maxFilenameRunes bounds sanitized URL filenames so records stay within
// filesystem path limits. Collisions past the bound overwrite each other,
// which is acceptable for an ad-hoc single-site crawl.
const maxFilenameRunes = 100

// sanitizeFilename derives the local filename for a record URL: scheme
// markers stripped, path separators and query markers replaced, truncated to
// maxFilenameRunes, with a .json suffix.
func sanitizeFilename(rawURL string) string {
	name := strings.TrimPrefix(rawURL, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "?", "_")
	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = string(runes[:maxFilenameRunes])
	}
	return name + ".json"
}

// sameHost reports whether two URLs share a host (host:port, case-insensitive,
// no subdomain folding).
func sameHost(a, b *url.URL) bool {
	if a == nil || b == nil {
		return false
	}
	return strings.EqualFold(a.Host, b.Host)
}

// isWebScheme filters the anchor schemes the crawler follows.
func isWebScheme(scheme string) bool {
	return scheme == "http" || scheme == "https"
}
