// Package system provides a real clock implementation.
package system

import "time"

// Clock implements crawler.Clock using time.Now. Timestamps are always UTC so
// persisted records are comparable regardless of where a crawl ran.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time in UTC.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
