package crawler

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// sinkEntry pairs a sink with whether its failure fails the whole save.
type sinkEntry struct {
	sink     Sink
	required bool
}

// CompositeSink fans one save out to an ordered list of sinks. Every sink is
// attempted on every save regardless of earlier outcomes; optional failures
// are logged and counted, and the save as a whole fails only when a required
// sink fails.
type CompositeSink struct {
	entries []sinkEntry
	logger  *zap.Logger
}

// NewCompositeSink builds an empty composite. Append sinks in the order they
// should run.
func NewCompositeSink(logger *zap.Logger) *CompositeSink {
	return &CompositeSink{logger: logger}
}

// Append adds a sink; required marks whether its failure fails the save.
func (c *CompositeSink) Append(sink Sink, required bool) {
	c.entries = append(c.entries, sinkEntry{sink: sink, required: required})
}

// Name implements Sink.
func (c *CompositeSink) Name() string {
	return "composite"
}

// Save implements Sink.
func (c *CompositeSink) Save(ctx context.Context, rec *PageRecord) error {
	var firstRequired error
	for _, entry := range c.entries {
		err := entry.sink.Save(ctx, rec)
		if err == nil {
			continue
		}
		TotalSinkFailures.WithLabelValues(entry.sink.Name()).Inc()
		if !entry.required {
			c.logger.Warn("Optional sink save failed",
				zap.String("sink", entry.sink.Name()),
				zap.String("url", rec.URL),
				zap.Error(err))
			continue
		}
		c.logger.Error("Sink save failed",
			zap.String("sink", entry.sink.Name()),
			zap.String("url", rec.URL),
			zap.Error(err))
		if firstRequired == nil {
			firstRequired = fmt.Errorf("sink %s: %w", entry.sink.Name(), err)
		}
	}
	return firstRequired
}
