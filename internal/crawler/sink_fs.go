package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSink writes one indented JSON document per scraped page under
// root/<domain>/<sanitized-url>.json. Saves are idempotent: re-saving a URL
// overwrites the previous record in place.
type FileSink struct {
	root   string
	logger *zap.Logger
}

// NewFileSink returns a sink rooted at root, creating the directory if
// needed.
func NewFileSink(root string, logger *zap.Logger) (*FileSink, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create sink dir %s: %w", root, err)
	}
	return &FileSink{
		root:   root,
		logger: logger,
	}, nil
}

// Name implements Sink.
func (s *FileSink) Name() string {
	return "file"
}

// Save implements Sink.
func (s *FileSink) Save(ctx context.Context, rec *PageRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	dir := filepath.Join(s.root, rec.Domain)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating record dir %s: %w", dir, err)
	}
	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	target := filepath.Join(dir, sanitizeFilename(rec.URL))
	if err := os.WriteFile(target, payload, 0o600); err != nil {
		return fmt.Errorf("write record %s: %w", target, err)
	}
	s.logger.Debug("Record written", zap.String("path", target))
	return nil
}
