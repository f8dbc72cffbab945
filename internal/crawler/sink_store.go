package crawler

import (
	"context"
	"fmt"
)

// StoreSink adapts a remote PageStore to the Sink interface.
type StoreSink struct {
	store PageStore
	name  string
}

// NewStoreSink wraps store under the given sink name (surfaces in logs and
// metric labels).
func NewStoreSink(name string, store PageStore) *StoreSink {
	return &StoreSink{
		store: store,
		name:  name,
	}
}

// Name implements Sink.
func (s *StoreSink) Name() string {
	return s.name
}

// Save implements Sink by upserting the record keyed on its URL.
func (s *StoreSink) Save(ctx context.Context, rec *PageRecord) error {
	if err := s.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upsert %s: %w", rec.URL, err)
	}
	return nil
}
