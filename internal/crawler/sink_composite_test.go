package crawler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type errorSink struct {
	name  string
	err   error
	calls int
}

func (s *errorSink) Name() string { return s.name }

func (s *errorSink) Save(context.Context, *PageRecord) error {
	s.calls++
	return s.err
}

type fakeStore struct {
	recs []*PageRecord
	err  error
}

func (s *fakeStore) Upsert(_ context.Context, rec *PageRecord) error {
	if s.err != nil {
		return s.err
	}
	s.recs = append(s.recs, rec)
	return nil
}

func TestCompositeSinkOptionalFailureDoesNotFailSave(t *testing.T) {
	t.Parallel()
	remote := &errorSink{name: "mongo", err: errors.New("connection reset")}
	local := &memorySink{}
	composite := NewCompositeSink(zap.NewNop())
	composite.Append(remote, false)
	composite.Append(local, true)

	err := composite.Save(context.Background(), testRecord())
	require.NoError(t, err, "an optional sink failing must not fail the save")
	require.Equal(t, 1, remote.calls)
	require.Len(t, local.saved, 1, "the mandatory sink still runs after an optional failure")
}

func TestCompositeSinkRequiredFailureFailsSave(t *testing.T) {
	t.Parallel()
	broken := &errorSink{name: "file", err: errors.New("disk full")}
	local := &memorySink{}
	composite := NewCompositeSink(zap.NewNop())
	composite.Append(broken, true)
	composite.Append(local, true)

	err := composite.Save(context.Background(), testRecord())
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
	require.Len(t, local.saved, 1, "later sinks are still attempted after a required failure")
}

func TestCompositeSinkAllSucceed(t *testing.T) {
	t.Parallel()
	first := &memorySink{}
	second := &memorySink{}
	composite := NewCompositeSink(zap.NewNop())
	composite.Append(first, false)
	composite.Append(second, true)

	require.NoError(t, composite.Save(context.Background(), testRecord()))
	require.Len(t, first.saved, 1)
	require.Len(t, second.saved, 1)
}

func TestStoreSinkUpserts(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	sink := NewStoreSink("mongo", store)
	require.Equal(t, "mongo", sink.Name())

	rec := testRecord()
	require.NoError(t, sink.Save(context.Background(), rec))
	require.Len(t, store.recs, 1)
	require.Same(t, rec, store.recs[0])
}

func TestStoreSinkWrapsError(t *testing.T) {
	t.Parallel()
	cause := errors.New("no reachable servers")
	sink := NewStoreSink("mongo", &fakeStore{err: cause})

	err := sink.Save(context.Background(), testRecord())
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "https://example.com/products/item?id=42")
}
