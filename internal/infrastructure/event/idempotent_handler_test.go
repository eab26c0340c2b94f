package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/shared"
)

type fakeIdempotencyStore struct {
	seen     map[string]bool
	markErr  error
	markKeys []string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	if s.markErr != nil {
		return false, s.markErr
	}
	s.markKeys = append(s.markKeys, eventID)
	if s.seen[eventID] {
		return false, nil
	}
	s.seen[eventID] = true
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	return s.seen[eventID], nil
}

func (s *fakeIdempotencyStore) Close() error {
	return nil
}

func TestIdempotentHandler_Handle(t *testing.T) {
	t.Run("first delivery is processed", func(t *testing.T) {
		inner := &recordingHandler{types: []string{"order.created"}}
		store := newFakeIdempotencyStore()
		handler := NewIdempotentHandler(inner, store, zap.NewNop())

		err := handler.Handle(context.Background(), newTestEvent("order.created"))

		require.NoError(t, err)
		assert.Len(t, inner.received, 1)
		assert.Equal(t, int64(1), handler.Metrics().EventsProcessed.Load())
	})

	t.Run("duplicate delivery is skipped", func(t *testing.T) {
		inner := &recordingHandler{types: []string{"order.created"}}
		store := newFakeIdempotencyStore()
		handler := NewIdempotentHandler(inner, store, zap.NewNop())
		event := newTestEvent("order.created")

		require.NoError(t, handler.Handle(context.Background(), event))
		require.NoError(t, handler.Handle(context.Background(), event))

		assert.Len(t, inner.received, 1)
		assert.Equal(t, int64(1), handler.Metrics().EventsDuplicate.Load())
	})

	t.Run("store failure processes the event anyway", func(t *testing.T) {
		inner := &recordingHandler{types: []string{"order.created"}}
		store := newFakeIdempotencyStore()
		store.markErr = errors.New("redis down")
		handler := NewIdempotentHandler(inner, store, zap.NewNop())

		err := handler.Handle(context.Background(), newTestEvent("order.created"))

		require.NoError(t, err)
		assert.Len(t, inner.received, 1)
	})

	t.Run("handler failure propagates and keeps the key", func(t *testing.T) {
		inner := &recordingHandler{types: []string{"order.created"}, err: errors.New("boom")}
		store := newFakeIdempotencyStore()
		handler := NewIdempotentHandler(inner, store, zap.NewNop())
		event := newTestEvent("order.created")

		err := handler.Handle(context.Background(), event)

		require.Error(t, err)
		assert.Equal(t, int64(1), handler.Metrics().EventsFailed.Load())

		processed, err := store.IsProcessed(context.Background(), event.EventID().String())
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("disabled config bypasses the store", func(t *testing.T) {
		inner := &recordingHandler{types: []string{"order.created"}}
		store := newFakeIdempotencyStore()
		handler := NewIdempotentHandler(inner, store, zap.NewNop(),
			WithIdempotencyConfig(shared.IdempotencyConfig{Enabled: false}))

		require.NoError(t, handler.Handle(context.Background(), newTestEvent("order.created")))

		assert.Len(t, inner.received, 1)
		assert.Empty(t, store.markKeys)
	})
}
