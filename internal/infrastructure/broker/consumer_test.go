package broker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConsumer(handler HandlerFunc) *Consumer {
	return &Consumer{
		handler:     handler,
		logger:      zap.NewNop(),
		maxAttempts: 3,
		backoffBase: time.Millisecond,
	}
}

func TestConsumer_ProcessMessage(t *testing.T) {
	ctx := context.Background()
	msg := kafka.Message{Topic: "shopstream.order-created", Value: []byte(`{}`)}

	t.Run("successful handling commits", func(t *testing.T) {
		calls := 0
		c := newTestConsumer(func(ctx context.Context, payload []byte) error {
			calls++
			return nil
		})

		assert.NoError(t, c.processMessage(ctx, msg))
		assert.Equal(t, 1, calls)
	})

	t.Run("malformed payload commits without retrying", func(t *testing.T) {
		calls := 0
		c := newTestConsumer(func(ctx context.Context, payload []byte) error {
			calls++
			return fmt.Errorf("decode order event: %w", ErrMalformedEvent)
		})

		assert.NoError(t, c.processMessage(ctx, msg))
		assert.Equal(t, 1, calls)
	})

	t.Run("persistent failure exhausts retries and surfaces the handler error", func(t *testing.T) {
		calls := 0
		handlerErr := errors.New("db unavailable")
		c := newTestConsumer(func(ctx context.Context, payload []byte) error {
			calls++
			return handlerErr
		})

		err := c.processMessage(ctx, msg)
		require.Error(t, err)
		assert.ErrorIs(t, err, handlerErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("transient failure succeeds on retry", func(t *testing.T) {
		calls := 0
		c := newTestConsumer(func(ctx context.Context, payload []byte) error {
			calls++
			if calls < 2 {
				return errors.New("db unavailable")
			}
			return nil
		})

		assert.NoError(t, c.processMessage(ctx, msg))
		assert.Equal(t, 2, calls)
	})

	t.Run("cancelled context stops retrying without commit", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		c := newTestConsumer(func(ctx context.Context, payload []byte) error {
			cancel()
			return errors.New("db unavailable")
		})

		err := c.processMessage(cancelled, msg)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
