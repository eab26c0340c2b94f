package broker

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrMalformedEvent signals that a message payload cannot be parsed.
// The consumer commits such messages so a poison pill does not block the
// partition; retrying a payload that can never parse is pointless.
var ErrMalformedEvent = errors.New("malformed event payload")

// HandlerFunc processes a single message payload.
// Returning ErrMalformedEvent (possibly wrapped) commits the message
// without processing; any other error leaves the offset uncommitted so
// the broker redelivers.
type HandlerFunc func(ctx context.Context, payload []byte) error

// Consumer reads messages from one topic and hands them to a HandlerFunc
// with at-least-once delivery: offsets are committed only after the
// handler succeeds.
type Consumer struct {
	reader      *kafka.Reader
	handler     HandlerFunc
	logger      *zap.Logger
	maxAttempts int
	backoffBase time.Duration
}

// ConsumerConfig holds the settings for a Consumer
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	MaxAttempts int
	BackoffBase time.Duration
}

// NewConsumer creates a consumer for the given topic and group
func NewConsumer(cfg ConsumerConfig, handler HandlerFunc, logger *zap.Logger) *Consumer {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &Consumer{
		reader:      reader,
		handler:     handler,
		logger:      logger,
		maxAttempts: cfg.MaxAttempts,
		backoffBase: cfg.BackoffBase,
	}
}

// Start runs the consume loop until the context is cancelled or a
// message exhausts its handler attempts, in which case the handler
// error is returned and the failed offset stays uncommitted.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting kafka consumer",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group_id", c.reader.Config().GroupID),
	)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer context cancelled, stopping",
					zap.String("topic", c.reader.Config().Topic),
				)
				return nil
			}
			c.logger.Error("failed to fetch message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoffBase):
			}
			continue
		}

		if err := c.processMessage(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Stop without committing. Committing a later offset would
			// implicitly acknowledge this one; leaving the group lets
			// the broker redeliver it after the rebalance.
			c.logger.Error("exhausted all handler attempts, stopping without commit",
				zap.Error(err),
				zap.String("topic", m.Topic),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
			)
			return err
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("failed to commit message offset",
				zap.Error(err),
				zap.String("topic", m.Topic),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
			)
		}
	}
}

// processMessage runs the handler with retries.
// A nil return means the offset can be committed; any error means it
// must stay uncommitted.
func (c *Consumer) processMessage(ctx context.Context, m kafka.Message) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := c.backoffBase * time.Duration(1<<uint(attempt-2))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := c.handler(ctx, m.Value)
		if err == nil {
			return nil
		}

		if errors.Is(err, ErrMalformedEvent) {
			c.logger.Error("malformed message, committing poison pill",
				zap.Error(err),
				zap.String("topic", m.Topic),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
			)
			return nil
		}

		lastErr = err
		c.logger.Warn("message handler failed",
			zap.Error(err),
			zap.String("topic", m.Topic),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.maxAttempts),
		)
	}

	return lastErr
}

// Close closes the underlying reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
