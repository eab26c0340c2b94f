package broker

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/integration"
)

// KafkaPublisher publishes integration events to Kafka, one topic per
// event type. Writers are created lazily per topic and reused.
type KafkaPublisher struct {
	brokers []string
	logger  *zap.Logger

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given broker addresses
func NewKafkaPublisher(brokers []string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		brokers: brokers,
		logger:  logger,
		writers: make(map[string]*kafka.Writer),
	}
}

// Publish serializes the event to JSON and writes it to the topic for
// its event type, keyed by the event's natural id.
func (p *KafkaPublisher) Publish(ctx context.Context, event integration.Event) error {
	topic := integration.TopicFor(event.EventType())

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal integration event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.Key()),
		Value: payload,
	}

	if err := p.writer(topic).WriteMessages(ctx, message); err != nil {
		p.logger.Error("failed to publish integration event",
			zap.String("topic", topic),
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("integration event published",
		zap.String("topic", topic),
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("key", event.Key()),
	)

	return nil
}

// writer returns the writer for a topic, creating it on first use
func (p *KafkaPublisher) writer(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafka.Writer{
		Addr:     kafka.TCP(p.brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	p.writers[topic] = w
	return w
}

// Close closes all topic writers
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}

// Ensure KafkaPublisher implements Publisher
var _ integration.Publisher = (*KafkaPublisher)(nil)
