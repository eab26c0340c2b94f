package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/shared"
)

// Dispatcher drains buffered domain events from aggregates after they
// have been persisted and publishes them to the in-process bus.
// Dispatch is synchronous: when Dispatch returns, every subscribed
// handler has run. The aggregate's buffer is cleared afterwards so a
// later save cannot re-publish the same events.
type Dispatcher struct {
	bus    shared.EventPublisher
	logger *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(bus shared.EventPublisher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		bus:    bus,
		logger: logger,
	}
}

// Dispatch publishes all buffered events of the given aggregates and
// clears their buffers. Events that fail in handlers are logged by the
// bus; the write that produced them has already committed.
func (d *Dispatcher) Dispatch(ctx context.Context, aggregates ...shared.AggregateRoot) error {
	for _, aggregate := range aggregates {
		events := aggregate.GetDomainEvents()
		if len(events) == 0 {
			continue
		}

		if err := d.bus.Publish(ctx, events...); err != nil {
			return err
		}

		d.logger.Debug("domain events dispatched",
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Int("count", len(events)),
		)

		aggregate.ClearDomainEvents()
	}
	return nil
}
