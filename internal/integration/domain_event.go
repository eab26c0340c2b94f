package integration

import (
	"time"

	"github.com/google/uuid"
)

// DomainEventAdapter presents an integration event through the in-process
// domain event interface, so bus decorators like the idempotency wrapper
// can be reused for broker-delivered events.
type DomainEventAdapter struct {
	Event
}

// OccurredAt returns when the event was created
func (a DomainEventAdapter) OccurredAt() time.Time {
	return a.Event.OccurredOn()
}

// AggregateID returns the event's partition key parsed as a uuid, or
// uuid.Nil when the key is not uuid-shaped (e.g. a username).
func (a DomainEventAdapter) AggregateID() uuid.UUID {
	if id, err := uuid.Parse(a.Key()); err == nil {
		return id
	}
	return uuid.Nil
}

// AggregateType identifies the adapted event as broker-originated
func (a DomainEventAdapter) AggregateType() string {
	return "IntegrationEvent"
}
