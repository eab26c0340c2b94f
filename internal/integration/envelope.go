package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is an integration event carried across service boundaries.
// The identity fields come from the embedded Envelope; Key returns the
// natural id used as the broker partition key.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	OccurredOn() time.Time
	Key() string
}

// Envelope holds the identity of an integration event.
// The id and timestamp are captured once at construction so that logging,
// deduplication and serialization all observe the same values.
type Envelope struct {
	ID         uuid.UUID `json:"id"`
	OccurredAt time.Time `json:"occurredOn"`
	Type       string    `json:"eventType"`
}

// NewEnvelope creates an envelope for the given event type
func NewEnvelope(eventType string) Envelope {
	return Envelope{
		ID:         uuid.New(),
		OccurredAt: time.Now().UTC(),
		Type:       eventType,
	}
}

// EventID returns the unique event identifier
func (e Envelope) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e Envelope) EventType() string {
	return e.Type
}

// OccurredOn returns when the event was created
func (e Envelope) OccurredOn() time.Time {
	return e.OccurredAt
}

// Publisher sends integration events to the message broker.
// Delivery is at-least-once; publish failures propagate to the caller.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
