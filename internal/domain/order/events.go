package order

import "github.com/shopstream/backend/internal/domain/shared"

// Domain event types for the order aggregate
const (
	EventTypeOrderCreated = "order.created"
	EventTypeOrderUpdated = "order.updated"
)

// OrderCreatedEvent is recorded when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	Order *Order `json:"-"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		Order:           o,
	}
}

// OrderUpdatedEvent is recorded when an order's header fields change
type OrderUpdatedEvent struct {
	shared.BaseDomainEvent
	Order *Order `json:"-"`
}

// NewOrderUpdatedEvent creates a new OrderUpdatedEvent
func NewOrderUpdatedEvent(o *Order) *OrderUpdatedEvent {
	return &OrderUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderUpdated, "Order", o.ID),
		Order:           o,
	}
}
