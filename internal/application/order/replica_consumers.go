package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/order"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/infrastructure/broker"
	"github.com/shopstream/backend/internal/integration"
)

// ProductReplicaHandler projects ProductUpserted integration events into
// the order service's local product replica table. Redelivery is safe:
// the upsert is keyed by the originating product id.
type ProductReplicaHandler struct {
	replicas order.ProductReplicaRepository
	logger   *zap.Logger
}

// NewProductReplicaHandler creates a new ProductReplicaHandler
func NewProductReplicaHandler(replicas order.ProductReplicaRepository, logger *zap.Logger) *ProductReplicaHandler {
	return &ProductReplicaHandler{
		replicas: replicas,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ProductReplicaHandler) EventTypes() []string {
	return []string{integration.EventTypeProductUpserted}
}

// Handle upserts the product replica for the event.
// A missing or invalid product id is logged and dropped, not retried.
func (h *ProductReplicaHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	adapter, ok := event.(integration.DomainEventAdapter)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	upserted, ok := adapter.Event.(*integration.ProductUpsertedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	productID, err := uuid.Parse(upserted.ProductID)
	if err != nil || productID == uuid.Nil {
		h.logger.Warn("product upserted event carries no usable product id, skipping",
			zap.String("event_id", upserted.EventID().String()),
			zap.String("product_id", upserted.ProductID),
		)
		return nil
	}

	if err := h.replicas.Upsert(ctx, &order.ProductReplica{
		ID:    productID,
		Name:  upserted.Name,
		Price: upserted.Price,
	}); err != nil {
		return fmt.Errorf("failed to upsert product replica: %w", err)
	}

	h.logger.Debug("product replica upserted",
		zap.String("product_id", productID.String()),
		zap.String("name", upserted.Name),
	)

	return nil
}

// CustomerReplicaHandler projects UserRegistered integration events into
// the order service's local customer replica table. An existing replica
// for the same user id is left untouched.
type CustomerReplicaHandler struct {
	replicas order.CustomerReplicaRepository
	logger   *zap.Logger
}

// NewCustomerReplicaHandler creates a new CustomerReplicaHandler
func NewCustomerReplicaHandler(replicas order.CustomerReplicaRepository, logger *zap.Logger) *CustomerReplicaHandler {
	return &CustomerReplicaHandler{
		replicas: replicas,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CustomerReplicaHandler) EventTypes() []string {
	return []string{integration.EventTypeUserRegistered}
}

// Handle inserts a customer replica for the registered account.
// The replica's name falls back to the email when the username is blank.
func (h *CustomerReplicaHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	adapter, ok := event.(integration.DomainEventAdapter)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	registered, ok := adapter.Event.(*integration.UserRegisteredEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	userID, err := uuid.Parse(registered.UserID)
	if err != nil || userID == uuid.Nil {
		h.logger.Warn("user registered event carries no usable user id, skipping",
			zap.String("event_id", registered.EventID().String()),
			zap.String("user_id", registered.UserID),
		)
		return nil
	}

	name := registered.Username
	if name == "" {
		name = registered.Email
	}

	if err := h.replicas.Insert(ctx, &order.CustomerReplica{
		ID:    userID,
		Name:  name,
		Email: registered.Email,
	}); err != nil {
		return fmt.Errorf("failed to insert customer replica: %w", err)
	}

	h.logger.Debug("customer replica stored",
		zap.String("customer_id", userID.String()),
		zap.String("name", name),
	)

	return nil
}

// ProductUpsertedConsumer adapts broker messages to the product replica
// handler. The handler passed in is normally the idempotency-wrapped one.
type ProductUpsertedConsumer struct {
	handler shared.EventHandler
}

// NewProductUpsertedConsumer creates a new ProductUpsertedConsumer
func NewProductUpsertedConsumer(handler shared.EventHandler) *ProductUpsertedConsumer {
	return &ProductUpsertedConsumer{handler: handler}
}

// Handle decodes one broker message and hands it to the wrapped handler
func (c *ProductUpsertedConsumer) Handle(ctx context.Context, payload []byte) error {
	var event integration.ProductUpsertedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %v", broker.ErrMalformedEvent, err)
	}
	return c.handler.Handle(ctx, integration.DomainEventAdapter{Event: &event})
}

// UserRegisteredConsumer adapts broker messages to the customer replica
// handler. The handler passed in is normally the idempotency-wrapped one.
type UserRegisteredConsumer struct {
	handler shared.EventHandler
}

// NewUserRegisteredConsumer creates a new UserRegisteredConsumer
func NewUserRegisteredConsumer(handler shared.EventHandler) *UserRegisteredConsumer {
	return &UserRegisteredConsumer{handler: handler}
}

// Handle decodes one broker message and hands it to the wrapped handler
func (c *UserRegisteredConsumer) Handle(ctx context.Context, payload []byte) error {
	var event integration.UserRegisteredEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %v", broker.ErrMalformedEvent, err)
	}
	return c.handler.Handle(ctx, integration.DomainEventAdapter{Event: &event})
}

// Ensure the projection handlers implement shared.EventHandler
var (
	_ shared.EventHandler = (*ProductReplicaHandler)(nil)
	_ shared.EventHandler = (*CustomerReplicaHandler)(nil)
)
