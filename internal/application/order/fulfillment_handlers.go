package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/featureflag"
	"github.com/shopstream/backend/internal/domain/order"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/integration"
)

// OrderCreatedHandler bridges the in-process OrderCreated domain event to
// the broker as an integration event. The bridge is gated by the
// order_fulfillment feature flag: domain events are always dispatched,
// only the outward publish is conditional.
type OrderCreatedHandler struct {
	flags     featureflag.Flags
	publisher integration.Publisher
	logger    *zap.Logger
}

// NewOrderCreatedHandler creates a new OrderCreatedHandler
func NewOrderCreatedHandler(flags featureflag.Flags, publisher integration.Publisher, logger *zap.Logger) *OrderCreatedHandler {
	return &OrderCreatedHandler{
		flags:     flags,
		publisher: publisher,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderCreatedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderCreated}
}

// Handle re-publishes the order as an OrderCreated integration event when
// fulfillment is enabled
func (h *OrderCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*order.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderCreated, event.EventType())
	}

	if !fulfillmentEnabled(ctx, h.flags, h.logger) {
		h.logger.Debug("order fulfillment disabled, skipping integration publish",
			zap.String("order_id", createdEvent.Order.ID.String()),
		)
		return nil
	}

	o := createdEvent.Order
	outbound := &integration.OrderCreatedEvent{
		Envelope:   integration.NewEnvelope(integration.EventTypeOrderCreated),
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		OrderName:  o.Name.String(),
		Status:     o.Status.Code(),
		TotalPrice: o.TotalPrice(),
		Items:      toOrderItemPayloads(o),
	}

	if err := h.publisher.Publish(ctx, outbound); err != nil {
		return fmt.Errorf("failed to publish order created event: %w", err)
	}

	h.logger.Info("order created event bridged to broker",
		zap.String("order_id", o.ID.String()),
		zap.String("event_id", outbound.EventID().String()),
	)

	return nil
}

// OrderUpdatedHandler bridges the in-process OrderUpdated domain event to
// the broker, gated by the same fulfillment flag as OrderCreatedHandler.
type OrderUpdatedHandler struct {
	flags     featureflag.Flags
	publisher integration.Publisher
	logger    *zap.Logger
}

// NewOrderUpdatedHandler creates a new OrderUpdatedHandler
func NewOrderUpdatedHandler(flags featureflag.Flags, publisher integration.Publisher, logger *zap.Logger) *OrderUpdatedHandler {
	return &OrderUpdatedHandler{
		flags:     flags,
		publisher: publisher,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderUpdatedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderUpdated}
}

// Handle re-publishes the order as an OrderUpdated integration event when
// fulfillment is enabled
func (h *OrderUpdatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	updatedEvent, ok := event.(*order.OrderUpdatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderUpdated, event.EventType())
	}

	if !fulfillmentEnabled(ctx, h.flags, h.logger) {
		h.logger.Debug("order fulfillment disabled, skipping integration publish",
			zap.String("order_id", updatedEvent.Order.ID.String()),
		)
		return nil
	}

	o := updatedEvent.Order
	outbound := &integration.OrderUpdatedEvent{
		Envelope:   integration.NewEnvelope(integration.EventTypeOrderUpdated),
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		OrderName:  o.Name.String(),
		Status:     o.Status.Code(),
		TotalPrice: o.TotalPrice(),
		Items:      toOrderItemPayloads(o),
	}

	if err := h.publisher.Publish(ctx, outbound); err != nil {
		return fmt.Errorf("failed to publish order updated event: %w", err)
	}

	h.logger.Info("order updated event bridged to broker",
		zap.String("order_id", o.ID.String()),
		zap.String("event_id", outbound.EventID().String()),
	)

	return nil
}

// fulfillmentEnabled evaluates the fulfillment flag. Evaluation failures
// fail closed: the bridge stays quiet rather than publishing on a guess.
func fulfillmentEnabled(ctx context.Context, flags featureflag.Flags, logger *zap.Logger) bool {
	enabled, err := flags.IsEnabled(ctx, featureflag.KeyOrderFulfillment)
	if err != nil {
		logger.Warn("failed to evaluate fulfillment flag, skipping publish",
			zap.String("flag", featureflag.KeyOrderFulfillment),
			zap.Error(err),
		)
		return false
	}
	return enabled
}

func toOrderItemPayloads(o *order.Order) []integration.OrderItemPayload {
	items := make([]integration.OrderItemPayload, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, integration.OrderItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return items
}

// Ensure both handlers implement shared.EventHandler
var (
	_ shared.EventHandler = (*OrderCreatedHandler)(nil)
	_ shared.EventHandler = (*OrderUpdatedHandler)(nil)
)
