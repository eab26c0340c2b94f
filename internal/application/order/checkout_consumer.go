package order

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/infrastructure/broker"
	"github.com/shopstream/backend/internal/integration"
)

// BasketCheckoutConsumer turns BasketCheckout integration events into
// create-order commands. The command runs through the same OrderService
// path as the HTTP API, so invariant enforcement is identical for both
// entry points. There is no idempotency wrapper here: a redelivered
// checkout creates a second order with a fresh id.
type BasketCheckoutConsumer struct {
	orders *OrderService
	logger *zap.Logger
}

// NewBasketCheckoutConsumer creates a new BasketCheckoutConsumer
func NewBasketCheckoutConsumer(orders *OrderService, logger *zap.Logger) *BasketCheckoutConsumer {
	return &BasketCheckoutConsumer{
		orders: orders,
		logger: logger,
	}
}

// Handle processes one broker message carrying a BasketCheckoutEvent
func (c *BasketCheckoutConsumer) Handle(ctx context.Context, payload []byte) error {
	var event integration.BasketCheckoutEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %v", broker.ErrMalformedEvent, err)
	}

	c.logger.Info("processing basket checkout event",
		zap.String("event_id", event.EventID().String()),
		zap.String("username", event.Username),
		zap.Int("items_count", len(event.Items)),
	)

	resp, err := c.orders.Create(ctx, mapToCreateOrderRequest(&event))
	if err != nil {
		return fmt.Errorf("failed to create order from checkout: %w", err)
	}

	c.logger.Info("order created from basket checkout",
		zap.String("order_id", resp.ID.String()),
		zap.String("username", event.Username),
	)

	return nil
}

// mapToCreateOrderRequest maps a checkout event to the create command.
// The single address on the event becomes both shipping and billing, the
// order takes the username as its display name, and items map one to one.
func mapToCreateOrderRequest(event *integration.BasketCheckoutEvent) CreateOrderRequest {
	address := AddressRequest{
		FirstName:    event.FirstName,
		LastName:     event.LastName,
		EmailAddress: event.EmailAddress,
		AddressLine:  event.AddressLine,
		Country:      event.Country,
		State:        event.State,
		ZipCode:      event.ZipCode,
	}

	items := make([]OrderItemRequest, 0, len(event.Items))
	for _, item := range event.Items {
		items = append(items, OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return CreateOrderRequest{
		CustomerID:      event.CustomerID,
		Name:            event.Username,
		ShippingAddress: address,
		BillingAddress:  address,
		Payment: PaymentRequest{
			CardName:      event.CardName,
			CardNumber:    event.CardNumber,
			Expiration:    event.Expiration,
			CVV:           event.CVV,
			PaymentMethod: event.PaymentMethod,
		},
		Items: items,
	}
}
