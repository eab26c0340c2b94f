// Package order contains the order service's application layer: the
// command/query service, the fulfillment bridge handlers and the
// integration event consumers that maintain the local read replicas.
package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/order"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/infrastructure/telemetry"
)

// EventDispatcher drains buffered domain events from persisted aggregates
type EventDispatcher interface {
	Dispatch(ctx context.Context, aggregates ...shared.AggregateRoot) error
}

// OrderService handles order commands and queries.
// Both the HTTP API and the checkout consumer create orders through this
// service, so invariant enforcement is identical for every entry point.
type OrderService struct {
	repo       order.Repository
	dispatcher EventDispatcher
	logger     *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(repo order.Repository, dispatcher EventDispatcher, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create creates a new pending order
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, req.CustomerID.String()),
	)
	defer span.End()

	name, err := order.NewOrderName(req.Name)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	shipping, err := toAddress(req.ShippingAddress)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	billing, err := toAddress(req.BillingAddress)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	payment, err := toPayment(req.Payment)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", err.Error())
	}

	o := order.NewOrder(uuid.New(), req.CustomerID, name, shipping, billing, payment)
	for _, item := range req.Items {
		if err := o.AddItem(item.ProductID, item.Quantity, item.Price); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.dispatch(ctx, o)

	s.logger.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("order_name", o.Name.String()),
		zap.String("customer_id", o.CustomerID.String()),
		zap.Int("items_count", len(o.Items)),
	)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Update replaces the order's name, addresses, payment and status
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID.String()),
	)
	defer span.End()

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	name, err := order.NewOrderName(req.Name)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	shipping, err := toAddress(req.ShippingAddress)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	billing, err := toAddress(req.BillingAddress)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	payment, err := toPayment(req.Payment)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", err.Error())
	}

	o.Update(name, shipping, billing, payment, status)

	if err := s.repo.Update(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.dispatch(ctx, o)

	s.logger.Info("order updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)),
	)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Delete removes an order
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID.String()),
	)
	defer span.End()

	if err := s.repo.Delete(ctx, orderID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("order deleted", zap.String("order_id", orderID.String()))
	return nil
}

// GetByID returns a single order
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns a page of orders
func (s *OrderService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[OrderResponse], error) {
	page, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	return shared.Paginated[OrderResponse]{
		Items:      toOrderResponses(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetByName returns the orders carrying the given display code
func (s *OrderService) GetByName(ctx context.Context, name string) ([]OrderResponse, error) {
	orderName, err := order.NewOrderName(name)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.FindByName(ctx, orderName)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// GetByCustomer returns all orders placed by a customer
func (s *OrderService) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// dispatch drains the aggregate's buffered events after a committed write.
// A dispatch failure is logged, not surfaced: the write already happened.
func (s *OrderService) dispatch(ctx context.Context, o *order.Order) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, o); err != nil {
		s.logger.Error("failed to dispatch domain events",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
}
