// Package basket contains the basket service's application layer: cart
// storage with discount application and checkout publication.
package basket

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/basket"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/domain/shared/valueobject"
	"github.com/shopstream/backend/internal/infrastructure/telemetry"
	"github.com/shopstream/backend/internal/integration"
)

// BasketService handles cart storage and checkout.
// Carts are full documents keyed by username; a checkout publishes the
// stored cart to the broker and removes it.
type BasketService struct {
	store     basket.CartStore
	discounts basket.DiscountLookup
	publisher integration.Publisher
	logger    *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(store basket.CartStore, discounts basket.DiscountLookup, publisher integration.Publisher, logger *zap.Logger) *BasketService {
	return &BasketService{
		store:     store,
		discounts: discounts,
		publisher: publisher,
		logger:    logger,
	}
}

// Get returns the user's cart. A user without a stored cart gets a fresh
// empty one; the empty cart is not persisted until it is stored.
func (s *BasketService) Get(ctx context.Context, username string) (*CartResponse, error) {
	cart, err := s.store.Get(ctx, username)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cart, err = basket.NewShoppingCart(username)
		if err != nil {
			return nil, err
		}
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// Store replaces the user's cart with the submitted document.
// Each line's price is reduced by the discount service's coupon for that
// product before the cart is persisted. Lines run sequentially and a
// lookup failure aborts the whole store.
func (s *BasketService) Store(ctx context.Context, req StoreCartRequest) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "basket", "store",
		telemetry.WithAttribute(telemetry.SpanAttrUsername, req.Username),
	)
	defer span.End()

	cart, err := basket.NewShoppingCart(req.Username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	items := make([]basket.CartItem, 0, len(req.Items))
	for _, line := range req.Items {
		price := line.Price
		coupon, err := s.discounts.GetDiscount(ctx, line.ProductName)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to look up discount for %q: %w", line.ProductName, err)
		}
		if coupon != nil && coupon.Amount.IsPositive() {
			price = price.Sub(coupon.Amount)
			s.logger.Debug("discount applied",
				zap.String("product_name", line.ProductName),
				zap.String("amount", coupon.Amount.String()),
			)
		}

		items = append(items, basket.CartItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Price:       price,
			Quantity:    line.Quantity,
		})
	}

	if err := cart.SetItems(items); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	stored, err := s.store.Store(ctx, cart)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("cart stored",
		zap.String("username", stored.Username),
		zap.Int("items_count", len(stored.Items)),
	)

	resp := ToCartResponse(stored)
	return &resp, nil
}

// Delete removes the user's cart
func (s *BasketService) Delete(ctx context.Context, username string) error {
	return s.store.Delete(ctx, username)
}

// Checkout publishes the stored cart to the broker and removes it.
// A missing cart is not an error: the result reports failure and nothing
// is published. A publish failure propagates and leaves the cart intact,
// so the user can retry.
func (s *BasketService) Checkout(ctx context.Context, req CheckoutRequest) (*basket.CheckoutResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "basket", "checkout",
		telemetry.WithAttribute(telemetry.SpanAttrUsername, req.Username),
	)
	defer span.End()

	cart, err := s.store.Get(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("checkout for a missing cart rejected",
				zap.String("username", req.Username),
			)
			return &basket.CheckoutResult{IsSuccess: false}, nil
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if _, err := valueobject.NewAddress(
		req.FirstName, req.LastName, req.EmailAddress,
		req.AddressLine, req.Country, req.State, req.ZipCode,
	); err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	if _, err := valueobject.NewPayment(
		req.CardName, req.CardNumber, req.Expiration, req.CVV, req.PaymentMethod,
	); err != nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", err.Error())
	}

	event := toCheckoutEvent(req, cart)
	if err := s.publisher.Publish(ctx, event); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to publish basket checkout event: %w", err)
	}

	if err := s.store.Delete(ctx, req.Username); err != nil {
		// the checkout is already on its way; a stale cart is recoverable
		s.logger.Error("failed to delete cart after checkout",
			zap.String("username", req.Username),
			zap.Error(err),
		)
	}

	s.logger.Info("basket checkout published",
		zap.String("username", req.Username),
		zap.String("event_id", event.EventID().String()),
		zap.String("total_price", event.TotalPrice.String()),
	)

	return &basket.CheckoutResult{IsSuccess: true}, nil
}

// toCheckoutEvent snapshots the stored cart and the submitted checkout
// details into a BasketCheckoutEvent
func toCheckoutEvent(req CheckoutRequest, cart *basket.ShoppingCart) *integration.BasketCheckoutEvent {
	items := make([]integration.BasketCheckoutItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, integration.BasketCheckoutItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	return &integration.BasketCheckoutEvent{
		Envelope:      integration.NewEnvelope(integration.EventTypeBasketCheckout),
		Username:      req.Username,
		CustomerID:    req.CustomerID,
		TotalPrice:    cart.TotalPrice(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		EmailAddress:  req.EmailAddress,
		AddressLine:   req.AddressLine,
		Country:       req.Country,
		State:         req.State,
		ZipCode:       req.ZipCode,
		CardName:      req.CardName,
		CardNumber:    req.CardNumber,
		Expiration:    req.Expiration,
		CVV:           req.CVV,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	}
}
