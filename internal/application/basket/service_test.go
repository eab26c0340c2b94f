package basket

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/basket"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/integration"
)

// fakeCartStore is an in-memory basket.CartStore
type fakeCartStore struct {
	carts     map[string]*basket.ShoppingCart
	getErr    error
	storeErr  error
	deleteErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*basket.ShoppingCart)}
}

func (s *fakeCartStore) Get(_ context.Context, username string) (*basket.ShoppingCart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	cart, ok := s.carts[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cart, nil
}

func (s *fakeCartStore) Store(_ context.Context, cart *basket.ShoppingCart) (*basket.ShoppingCart, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	s.carts[cart.Username] = cart
	return cart, nil
}

func (s *fakeCartStore) Delete(_ context.Context, username string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.carts[username]; !ok {
		return shared.ErrNotFound
	}
	delete(s.carts, username)
	return nil
}

// fakeDiscounts maps product names to coupon amounts
type fakeDiscounts struct {
	coupons map[string]decimal.Decimal
	err     error
	lookups []string
}

func (d *fakeDiscounts) GetDiscount(_ context.Context, productName string) (*basket.Coupon, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.lookups = append(d.lookups, productName)
	amount, ok := d.coupons[productName]
	if !ok {
		amount = decimal.Zero
	}
	return &basket.Coupon{ProductName: productName, Amount: amount}, nil
}

// fakePublisher records published integration events
type fakePublisher struct {
	published []integration.Event
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, event integration.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func newTestService(store *fakeCartStore, discounts *fakeDiscounts, publisher *fakePublisher) *BasketService {
	if store == nil {
		store = newFakeCartStore()
	}
	if discounts == nil {
		discounts = &fakeDiscounts{}
	}
	if publisher == nil {
		publisher = &fakePublisher{}
	}
	return NewBasketService(store, discounts, publisher, zap.NewNop())
}

func storeCartRequest(username string) StoreCartRequest {
	return StoreCartRequest{
		Username: username,
		Items: []CartItemRequest{
			{ProductID: uuid.New(), ProductName: "Widget", Price: decimal.NewFromInt(20), Quantity: 2},
			{ProductID: uuid.New(), ProductName: "Gadget", Price: decimal.NewFromInt(10), Quantity: 1},
		},
	}
}

func checkoutRequest(username string) CheckoutRequest {
	return CheckoutRequest{
		Username:     username,
		CustomerID:   uuid.New(),
		FirstName:    "Jane",
		LastName:     "Doe",
		EmailAddress: "jane@example.com",
		AddressLine:  "456 Oak Ave",
		Country:      "US",
		State:        "CA",
		ZipCode:      "94105",
		CardName:     "Jane Doe",
		CardNumber:   "4111111111111111",
		Expiration:   "11/29",
		CVV:          "321",
	}
}

func TestBasketService_Get(t *testing.T) {
	t.Run("returns the stored cart", func(t *testing.T) {
		store := newFakeCartStore()
		svc := newTestService(store, nil, nil)

		_, err := svc.Store(context.Background(), storeCartRequest("jdoe"))
		require.NoError(t, err)

		resp, err := svc.Get(context.Background(), "jdoe")
		require.NoError(t, err)
		assert.Equal(t, "jdoe", resp.Username)
		assert.Len(t, resp.Items, 2)
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(50)))
	})

	t.Run("a user without a cart gets a fresh empty one", func(t *testing.T) {
		store := newFakeCartStore()
		svc := newTestService(store, nil, nil)

		resp, err := svc.Get(context.Background(), "new-user")
		require.NoError(t, err)
		assert.Equal(t, "new-user", resp.Username)
		assert.Empty(t, resp.Items)
		assert.True(t, resp.TotalPrice.IsZero())
		assert.Empty(t, store.carts)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		store := newFakeCartStore()
		store.getErr = assert.AnError
		svc := newTestService(store, nil, nil)

		_, err := svc.Get(context.Background(), "jdoe")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestBasketService_Store(t *testing.T) {
	t.Run("applies the discount to each line before storing", func(t *testing.T) {
		store := newFakeCartStore()
		discounts := &fakeDiscounts{coupons: map[string]decimal.Decimal{
			"Widget": decimal.NewFromInt(5),
		}}
		svc := newTestService(store, discounts, nil)

		resp, err := svc.Store(context.Background(), storeCartRequest("jdoe"))

		require.NoError(t, err)
		assert.Equal(t, []string{"Widget", "Gadget"}, discounts.lookups)
		assert.True(t, resp.Items[0].Price.Equal(decimal.NewFromInt(15)))
		assert.True(t, resp.Items[1].Price.Equal(decimal.NewFromInt(10)))
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(40)))
	})

	t.Run("a discount larger than the price goes negative", func(t *testing.T) {
		discounts := &fakeDiscounts{coupons: map[string]decimal.Decimal{
			"Gadget": decimal.NewFromInt(12),
		}}
		svc := newTestService(nil, discounts, nil)

		resp, err := svc.Store(context.Background(), storeCartRequest("jdoe"))

		require.NoError(t, err)
		assert.True(t, resp.Items[1].Price.Equal(decimal.NewFromInt(-2)))
	})

	t.Run("a lookup failure aborts the store", func(t *testing.T) {
		store := newFakeCartStore()
		svc := newTestService(store, &fakeDiscounts{err: assert.AnError}, nil)

		_, err := svc.Store(context.Background(), storeCartRequest("jdoe"))

		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, store.carts)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		svc := newTestService(nil, nil, nil)

		req := storeCartRequest("jdoe")
		req.Items[0].Quantity = 0

		_, err := svc.Store(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CART_ITEM", domainErr.Code)
	})

	t.Run("rejects an empty username", func(t *testing.T) {
		svc := newTestService(nil, nil, nil)

		_, err := svc.Store(context.Background(), StoreCartRequest{Username: ""})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_USERNAME", domainErr.Code)
	})
}

func TestBasketService_Checkout(t *testing.T) {
	seedCart := func(t *testing.T, svc *BasketService, username string) {
		t.Helper()
		_, err := svc.Store(context.Background(), storeCartRequest(username))
		require.NoError(t, err)
	}

	t.Run("publishes the cart snapshot and deletes the cart", func(t *testing.T) {
		store := newFakeCartStore()
		publisher := &fakePublisher{}
		svc := newTestService(store, nil, publisher)
		seedCart(t, svc, "jdoe")

		req := checkoutRequest("jdoe")
		result, err := svc.Checkout(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, result.IsSuccess)
		assert.Empty(t, store.carts)

		require.Len(t, publisher.published, 1)
		event, ok := publisher.published[0].(*integration.BasketCheckoutEvent)
		require.True(t, ok)
		assert.Equal(t, integration.EventTypeBasketCheckout, event.EventType())
		assert.Equal(t, "jdoe", event.Username)
		assert.Equal(t, "jdoe", event.Key())
		assert.Equal(t, req.CustomerID, event.CustomerID)
		assert.Equal(t, "Jane", event.FirstName)
		assert.Equal(t, "456 Oak Ave", event.AddressLine)
		assert.True(t, event.TotalPrice.Equal(decimal.NewFromInt(50)))
		assert.Len(t, event.Items, 2)
	})

	t.Run("a missing cart reports failure without publishing", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := newTestService(nil, nil, publisher)

		result, err := svc.Checkout(context.Background(), checkoutRequest("nobody"))

		require.NoError(t, err)
		assert.False(t, result.IsSuccess)
		assert.Empty(t, publisher.published)
	})

	t.Run("a publish failure leaves the cart intact", func(t *testing.T) {
		store := newFakeCartStore()
		publisher := &fakePublisher{err: assert.AnError}
		svc := newTestService(store, nil, publisher)
		seedCart(t, svc, "jdoe")

		_, err := svc.Checkout(context.Background(), checkoutRequest("jdoe"))

		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, store.carts, "jdoe")
	})

	t.Run("an invalid address is rejected before publishing", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := newTestService(nil, nil, publisher)
		seedCart(t, svc, "jdoe")

		req := checkoutRequest("jdoe")
		req.FirstName = ""

		_, err := svc.Checkout(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
		assert.Empty(t, publisher.published)
	})

	t.Run("an invalid payment is rejected before publishing", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := newTestService(nil, nil, publisher)
		seedCart(t, svc, "jdoe")

		req := checkoutRequest("jdoe")
		req.CVV = ""

		_, err := svc.Checkout(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYMENT", domainErr.Code)
		assert.Empty(t, publisher.published)
	})

	t.Run("a delete failure after publish still reports success", func(t *testing.T) {
		store := newFakeCartStore()
		publisher := &fakePublisher{}
		svc := newTestService(store, nil, publisher)
		seedCart(t, svc, "jdoe")
		store.deleteErr = assert.AnError

		result, err := svc.Checkout(context.Background(), checkoutRequest("jdoe"))

		require.NoError(t, err)
		assert.True(t, result.IsSuccess)
		assert.Len(t, publisher.published, 1)
	})
}
