package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	basketapp "github.com/shopstream/backend/internal/application/basket"
	"github.com/shopstream/backend/internal/domain/basket"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/integration"
	"github.com/shopstream/backend/internal/interfaces/http/dto"
)

// memCartStore is a minimal in-memory basket.CartStore for handler tests
type memCartStore struct {
	carts map[string]*basket.ShoppingCart
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string]*basket.ShoppingCart)}
}

func (s *memCartStore) Get(_ context.Context, username string) (*basket.ShoppingCart, error) {
	cart, ok := s.carts[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cart, nil
}

func (s *memCartStore) Store(_ context.Context, cart *basket.ShoppingCart) (*basket.ShoppingCart, error) {
	s.carts[cart.Username] = cart
	return cart, nil
}

func (s *memCartStore) Delete(_ context.Context, username string) error {
	delete(s.carts, username)
	return nil
}

// zeroDiscounts returns a zero coupon for every product
type zeroDiscounts struct{}

func (zeroDiscounts) GetDiscount(_ context.Context, productName string) (*basket.Coupon, error) {
	return &basket.Coupon{ProductName: productName, Amount: decimal.Zero}, nil
}

// memPublisher records published integration events
type memPublisher struct {
	published []integration.Event
}

func (p *memPublisher) Publish(_ context.Context, event integration.Event) error {
	p.published = append(p.published, event)
	return nil
}

func newBasketRouter() (*gin.Engine, *memCartStore, *memPublisher) {
	gin.SetMode(gin.TestMode)
	store := newMemCartStore()
	publisher := &memPublisher{}
	svc := basketapp.NewBasketService(store, zeroDiscounts{}, publisher, zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewBasketHandler(svc).Register(api)
	return engine, store, publisher
}

func cartPayload(username string) map[string]any {
	return map[string]any{
		"userName": username,
		"items": []map[string]any{
			{"productId": uuid.NewString(), "productName": "Widget", "price": "20", "quantity": 2},
		},
	}
}

func checkoutPayload(username string) map[string]any {
	return map[string]any{
		"userName":     username,
		"customerId":   uuid.NewString(),
		"firstName":    "Jane",
		"lastName":     "Doe",
		"emailAddress": "jane@example.com",
		"addressLine":  "456 Oak Ave",
		"country":      "US",
		"state":        "CA",
		"zipCode":      "94105",
		"cardName":     "Jane Doe",
		"cardNumber":   "4111111111111111",
		"expiration":   "11/29",
		"cvv":          "321",
	}
}

func TestBasketHandler_StoreAndGet(t *testing.T) {
	engine, store, _ := newBasketRouter()

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/basket", cartPayload("jdoe"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, store.carts, "jdoe")

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/basket/jdoe", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestBasketHandler_GetUnknownUserIsEmptyCart(t *testing.T) {
	engine, _, _ := newBasketRouter()

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/basket/nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                    `json:"success"`
		Data    basketapp.CartResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "nobody", resp.Data.Username)
	assert.Empty(t, resp.Data.Items)
}

func TestBasketHandler_Checkout(t *testing.T) {
	t.Run("stored cart checks out with 200 and isSuccess true", func(t *testing.T) {
		engine, store, publisher := newBasketRouter()

		rec := doJSON(t, engine, http.MethodPost, "/api/v1/basket", cartPayload("jdoe"))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, engine, http.MethodPost, "/api/v1/basket/checkout", checkoutPayload("jdoe"))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool                  `json:"success"`
			Data    basket.CheckoutResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Data.IsSuccess)
		assert.Len(t, publisher.published, 1)
		assert.Empty(t, store.carts)
	})

	t.Run("missing cart checks out with 200 and isSuccess false", func(t *testing.T) {
		engine, _, publisher := newBasketRouter()

		rec := doJSON(t, engine, http.MethodPost, "/api/v1/basket/checkout", checkoutPayload("nobody"))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool                  `json:"success"`
			Data    basket.CheckoutResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Data.IsSuccess)
		assert.Empty(t, publisher.published)
	})

	t.Run("missing required fields return 400", func(t *testing.T) {
		engine, _, _ := newBasketRouter()

		payload := checkoutPayload("jdoe")
		delete(payload, "cardNumber")

		rec := doJSON(t, engine, http.MethodPost, "/api/v1/basket/checkout", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
