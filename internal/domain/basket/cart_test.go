package basket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoppingCart(t *testing.T) {
	t.Run("creates empty cart for username", func(t *testing.T) {
		cart, err := NewShoppingCart("alice")

		require.NoError(t, err)
		assert.Equal(t, "alice", cart.Username)
		assert.True(t, cart.IsEmpty())
		assert.True(t, cart.TotalPrice().IsZero())
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewShoppingCart("")
		assert.Error(t, err)
	})
}

func TestShoppingCart_SetItems(t *testing.T) {
	t.Run("replaces items wholesale", func(t *testing.T) {
		cart, err := NewShoppingCart("alice")
		require.NoError(t, err)

		first := []CartItem{{ProductID: uuid.New(), ProductName: "Keyboard", Price: decimal.NewFromFloat(49.99), Quantity: 1}}
		require.NoError(t, cart.SetItems(first))

		second := []CartItem{
			{ProductID: uuid.New(), ProductName: "Mouse", Price: decimal.NewFromFloat(19.99), Quantity: 2},
		}
		require.NoError(t, cart.SetItems(second))

		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Mouse", cart.Items[0].ProductName)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart, err := NewShoppingCart("alice")
		require.NoError(t, err)

		err = cart.SetItems([]CartItem{{ProductID: uuid.New(), ProductName: "Mouse", Price: decimal.NewFromFloat(19.99), Quantity: 0}})
		assert.Error(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("keeps a negative discounted price", func(t *testing.T) {
		cart, err := NewShoppingCart("alice")
		require.NoError(t, err)

		err = cart.SetItems([]CartItem{{ProductID: uuid.New(), ProductName: "Mouse", Price: decimal.NewFromFloat(-1), Quantity: 2}})
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.True(t, cart.Items[0].Price.Equal(decimal.NewFromInt(-1)))
		assert.True(t, cart.TotalPrice().Equal(decimal.NewFromInt(-2)))
	})
}

func TestShoppingCart_TotalPrice(t *testing.T) {
	cart, err := NewShoppingCart("alice")
	require.NoError(t, err)

	require.NoError(t, cart.SetItems([]CartItem{
		{ProductID: uuid.New(), ProductName: "Keyboard", Price: decimal.NewFromFloat(49.99), Quantity: 2},
		{ProductID: uuid.New(), ProductName: "Mouse", Price: decimal.NewFromFloat(19.99), Quantity: 1},
	}))

	assert.True(t, cart.TotalPrice().Equal(decimal.NewFromFloat(119.97)))
}
