package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid fields", func(t *testing.T) {
		p, err := NewProduct("Keyboard", []string{"Peripherals"}, "Mechanical keyboard", "keyboard.png", decimal.NewFromFloat(49.99))

		require.NoError(t, err)
		assert.Equal(t, "Keyboard", p.Name)
		assert.Equal(t, []string{"Peripherals"}, p.Categories)
		assert.True(t, p.Price.Equal(decimal.NewFromFloat(49.99)))
		assert.NotEqual(t, p.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", nil, "", "", decimal.NewFromFloat(1))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Keyboard", nil, "", "", decimal.NewFromFloat(-1))
		assert.Error(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	t.Run("replaces catalog fields and bumps version", func(t *testing.T) {
		p, err := NewProduct("Keyboard", nil, "", "", decimal.NewFromFloat(49.99))
		require.NoError(t, err)

		err = p.Update("Keyboard Pro", []string{"Peripherals"}, "Updated", "pro.png", decimal.NewFromFloat(79.99))

		require.NoError(t, err)
		assert.Equal(t, "Keyboard Pro", p.Name)
		assert.Equal(t, 2, p.GetVersion())
	})

	t.Run("rejects invalid update", func(t *testing.T) {
		p, err := NewProduct("Keyboard", nil, "", "", decimal.NewFromFloat(49.99))
		require.NoError(t, err)

		err = p.Update("", nil, "", "", decimal.NewFromFloat(79.99))

		assert.Error(t, err)
		assert.Equal(t, "Keyboard", p.Name)
	})
}
