package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("creates address with all fields", func(t *testing.T) {
		addr, err := NewAddress("John", "Doe", "john@example.com", "123 Main St", "US", "WA", "98052")

		require.NoError(t, err)
		assert.Equal(t, "John", addr.FirstName())
		assert.Equal(t, "Doe", addr.LastName())
		assert.Equal(t, "john@example.com", addr.EmailAddress())
		assert.Equal(t, "123 Main St", addr.AddressLine())
		assert.Equal(t, "US", addr.Country())
		assert.Equal(t, "WA", addr.State())
		assert.Equal(t, "98052", addr.ZipCode())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		addr, err := NewAddress("  John ", " Doe ", "", " 123 Main St ", "", "", "")

		require.NoError(t, err)
		assert.Equal(t, "John", addr.FirstName())
		assert.Equal(t, "123 Main St", addr.AddressLine())
	})

	t.Run("rejects empty first name", func(t *testing.T) {
		_, err := NewAddress("", "Doe", "", "123 Main St", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty last name", func(t *testing.T) {
		_, err := NewAddress("John", "", "", "123 Main St", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty address line", func(t *testing.T) {
		_, err := NewAddress("John", "Doe", "", "", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewAddress("John", "Doe", "not-an-email", "123 Main St", "", "", "")
		assert.Error(t, err)
	})

	t.Run("allows empty email", func(t *testing.T) {
		addr, err := NewAddress("John", "Doe", "", "123 Main St", "", "", "")
		require.NoError(t, err)
		assert.Empty(t, addr.EmailAddress())
	})
}

func TestAddress_FullName(t *testing.T) {
	addr := MustNewAddress("John", "Doe", "", "123 Main St", "", "", "")
	assert.Equal(t, "John Doe", addr.FullName())
}

func TestAddress_Equals(t *testing.T) {
	a := MustNewAddress("John", "Doe", "", "123 Main St", "US", "WA", "98052")
	b := MustNewAddress("John", "Doe", "", "123 Main St", "US", "WA", "98052")
	c := MustNewAddress("Jane", "Doe", "", "123 Main St", "US", "WA", "98052")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestAddress_JSONRoundTrip(t *testing.T) {
	t.Run("round trips a full address", func(t *testing.T) {
		addr := MustNewAddress("John", "Doe", "john@example.com", "123 Main St", "US", "WA", "98052")

		data, err := json.Marshal(addr)
		require.NoError(t, err)

		var decoded Address
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, addr.Equals(decoded))
	})

	t.Run("decodes empty object to empty address", func(t *testing.T) {
		var decoded Address
		require.NoError(t, json.Unmarshal([]byte(`{}`), &decoded))
		assert.True(t, decoded.IsEmpty())
	})

	t.Run("rejects invalid address from JSON", func(t *testing.T) {
		var decoded Address
		err := json.Unmarshal([]byte(`{"firstName":"John","addressLine":"123 Main St"}`), &decoded)
		assert.Error(t, err)
	})
}

func TestAddress_Scan(t *testing.T) {
	t.Run("scans nil to empty address", func(t *testing.T) {
		var addr Address
		require.NoError(t, addr.Scan(nil))
		assert.True(t, addr.IsEmpty())
	})

	t.Run("scans JSON bytes", func(t *testing.T) {
		source := MustNewAddress("John", "Doe", "", "123 Main St", "US", "WA", "98052")
		data, err := source.Value()
		require.NoError(t, err)

		var addr Address
		require.NoError(t, addr.Scan(data))
		assert.True(t, source.Equals(addr))
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var addr Address
		assert.Error(t, addr.Scan(42))
	})
}
