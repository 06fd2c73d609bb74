package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("creates address with required fields", func(t *testing.T) {
		addr, err := NewAddress("Nairobi", "Westlands", "Waiyaki Way, Sunrise Apartments")
		require.NoError(t, err)
		assert.Equal(t, "Nairobi", addr.County())
		assert.Equal(t, "Westlands", addr.Town())
		assert.Equal(t, "Kenya", addr.Country())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		addr, err := NewAddress("  Kiambu ", " Ruiru ", " Eastern Bypass ")
		require.NoError(t, err)
		assert.Equal(t, "Kiambu", addr.County())
		assert.Equal(t, "Ruiru", addr.Town())
		assert.Equal(t, "Eastern Bypass", addr.Street())
	})

	t.Run("applies options", func(t *testing.T) {
		addr, err := NewAddress("Mombasa", "Nyali", "Links Road",
			WithPostalCode("80100"), WithCountry("Kenya"))
		require.NoError(t, err)
		assert.Equal(t, "80100", addr.PostalCode())
	})

	tests := []struct {
		name   string
		county string
		town   string
		street string
	}{
		{"empty county", "", "Westlands", "Waiyaki Way"},
		{"empty town", "Nairobi", "", "Waiyaki Way"},
		{"empty street", "Nairobi", "Westlands", ""},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewAddress(tt.county, tt.town, tt.street)
			assert.Error(t, err)
		})
	}
}

func TestAddress_String(t *testing.T) {
	addr, err := NewAddress("Nairobi", "Kilimani", "Argwings Kodhek Rd", WithPostalCode("00100"))
	require.NoError(t, err)
	assert.Equal(t, "Argwings Kodhek Rd, Kilimani, Nairobi, 00100, Kenya", addr.String())
}

func TestAddress_Empty(t *testing.T) {
	assert.True(t, EmptyAddress().IsEmpty())

	addr, _ := NewAddress("Nairobi", "CBD", "Moi Avenue")
	assert.False(t, addr.IsEmpty())
}

func TestAddress_JSONRoundTrip(t *testing.T) {
	addr, err := NewAddress("Nakuru", "Milimani", "Kenyatta Avenue", WithPostalCode("20100"))
	require.NoError(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, addr.Equals(decoded))
}

func TestAddress_Scan(t *testing.T) {
	t.Run("scans JSON column", func(t *testing.T) {
		var addr Address
		require.NoError(t, addr.Scan(`{"county":"Nairobi","town":"Karen","street":"Karen Road"}`))
		assert.Equal(t, "Karen", addr.Town())
	})

	t.Run("scans nil as empty", func(t *testing.T) {
		var addr Address
		require.NoError(t, addr.Scan(nil))
		assert.True(t, addr.IsEmpty())
	})
}
