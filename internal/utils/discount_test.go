package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		original string
		current  string
		want     int
	}{
		{"$100", "$80", 20},
		{"$50", "$50", 0},
		{"$ 1.000,00", "$ 750,00", 25},
		{"$1,299.99", "$999.99", 23},
		{"300", "100", 67},
	}

	for _, tt := range tests {
		got, err := DiscountPercent(tt.original, tt.current)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.original, tt.current)
	}
}

func TestDiscountPercent_ZeroOriginal(t *testing.T) {
	_, err := DiscountPercent("$0", "$10")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestDiscountPercent_Unparseable(t *testing.T) {
	_, err := DiscountPercent("gratis", "$10")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$100", 100},
		{"$ 1.234,50", 1234.50},
		{"$1,299.99", 1299.99},
		{"19.999,90", 19999.90},
		{"42", 42},
		{"99,9", 99.9},
	}

	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		assert.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 0.0001, tt.in)
	}
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, "out_of_stock", StockStatus(0).Status)
	assert.Equal(t, "low_stock", StockStatus(3).Status)
	assert.Equal(t, "low_stock", StockStatus(4).Status)
	assert.Equal(t, "in_stock", StockStatus(5).Status)
	assert.Equal(t, "in_stock", StockStatus(10).Status)
	assert.Equal(t, "out_of_stock", StockStatus(-1).Status)
}
