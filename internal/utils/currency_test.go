package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$ 50,00", FormatPrice(50))
	assert.Equal(t, "$ 19.999,90", FormatPrice(19999.9))
	assert.Equal(t, "$ 0,00", FormatPrice(0))
}

// FormatPrice y ParsePrice tienen que ser consistentes entre sí: el handler
// de productos formatea los precios antes de calcular el descuento.
func TestFormatPrice_RoundTripsThroughParsePrice(t *testing.T) {
	for _, amount := range []float64{50, 999.99, 19999.9, 123456.78} {
		got, err := ParsePrice(FormatPrice(amount))
		assert.NoError(t, err)
		assert.InDelta(t, amount, got, 0.005)
	}
}
