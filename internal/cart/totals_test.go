package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tienda_back_end/internal/models"
)

func TestComputeTotals_EmptyCartIsAllZero(t *testing.T) {
	totals := ComputeTotals(nil, Policy{TaxRate: 0.21, FlatShipping: 500})
	assert.Equal(t, Totals{}, totals)
}

func TestComputeTotals_SubtotalSumsLines(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Quantity: 2, Price: 1000},
		{ProductID: "p2", Quantity: 3, Price: 500},
	}
	totals := ComputeTotals(items, Policy{})

	assert.Equal(t, 3500.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Tax)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 3500.0, totals.Total)
}

func TestComputeTotals_AppliesTaxRate(t *testing.T) {
	items := []models.CartItem{{ProductID: "p1", Quantity: 1, Price: 1000}}
	totals := ComputeTotals(items, Policy{TaxRate: 0.21})

	assert.InDelta(t, 210.0, totals.Tax, 0.001)
	assert.InDelta(t, 1210.0, totals.Total, 0.001)
}

func TestComputeTotals_FlatShipping(t *testing.T) {
	items := []models.CartItem{{ProductID: "p1", Quantity: 1, Price: 1000}}
	totals := ComputeTotals(items, Policy{FlatShipping: 800})

	assert.Equal(t, 800.0, totals.Shipping)
	assert.Equal(t, 1800.0, totals.Total)
}

func TestComputeTotals_FreeShippingAtThreshold(t *testing.T) {
	policy := Policy{FlatShipping: 800, FreeShippingThreshold: 5000}

	below := ComputeTotals([]models.CartItem{{ProductID: "p1", Quantity: 1, Price: 4999}}, policy)
	assert.Equal(t, 800.0, below.Shipping)

	exact := ComputeTotals([]models.CartItem{{ProductID: "p1", Quantity: 1, Price: 5000}}, policy)
	assert.Equal(t, 0.0, exact.Shipping)

	above := ComputeTotals([]models.CartItem{{ProductID: "p1", Quantity: 2, Price: 5000}}, policy)
	assert.Equal(t, 0.0, above.Shipping)
}

func TestComputeTotals_Deterministic(t *testing.T) {
	items := []models.CartItem{{ProductID: "p1", Quantity: 2, Price: 123.45}}
	policy := Policy{TaxRate: 0.105, FlatShipping: 350, FreeShippingThreshold: 10000}

	assert.Equal(t, ComputeTotals(items, policy), ComputeTotals(items, policy))
}
