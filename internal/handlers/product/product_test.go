package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tienda_back_end/internal/models"
)

func TestDecorate_StockAndDiscount(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)

	p := models.Product{
		Name:           "Remera",
		Price:          80,
		CompareAtPrice: 100,
		Stock:          3,
		ImageURLs:      []string{"products/remera.jpg"},
	}

	view := h.decorate(context.Background(), p)

	assert.Equal(t, "low_stock", view.StockStatus)
	assert.Equal(t, "¡Últimas unidades!", view.StockLabel)
	assert.Equal(t, 20, view.DiscountPercent)
	// Sin MinIO configurado la URL se devuelve tal cual.
	assert.Equal(t, []string{"products/remera.jpg"}, view.Images)
}

func TestDecorate_NoCompareAtPriceMeansNoDiscount(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)

	view := h.decorate(context.Background(), models.Product{Name: "Gorra", Price: 50, Stock: 10})

	assert.Equal(t, "in_stock", view.StockStatus)
	assert.Zero(t, view.DiscountPercent)
	assert.Empty(t, view.Images)
}

func TestDecorate_OutOfStock(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)

	view := h.decorate(context.Background(), models.Product{Name: "Buzo", Price: 200})

	assert.Equal(t, "out_of_stock", view.StockStatus)
	assert.Equal(t, "Sin stock", view.StockLabel)
}

func TestMatches_NameDescriptionAndTags(t *testing.T) {
	p := models.Product{
		Name:        "Remera Negra",
		Description: "Algodón peinado",
		Tags:        []string{"verano", "basics"},
	}

	assert.True(t, matches(p, "remera"))
	assert.True(t, matches(p, "algodón"))
	assert.True(t, matches(p, "verano"))
	assert.False(t, matches(p, "pantalón"))
}
