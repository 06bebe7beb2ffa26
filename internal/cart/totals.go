package cart

import (
	"os"
	"strconv"

	"tienda_back_end/internal/models"
)

// Policy define cómo se calculan impuestos y envío. Con el zero value todo
// queda en cero: sin impuestos y envío gratis, que es el default de la tienda.
type Policy struct {
	TaxRate               float64
	FlatShipping          float64
	FreeShippingThreshold float64
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// PolicyFromEnv lee TAX_RATE, FLAT_SHIPPING y FREE_SHIPPING_THRESHOLD del
// entorno. Valores ausentes o inválidos quedan en cero.
func PolicyFromEnv() Policy {
	return Policy{
		TaxRate:               envFloat("TAX_RATE"),
		FlatShipping:          envFloat("FLAT_SHIPPING"),
		FreeShippingThreshold: envFloat("FREE_SHIPPING_THRESHOLD"),
	}
}

func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

// ComputeTotals recalcula los totales a partir de las líneas. Es puro y
// determinista: los totales nunca se persisten, se derivan en cada lectura.
func ComputeTotals(items []models.CartItem, policy Policy) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += it.Price * float64(it.Quantity)
	}
	t.Tax = t.Subtotal * policy.TaxRate

	t.Shipping = policy.FlatShipping
	if policy.FreeShippingThreshold > 0 && t.Subtotal >= policy.FreeShippingThreshold {
		t.Shipping = 0
	}
	if len(items) == 0 {
		t.Shipping = 0
	}

	t.Total = t.Subtotal + t.Tax + t.Shipping
	return t
}
