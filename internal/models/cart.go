package models

// CartItem es la línea persistida en Redis: un producto por línea,
// la cantidad siempre acumulada (nunca hay dos líneas del mismo producto).
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}
