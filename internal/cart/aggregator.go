package cart

import "tienda_back_end/internal/models"

// AddItem fusiona (productID, qty) dentro del carrito: si el producto ya
// existe se acumula la cantidad, si no se agrega al final. El orden de las
// líneas refleja el primer agregado de cada producto.
func AddItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			if item.Name != "" {
				items[i].Name = item.Name
			}
			if item.Price != 0 {
				items[i].Price = item.Price
			}
			return items
		}
	}
	return append(items, item)
}

// RemoveItem filtra la línea del producto. Si no está, no pasa nada.
func RemoveItem(items []models.CartItem, productID string) []models.CartItem {
	out := []models.CartItem{}
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// Clear vacía el carrito sin condiciones.
func Clear(items []models.CartItem) []models.CartItem {
	return []models.CartItem{}
}
