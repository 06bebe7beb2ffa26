package services

import (
	"context"

	"github.com/gocql/gocql"

	"tienda_back_end/internal/models"
)

// CatalogFinder resuelve nombre, precio e imagen de un producto para
// enriquecer las líneas del carrito. Un productId que no es UUID o que no
// está en el catálogo simplemente no se enriquece.
type CatalogFinder struct {
	Session *gocql.Session
}

func NewCatalogFinder(session *gocql.Session) *CatalogFinder {
	return &CatalogFinder{Session: session}
}

func (f *CatalogFinder) Find(ctx context.Context, productID string) (*models.CartItem, bool) {
	id, err := gocql.ParseUUID(productID)
	if err != nil {
		return nil, false
	}

	var name string
	var price float64
	var imageURLs []string
	err = f.Session.Query(`SELECT name, price, image_urls FROM products WHERE product_id = ?`, id).
		WithContext(ctx).Scan(&name, &price, &imageURLs)
	if err != nil {
		return nil, false
	}

	item := models.CartItem{ProductID: productID, Name: name, Price: price}
	if len(imageURLs) > 0 {
		item.ImageURL = imageURLs[0]
	}
	return &item, true
}
