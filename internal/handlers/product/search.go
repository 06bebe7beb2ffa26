package product

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/models"
	"tienda_back_end/internal/services"
)

//
// 🔎 GET /api/products/search?q=...
//
// Busca primero en Elasticsearch; si el cluster no está o falla, cae a un
// filtrado en memoria sobre Scylla para que la búsqueda nunca devuelva 500
// por un problema del índice.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el término de búsqueda"})
		return
	}

	if h.Elastic != nil {
		hits, err := services.SearchProducts(h.Elastic, query)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"results": hits, "source": "elasticsearch"})
			return
		}
		log.Printf("⚠️ Elasticsearch falló, se busca en Scylla: %v", err)
	}

	results, err := h.searchScylla(c, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando productos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "source": "scylla"})
}

func (h *Handler) searchScylla(c *gin.Context, query string) ([]View, error) {
	ctx := c.Request.Context()
	needle := strings.ToLower(query)

	iter := h.Scylla.Query(`SELECT product_id, name, slug, description, price, compare_at_price, stock, category_id, image_urls, tags, created_at, updated_at FROM products`).
		WithContext(ctx).Iter()

	results := []View{}
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice,
		&p.Stock, &p.CategoryID, &p.ImageURLs, &p.Tags, &p.CreatedAt, &p.UpdatedAt) {
		if matches(p, needle) {
			results = append(results, h.decorate(ctx, p))
		}
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	return results, nil
}

func matches(p models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
