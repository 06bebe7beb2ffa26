package user

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/models"
)

// ProductFinder enriquece una línea del carrito con nombre, precio e imagen
// del catálogo. Es best-effort: un producto desconocido se guarda igual,
// el carrito no valida contra el catálogo.
type ProductFinder interface {
	Find(ctx context.Context, productID string) (*models.CartItem, bool)
}

type CartHandler struct {
	Store   cart.Store
	Policy  cart.Policy
	Catalog ProductFinder
}

func NewCartHandler(store cart.Store, policy cart.Policy, catalog ProductFinder) *CartHandler {
	return &CartHandler{Store: store, Policy: policy, Catalog: catalog}
}

//
// 🛒 GET /api/cart
//
func (h *CartHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	items, err := h.Store.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo el carrito"})
		return
	}

	c.JSON(http.StatusOK, items)
}

//
// 🟢 POST /api/cart
//
func (h *CartHandler) Add(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}
	if input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId requerido"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cantidad inválida"})
		return
	}

	item := models.CartItem{ProductID: input.ProductID, Quantity: input.Quantity}
	if h.Catalog != nil {
		if found, ok := h.Catalog.Find(c.Request.Context(), input.ProductID); ok {
			item.Name = found.Name
			item.Price = found.Price
			item.ImageURL = found.ImageURL
		}
	}

	_, err := h.Store.Update(c.Request.Context(), userID, func(items []models.CartItem) []models.CartItem {
		return cart.AddItem(items, item)
	})
	if err != nil {
		log.Printf("❌ Error guardando carrito de %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error guardando el carrito"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

//
// ❌ DELETE /api/cart  {clearAll} o {productId}
//
func (h *CartHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	var input struct {
		ClearAll  bool   `json:"clearAll"`
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	exists, err := h.Store.Exists(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo el carrito"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Carrito inexistente"})
		return
	}

	if input.ClearAll {
		if err := h.Store.Delete(c.Request.Context(), userID); err != nil && !errors.Is(err, cart.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error vaciando el carrito"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId o clearAll requerido"})
		return
	}

	_, err = h.Store.Update(c.Request.Context(), userID, func(items []models.CartItem) []models.CartItem {
		return cart.RemoveItem(items, input.ProductID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error guardando el carrito"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

//
// 🧮 GET /api/cart/totals — siempre derivado, nunca persistido
//
func (h *CartHandler) Totals(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	items, err := h.Store.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo el carrito"})
		return
	}

	c.JSON(http.StatusOK, cart.ComputeTotals(items, h.Policy))
}
