package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tienda_back_end/internal/models"
)

type WishlistHandler struct {
	Scylla *gocql.Session
	Redis  *redis.Client
}

func NewWishlistHandler(session *gocql.Session, client *redis.Client) *WishlistHandler {
	return &WishlistHandler{Scylla: session, Redis: client}
}

// Get devuelve la wishlist con los productos ya resueltos, cacheada 10 min.
func (h *WishlistHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx := context.Background()
	cacheKey := "wishlist:" + userID

	if cached, err := h.Redis.Get(ctx, cacheKey).Result(); err == nil {
		var wishlist models.Wishlist
		if json.Unmarshal([]byte(cached), &wishlist) == nil {
			c.JSON(http.StatusOK, wishlist)
			return
		}
	}

	iter := h.Scylla.Query(`SELECT product_id FROM wishlist WHERE user_id = ?`, userID).
		WithContext(c.Request.Context()).Iter()

	var productIDs []gocql.UUID
	var productID gocql.UUID
	for iter.Scan(&productID) {
		productIDs = append(productIDs, productID)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo wishlist"})
		return
	}

	var products []models.Product
	for _, pid := range productIDs {
		var p models.Product
		err := h.Scylla.Query(`SELECT product_id, name, slug, price, compare_at_price, stock, image_urls FROM products WHERE product_id = ?`, pid).
			WithContext(c.Request.Context()).
			Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.CompareAtPrice, &p.Stock, &p.ImageURLs)
		if err == nil {
			products = append(products, p)
		}
	}

	wishlist := models.Wishlist{UserID: userID, Items: products}

	if data, err := json.Marshal(wishlist); err == nil {
		h.Redis.Set(ctx, cacheKey, data, 10*time.Minute)
	}

	c.JSON(http.StatusOK, wishlist)
}

func (h *WishlistHandler) Add(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	productUUID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de producto inválido"})
		return
	}

	// El producto tiene que existir.
	var found gocql.UUID
	err = h.Scylla.Query(`SELECT product_id FROM products WHERE product_id = ?`, gocql.UUID(productUUID)).
		WithContext(c.Request.Context()).Scan(&found)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	err = h.Scylla.Query(`INSERT INTO wishlist (user_id, product_id, added_at) VALUES (?, ?, ?)`,
		userID, gocql.UUID(productUUID), time.Now()).WithContext(c.Request.Context()).Exec()
	if err != nil {
		log.Printf("❌ Error agregando a wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error agregando a la wishlist"})
		return
	}

	h.Redis.Del(context.Background(), "wishlist:"+userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "productId": req.ProductID})
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	productUUID, err := uuid.Parse(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de producto inválido"})
		return
	}

	err = h.Scylla.Query(`DELETE FROM wishlist WHERE user_id = ? AND product_id = ?`,
		userID, gocql.UUID(productUUID)).WithContext(c.Request.Context()).Exec()
	if err != nil {
		log.Printf("❌ Error sacando de wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sacando de la wishlist"})
		return
	}

	h.Redis.Del(context.Background(), "wishlist:"+userID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
