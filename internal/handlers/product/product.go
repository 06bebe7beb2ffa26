package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"tienda_back_end/internal/models"
	"tienda_back_end/internal/services"
	"tienda_back_end/internal/utils"
)

const (
	productCacheKey = "products:all"
	productCacheTTL = 1 * time.Hour
	signedURLExpiry = 15 * time.Minute
)

type Handler struct {
	Scylla  *gocql.Session
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
}

func NewHandler(session *gocql.Session, rdb *redis.Client, es *elasticsearch.Client, mc *minio.Client) *Handler {
	return &Handler{Scylla: session, Redis: rdb, Elastic: es, MinIO: mc}
}

// View es el producto tal como lo consume el frontend: con el estado de
// stock ya resuelto, el descuento calculado y las imágenes firmadas.
type View struct {
	models.Product
	StockStatus     string   `json:"stock_status"`
	StockLabel      string   `json:"stock_label"`
	DiscountPercent int      `json:"discount_percent,omitempty"`
	Images          []string `json:"images"`
}

func (h *Handler) decorate(ctx context.Context, p models.Product) View {
	view := View{Product: p}

	info := utils.StockStatus(p.Stock)
	view.StockStatus = info.Status
	view.StockLabel = info.Label

	if p.CompareAtPrice > p.Price && p.Price > 0 {
		if pct, err := utils.DiscountPercent(utils.FormatPrice(p.CompareAtPrice), utils.FormatPrice(p.Price)); err == nil {
			view.DiscountPercent = pct
		}
	}

	view.Images = make([]string, 0, len(p.ImageURLs))
	for _, u := range p.ImageURLs {
		view.Images = append(view.Images, services.SignedImageURL(ctx, h.MinIO, u, signedURLExpiry))
	}

	return view
}

//
// 📦 GET /api/products — listado con cache en Redis
//
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Redis != nil {
		if cached, err := h.Redis.Get(ctx, productCacheKey).Result(); err == nil {
			var views []View
			if json.Unmarshal([]byte(cached), &views) == nil {
				c.JSON(http.StatusOK, views)
				return
			}
		}
	}

	iter := h.Scylla.Query(`SELECT product_id, name, slug, description, price, compare_at_price, stock, category_id, image_urls, tags, created_at, updated_at FROM products`).
		WithContext(ctx).Iter()

	views := []View{}
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice,
		&p.Stock, &p.CategoryID, &p.ImageURLs, &p.Tags, &p.CreatedAt, &p.UpdatedAt) {
		views = append(views, h.decorate(ctx, p))
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Error listando productos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo productos"})
		return
	}

	if h.Redis != nil {
		if data, err := json.Marshal(views); err == nil {
			h.Redis.Set(ctx, productCacheKey, data, productCacheTTL)
		}
	}

	c.JSON(http.StatusOK, views)
}

//
// 🔍 GET /api/products/:id
//
func (h *Handler) GetByID(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	ctx := c.Request.Context()
	var p models.Product
	err = h.Scylla.Query(`SELECT product_id, name, slug, description, price, compare_at_price, stock, category_id, image_urls, tags, created_at, updated_at FROM products WHERE product_id = ?`, productID).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice,
			&p.Stock, &p.CategoryID, &p.ImageURLs, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	c.JSON(http.StatusOK, h.decorate(ctx, p))
}

//
// 🔍 GET /api/products/slug/:slug
//
func (h *Handler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	var p models.Product
	err := h.Scylla.Query(`SELECT product_id, name, slug, description, price, compare_at_price, stock, category_id, image_urls, tags, created_at, updated_at FROM products WHERE slug = ? ALLOW FILTERING`, slug).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice,
			&p.Stock, &p.CategoryID, &p.ImageURLs, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	c.JSON(http.StatusOK, h.decorate(ctx, p))
}

//
// 🟢 POST /api/products — solo admin
//
func (h *Handler) Create(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Solo administradores"})
		return
	}

	var input struct {
		Name           string   `json:"name" binding:"required"`
		Description    string   `json:"description"`
		Price          float64  `json:"price" binding:"required"`
		CompareAtPrice float64  `json:"compare_at_price"`
		Stock          int      `json:"stock"`
		CategoryID     string   `json:"category_id"`
		ImageURLs      []string `json:"image_urls"`
		Tags           []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:             gocql.TimeUUID(),
		Name:           input.Name,
		Slug:           utils.Slugify(input.Name),
		Description:    input.Description,
		Price:          input.Price,
		CompareAtPrice: input.CompareAtPrice,
		Stock:          input.Stock,
		ImageURLs:      input.ImageURLs,
		Tags:           input.Tags,
		CreatedAt:      &now,
		UpdatedAt:      &now,
	}
	if input.CategoryID != "" {
		if categoryID, err := gocql.ParseUUID(input.CategoryID); err == nil {
			p.CategoryID = categoryID
		}
	}

	err := h.Scylla.Query(`INSERT INTO products (product_id, name, slug, description, price, compare_at_price, stock, category_id, image_urls, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.CompareAtPrice, p.Stock,
		p.CategoryID, p.ImageURLs, p.Tags, p.CreatedAt, p.UpdatedAt).
		WithContext(c.Request.Context()).Exec()
	if err != nil {
		log.Printf("❌ Error creando producto: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creando producto"})
		return
	}

	// Indexación y cache fuera del camino crítico.
	if h.Elastic != nil {
		go services.IndexProduct(h.Elastic, p)
	}
	if h.Redis != nil {
		h.Redis.Del(c.Request.Context(), productCacheKey)
	}

	log.Printf("🆕 Producto creado: %s (%s)", p.Name, p.Slug)
	c.JSON(http.StatusCreated, p)
}
