package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/middleware"
	"tienda_back_end/internal/models"
)

func newCartRouter(store *cart.MemoryStore, policy cart.Policy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// Simula el middleware JWT: user_id fijo cuando viene el header.
	authed := r.Group("", func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token faltante"})
			c.Abort()
			return
		}
		c.Set("user_id", "u1")
		c.Next()
	})

	h := NewCartHandler(store, policy, nil)
	authed.GET("/api/cart", h.Get)
	authed.POST("/api/cart", h.Add)
	authed.DELETE("/api/cart", h.Delete)
	authed.GET("/api/cart/totals", h.Totals)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getItems(t *testing.T, rec *httptest.ResponseRecorder) []models.CartItem {
	t.Helper()
	var items []models.CartItem
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	return items
}

func TestCart_AddTwiceMergesQuantities(t *testing.T) {
	r := newCartRouter(cart.NewMemoryStore(), cart.Policy{})

	rec := doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P1", "quantity": 2}, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P1", "quantity": 3}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doJSON(t, r, "GET", "/api/cart", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	items := getItems(t, rec)
	assert.Len(t, items, 1)
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCart_ClearAllLeavesEmptyCart(t *testing.T) {
	r := newCartRouter(cart.NewMemoryStore(), cart.Policy{})

	doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P1", "quantity": 2}, true)
	doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P2", "quantity": 1}, true)

	rec := doJSON(t, r, "DELETE", "/api/cart", gin.H{"clearAll": true}, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, "GET", "/api/cart", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, getItems(t, rec))
}

func TestCart_RemoveSingleProduct(t *testing.T) {
	r := newCartRouter(cart.NewMemoryStore(), cart.Policy{})

	doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P1", "quantity": 2}, true)
	doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P2", "quantity": 1}, true)

	rec := doJSON(t, r, "DELETE", "/api/cart", gin.H{"productId": "P1"}, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	items := getItems(t, doJSON(t, r, "GET", "/api/cart", nil, true))
	assert.Len(t, items, 1)
	assert.Equal(t, "P2", items[0].ProductID)
}

func TestCart_DeleteWithoutCartIs404(t *testing.T) {
	r := newCartRouter(cart.NewMemoryStore(), cart.Policy{})

	rec := doJSON(t, r, "DELETE", "/api/cart", gin.H{"clearAll": true}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_UnauthenticatedIsRejectedEverywhere(t *testing.T) {
	r := newCartRouter(cart.NewMemoryStore(), cart.Policy{})

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, "GET", "/api/cart", nil, false).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P1", "quantity": 1}, false).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, "DELETE", "/api/cart", gin.H{"clearAll": true}, false).Code)
}

func TestCart_RejectsInvalidQuantity(t *testing.T) {
	r := newCartRouter(cart.NewMemoryStore(), cart.Policy{})

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P1", "quantity": 0}, true).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, "POST", "/api/cart", gin.H{"productId": "P1", "quantity": -3}, true).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, "POST", "/api/cart", gin.H{"quantity": 2}, true).Code)
}

// Un carrito guardado con JSON roto no rompe el GET: se devuelve vacío.
func TestCart_CorruptStoredCartReadsEmpty(t *testing.T) {
	store := cart.NewMemoryStore()
	store.Seed("u1", "{corrupto")

	r := newCartRouter(store, cart.Policy{})

	rec := doJSON(t, r, "GET", "/api/cart", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, getItems(t, rec))
}

func TestCart_TotalsComputedFromStoredItems(t *testing.T) {
	store := cart.NewMemoryStore()
	store.Seed("u1", `[{"productId":"P1","quantity":2,"price":1000},{"productId":"P2","quantity":1,"price":500}]`)

	r := newCartRouter(store, cart.Policy{TaxRate: 0.21, FlatShipping: 800, FreeShippingThreshold: 5000})

	rec := doJSON(t, r, "GET", "/api/cart/totals", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	var totals cart.Totals
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, 2500.0, totals.Subtotal)
	assert.InDelta(t, 525.0, totals.Tax, 0.001)
	assert.Equal(t, 800.0, totals.Shipping)
	assert.InDelta(t, 3825.0, totals.Total, 0.001)
}

func TestCart_TotalsEmptyCartAllZero(t *testing.T) {
	r := newCartRouter(cart.NewMemoryStore(), cart.Policy{TaxRate: 0.21, FlatShipping: 800})

	rec := doJSON(t, r, "GET", "/api/cart/totals", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subtotal":0,"tax":0,"shipping":0,"total":0}`, rec.Body.String())
}

// El middleware real también corta con 401 sin tocar el storage.
func TestCart_RealAuthMiddlewareRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCartHandler(cart.NewMemoryStore(), cart.Policy{}, nil)
	r.GET("/api/cart", middleware.AuthRequired(), h.Get)

	req := httptest.NewRequest("GET", "/api/cart", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
