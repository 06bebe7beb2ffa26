package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tienda_back_end/internal/services"
)

type fakeGateway struct {
	lastItems []services.PreferenceItem
	lastPayer services.PreferencePayer
	lastRef   string
	prefErr   error

	payments map[int]*services.PaymentInfo
	payErr   error
}

func (f *fakeGateway) CreatePreference(_ context.Context, items []services.PreferenceItem, payer services.PreferencePayer, ref string) (*services.CheckoutPreference, error) {
	f.lastItems = items
	f.lastPayer = payer
	f.lastRef = ref
	if f.prefErr != nil {
		return nil, f.prefErr
	}
	return &services.CheckoutPreference{ID: "pref-123", InitPoint: "https://mp.test/init/pref-123"}, nil
}

func (f *fakeGateway) GetPayment(_ context.Context, id int) (*services.PaymentInfo, error) {
	if f.payErr != nil {
		return nil, f.payErr
	}
	info, ok := f.payments[id]
	if !ok {
		return nil, errors.New("payment not found")
	}
	return info, nil
}

func newCheckoutRouter(gw services.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authed := r.Group("", func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token faltante"})
			c.Abort()
			return
		}
		c.Set("user_id", "u1")
		c.Next()
	})

	h := NewCheckoutHandler(gw)
	authed.POST("/api/payments/checkout", h.Create)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCheckout_ReturnsInitPoint(t *testing.T) {
	gw := &fakeGateway{}
	r := newCheckoutRouter(gw)

	rec := postJSON(t, r, "/api/payments/checkout", gin.H{
		"items": []gin.H{
			{"name": "Remera", "quantity": 2, "price": 4500},
			{"name": "Gorra", "quantity": 1, "price": 3000},
		},
		"payer": gin.H{"name": "Ana", "surname": "García", "email": "ana@test.com"},
	}, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"preference_id":"pref-123","init_point":"https://mp.test/init/pref-123"}`, rec.Body.String())

	// El handler manda todo tal cual al gateway, con el usuario como referencia.
	assert.Equal(t, "u1", gw.lastRef)
	assert.Len(t, gw.lastItems, 2)
	assert.Equal(t, "Remera", gw.lastItems[0].Name)
	assert.Equal(t, 2, gw.lastItems[0].Quantity)
	assert.Equal(t, 4500.0, gw.lastItems[0].Price)
	assert.Equal(t, "ana@test.com", gw.lastPayer.Email)
}

func TestCheckout_GatewayErrorSurfacesVerbatim(t *testing.T) {
	gw := &fakeGateway{prefErr: errors.New("invalid access token")}
	r := newCheckoutRouter(gw)

	rec := postJSON(t, r, "/api/payments/checkout", gin.H{
		"items": []gin.H{{"name": "Remera", "quantity": 1, "price": 4500}},
	}, true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"invalid access token"}`, rec.Body.String())
}

func TestCheckout_EmptyItemsRejected(t *testing.T) {
	gw := &fakeGateway{}
	r := newCheckoutRouter(gw)

	rec := postJSON(t, r, "/api/payments/checkout", gin.H{"items": []gin.H{}}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, gw.lastItems)
}

func TestCheckout_InvalidItemRejected(t *testing.T) {
	r := newCheckoutRouter(&fakeGateway{})

	rec := postJSON(t, r, "/api/payments/checkout", gin.H{
		"items": []gin.H{{"name": "Remera", "quantity": 0, "price": 4500}},
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_RequiresAuth(t *testing.T) {
	r := newCheckoutRouter(&fakeGateway{})

	rec := postJSON(t, r, "/api/payments/checkout", gin.H{
		"items": []gin.H{{"name": "Remera", "quantity": 1, "price": 4500}},
	}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
