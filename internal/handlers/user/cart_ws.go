package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restringir al origen del frontend cuando se fije el dominio.
		return true
	},
}

const wsPingInterval = 30 * time.Second

// CartSyncHandler sincroniza el carrito en tiempo real: cada mutación del
// Store dispara un push con el estado completo, así dos pestañas del mismo
// usuario ven siempre lo mismo.
type CartSyncHandler struct {
	Store cart.Store
	Feed  cart.Feed
}

func NewCartSyncHandler(store cart.Store, feed cart.Feed) *CartSyncHandler {
	return &CartSyncHandler{Store: store, Feed: feed}
}

//
// 🔄 GET /api/cart/ws
//
func (h *CartSyncHandler) Stream(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Error en upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	signals, cancel := h.Feed.Subscribe(ctx, userID)
	defer cancel()

	if err := conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Sincronización del carrito activada",
	}); err != nil {
		return
	}

	for {
		select {
		case _, ok := <-signals:
			if !ok {
				return
			}
			items, err := h.Store.Get(ctx, userID)
			if err != nil {
				log.Printf("⚠️ No se pudo leer el carrito de %s para el push: %v", userID, err)
				continue
			}
			if err := conn.WriteJSON(cartUpdate(items)); err != nil {
				log.Printf("❌ Error enviando por WebSocket: %v", err)
				return
			}
		case <-ctx.Done():
			return
		case <-time.After(wsPingInterval):
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func cartUpdate(items []models.CartItem) gin.H {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return gin.H{
		"type":  "cart_updated",
		"items": items,
		"total": total,
		"count": len(items),
	}
}
