package payment

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/models"
	"tienda_back_end/internal/services"
	"tienda_back_end/internal/utils"
)

// WebhookHandler procesa las notificaciones del gateway de pagos.
// MercadoPago reintenta mientras no reciba un 200, así que la respuesta
// es siempre 200: un pago que no pudimos procesar se loguea y se vuelve
// a intentar en la próxima notificación.
type WebhookHandler struct {
	Gateway services.Gateway
	Orders  services.OrderRepo
	Carts   cart.Store
}

func NewWebhookHandler(gateway services.Gateway, orders services.OrderRepo, carts cart.Store) *WebhookHandler {
	return &WebhookHandler{Gateway: gateway, Orders: orders, Carts: carts}
}

//
// 🔔 POST /api/payments/webhook
//
func (h *WebhookHandler) Handle(c *gin.Context) {
	var notification struct {
		Type string `json:"type"`
		Data struct {
			ID int `json:"id,string"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&notification); err != nil {
		log.Printf("⚠️ Webhook con body ilegible: %v", err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if notification.Type != "payment" || notification.Data.ID == 0 {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	info, err := h.Gateway.GetPayment(c.Request.Context(), notification.Data.ID)
	if err != nil {
		log.Printf("⚠️ No se pudo consultar el pago %d: %v", notification.Data.ID, err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	log.Printf("🔔 Pago %d: estado=%s monto=%.2f", info.ID, info.Status, info.Amount)

	if info.Status == "approved" {
		if err := h.confirmOrder(c.Request.Context(), info); err != nil {
			log.Printf("❌ Error confirmando orden del pago %d: %v", info.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// confirmOrder registra la orden una sola vez por pago y vacía el carrito.
func (h *WebhookHandler) confirmOrder(ctx context.Context, info *services.PaymentInfo) error {
	exists, err := h.Orders.ExistsByPaymentID(ctx, info.ID)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("🔁 Pago %d ya procesado, se ignora", info.ID)
		return nil
	}

	userID := info.ExternalReference

	var orderItems []models.OrderItem
	if h.Carts != nil && userID != "" {
		items, err := h.Carts.Get(ctx, userID)
		if err == nil {
			for _, it := range items {
				orderItems = append(orderItems, models.OrderItem{
					ProductID: it.ProductID,
					Name:      it.Name,
					Quantity:  it.Quantity,
					Price:     it.Price,
				})
			}
		}
	}

	order := models.Order{
		ID:          gocql.TimeUUID(),
		UserID:      userID,
		PaymentID:   info.ID,
		Status:      info.Status,
		TotalAmount: info.Amount,
		Items:       orderItems,
		CreatedAt:   time.Now(),
	}

	if err := h.Orders.Save(ctx, order); err != nil {
		return err
	}

	if h.Carts != nil && userID != "" {
		if err := h.Carts.Delete(ctx, userID); err != nil && !errors.Is(err, cart.ErrNotFound) {
			log.Printf("⚠️ No se pudo vaciar el carrito de %s: %v", userID, err)
		}
	}

	if info.PayerEmail != "" {
		go func() {
			if err := utils.SendOrderConfirmation(info.PayerEmail, order); err != nil {
				log.Printf("⚠️ No se pudo mandar el mail de confirmación: %v", err)
			}
		}()
	}

	log.Printf("✅ Orden %s confirmada (pago %d)", order.ID, info.ID)
	return nil
}
