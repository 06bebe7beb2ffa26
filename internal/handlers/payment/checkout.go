package payment

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/services"
)

type CheckoutHandler struct {
	Gateway services.Gateway
}

func NewCheckoutHandler(gateway services.Gateway) *CheckoutHandler {
	return &CheckoutHandler{Gateway: gateway}
}

//
// 💳 POST /api/checkout — arma la preferencia de pago y devuelve el init_point
//
func (h *CheckoutHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	var input struct {
		Items []services.PreferenceItem `json:"items"`
		Payer services.PreferencePayer  `json:"payer"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El carrito está vacío"})
		return
	}
	for _, it := range input.Items {
		if it.Quantity <= 0 || it.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ítem inválido en el checkout"})
			return
		}
	}

	pref, err := h.Gateway.CreatePreference(c.Request.Context(), input.Items, input.Payer, userID)
	if err != nil {
		log.Printf("❌ Error creando preferencia para %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preference_id": pref.ID,
		"init_point":    pref.InitPoint,
	})
}
