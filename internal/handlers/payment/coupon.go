package payment

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tienda_back_end/internal/models"
)

type CouponHandler struct {
	Scylla *gocql.Session
}

func NewCouponHandler(session *gocql.Session) *CouponHandler {
	return &CouponHandler{Scylla: session}
}

//
// 🎟️ GET /api/coupons/validate?code=XXX&total=1234.56
//
func (h *CouponHandler) Validate(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el código de cupón"})
		return
	}
	total, _ := strconv.ParseFloat(c.Query("total"), 64)

	var coupon models.Coupon
	err := h.Scylla.Query(`SELECT coupon_id, code, type, value, min_amount, max_uses, used_count, expires_at, is_active FROM coupons WHERE code = ?`, code).
		WithContext(c.Request.Context()).
		Scan(&coupon.ID, &coupon.Code, &coupon.Type, &coupon.Value, &coupon.MinAmount,
			&coupon.MaxUses, &coupon.UsedCount, &coupon.ExpiresAt, &coupon.IsActive)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cupón inexistente"})
		return
	}

	c.JSON(http.StatusOK, ValidateCoupon(coupon, total))
}

// ValidateCoupon aplica las reglas del cupón sobre el total del carrito.
func ValidateCoupon(coupon models.Coupon, total float64) models.CouponValidation {
	result := models.CouponValidation{Code: coupon.Code, Type: coupon.Type}

	switch {
	case !coupon.IsActive:
		result.ErrorMessage = "Cupón desactivado"
	case !coupon.ExpiresAt.IsZero() && time.Now().After(coupon.ExpiresAt):
		result.ErrorMessage = "Cupón vencido"
	case coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses:
		result.ErrorMessage = "Cupón agotado"
	case total < coupon.MinAmount:
		result.ErrorMessage = "El total no alcanza el mínimo del cupón"
	default:
		result.IsValid = true
		if coupon.Type == "percentage" {
			result.Discount = total * coupon.Value / 100
		} else {
			result.Discount = coupon.Value
			if result.Discount > total {
				result.Discount = total
			}
		}
	}

	return result
}
