package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Coupon struct {
	ID        gocql.UUID `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"` // "percentage" o "fixed"
	Value     float64    `json:"value"`
	MinAmount float64    `json:"min_amount"`
	MaxUses   int        `json:"max_uses"`
	UsedCount int        `json:"used_count"`
	ExpiresAt time.Time  `json:"expires_at"`
	IsActive  bool       `json:"is_active"`
}

type CouponValidation struct {
	IsValid      bool    `json:"is_valid"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Discount     float64 `json:"discount"`
	Type         string  `json:"type"`
	Code         string  `json:"code"`
}
