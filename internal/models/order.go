package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Order struct {
	ID          gocql.UUID  `json:"id"`
	UserID      string      `json:"user_id"`
	PaymentID   int64       `json:"payment_id"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
