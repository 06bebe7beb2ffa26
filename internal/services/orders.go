package services

import (
	"context"
	"encoding/json"

	"github.com/gocql/gocql"

	"tienda_back_end/internal/models"
)

// OrderRepo persiste órdenes confirmadas. El webhook de pagos puede llegar
// repetido, por eso la búsqueda por payment_id.
type OrderRepo interface {
	ExistsByPaymentID(ctx context.Context, paymentID int64) (bool, error)
	Save(ctx context.Context, order models.Order) error
}

type ScyllaOrders struct {
	Session *gocql.Session
}

func NewScyllaOrders(session *gocql.Session) *ScyllaOrders {
	return &ScyllaOrders{Session: session}
}

func (s *ScyllaOrders) ExistsByPaymentID(ctx context.Context, paymentID int64) (bool, error) {
	var orderID gocql.UUID
	err := s.Session.Query(`SELECT order_id FROM orders_by_payment WHERE payment_id = ?`, paymentID).
		WithContext(ctx).Scan(&orderID)
	if err == gocql.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ScyllaOrders) Save(ctx context.Context, order models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	if err := s.Session.Query(`INSERT INTO orders (order_id, user_id, payment_id, status, total_amount, items, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.PaymentID, order.Status, order.TotalAmount, string(itemsJSON), order.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		return err
	}

	return s.Session.Query(`INSERT INTO orders_by_payment (payment_id, order_id, user_id) VALUES (?, ?, ?)`,
		order.PaymentID, order.ID, order.UserID).WithContext(ctx).Exec()
}
