package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusOpen           OrderStatus = "open"
	OrderStatusPaymentPending OrderStatus = "payment_pending"
	OrderStatusClosed         OrderStatus = "closed"
	OrderStatusVoided         OrderStatus = "voided"
)

// Order ties a cart's contents to its service location. TableID is empty for
// orders rung up on the global (takeaway) cart.
type Order struct {
	ID            string        `json:"id"`
	TableID       string        `json:"table_id,omitempty"`
	CustomerID    string        `json:"customer_id,omitempty"`
	Status        OrderStatus   `json:"status"`
	Items         []LineItem    `json:"items"`
	Totals        Totals        `json:"totals"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	ClosedAt      *time.Time    `json:"closed_at,omitempty"`
}

// IsActive reports whether the order still holds its table.
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusOpen || o.Status == OrderStatusPaymentPending
}
