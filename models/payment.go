package models

import (
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodSplit PaymentMethod = "split"
	PaymentMethodCash  PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodSplit, PaymentMethodCash:
		return true
	}
	return false
}

// Payment is the record of a completed checkout.
type Payment struct {
	ID           string        `json:"id"`
	OrderID      string        `json:"order_id"`
	TableID      string        `json:"table_id,omitempty"`
	Method       PaymentMethod `json:"payment_method"`
	Amount       float64       `json:"amount"`
	CashReceived float64       `json:"cash_received,omitempty"` // cash only
	Change       float64       `json:"change,omitempty"`        // cash only
	SplitShares  []float64     `json:"split_shares,omitempty"`  // split only
	PaymentTime  time.Time     `json:"payment_time"`
}
