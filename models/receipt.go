package models

import "time"

type Receipt struct {
	ID            string        `json:"id"`
	ReceiptNumber string        `json:"receipt_number"`
	OrderID       string        `json:"order_id"`
	PaymentID     string        `json:"payment_id"`
	TableName     string        `json:"table_name,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	Items         []ReceiptItem `json:"receipt_items"`
	Totals        Totals        `json:"totals"`

	// payment details
	PaymentMethod PaymentMethod `json:"payment_method"`
	AmountPaid    float64       `json:"amount_paid"`
	Change        float64       `json:"change"`

	CreatedAt time.Time `json:"created_at"`
}

type ReceiptItem struct {
	Name       string   `json:"menu_name"`
	Quantity   int      `json:"quantity"`
	UnitPrice  float64  `json:"unit_price"`
	Discount   float64  `json:"discount"`
	Subtotal   float64  `json:"subtotal"`
	AddOnNames []string `json:"add_on_names,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}
