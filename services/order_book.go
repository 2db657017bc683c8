package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yeremiapane/restaurant-pos/models"
)

// OrderBook tracks orders per service location. A table holds at most one
// active (open or payment_pending) order; closed and voided orders are
// history and no longer hold the table.
type OrderBook struct {
	orders        map[string]*models.Order
	order         []string
	activeByTable map[string]string
	now           func() time.Time
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		orders:        make(map[string]*models.Order),
		activeByTable: make(map[string]string),
		now:           time.Now,
	}
}

// EnsureOpen returns the active order of a table, opening one if there is
// none. An empty tableID stands for the global cart.
func (b *OrderBook) EnsureOpen(tableID string) models.Order {
	if id, ok := b.activeByTable[tableID]; ok {
		return *b.orders[id]
	}
	now := b.now()
	o := &models.Order{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Status:    models.OrderStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.orders[o.ID] = o
	b.order = append(b.order, o.ID)
	b.activeByTable[tableID] = o.ID
	return *o
}

func (b *OrderBook) Active(tableID string) (models.Order, bool) {
	id, ok := b.activeByTable[tableID]
	if !ok {
		return models.Order{}, false
	}
	return *b.orders[id], true
}

func (b *OrderBook) Get(orderID string) (models.Order, bool) {
	o, ok := b.orders[orderID]
	if !ok {
		return models.Order{}, false
	}
	return *o, true
}

// List returns orders oldest first, optionally filtered by status.
func (b *OrderBook) List(status models.OrderStatus) []models.Order {
	out := []models.Order{}
	for _, id := range b.order {
		o := b.orders[id]
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	return out
}

func (b *OrderBook) SetCustomer(orderID, customerID string) error {
	o, err := b.active(orderID)
	if err != nil {
		return err
	}
	o.CustomerID = customerID
	o.UpdatedAt = b.now()
	return nil
}

// Sync copies the current cart contents onto the active order.
func (b *OrderBook) Sync(orderID string, items []models.LineItem, totals models.Totals) error {
	o, err := b.active(orderID)
	if err != nil {
		return err
	}
	o.Items = items
	o.Totals = totals
	o.UpdatedAt = b.now()
	return nil
}

func (b *OrderBook) SetStatus(orderID string, status models.OrderStatus) error {
	o, err := b.active(orderID)
	if err != nil {
		return err
	}
	if status != models.OrderStatusOpen && status != models.OrderStatusPaymentPending {
		return fmt.Errorf("use Close or Void for %s", status)
	}
	o.Status = status
	o.UpdatedAt = b.now()
	return nil
}

// Close settles an active order with the final cart snapshot.
func (b *OrderBook) Close(orderID string, items []models.LineItem, totals models.Totals, method models.PaymentMethod) (models.Order, error) {
	o, err := b.active(orderID)
	if err != nil {
		return models.Order{}, err
	}
	now := b.now()
	o.Items = items
	o.Totals = totals
	o.PaymentMethod = method
	o.Status = models.OrderStatusClosed
	o.ClosedAt = &now
	o.UpdatedAt = now
	delete(b.activeByTable, o.TableID)
	return *o, nil
}

func (b *OrderBook) Void(orderID string) (models.Order, error) {
	o, err := b.active(orderID)
	if err != nil {
		return models.Order{}, err
	}
	o.Status = models.OrderStatusVoided
	o.UpdatedAt = b.now()
	delete(b.activeByTable, o.TableID)
	return *o, nil
}

func (b *OrderBook) active(orderID string) (*models.Order, error) {
	o, ok := b.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if !o.IsActive() {
		return nil, fmt.Errorf("%w: %s is %s", ErrOrderNotActive, orderID, o.Status)
	}
	return o, nil
}
