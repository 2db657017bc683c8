package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-pos/models"
)

// TableView is a read-only snapshot of a table and its cart.
type TableView struct {
	models.Table
	Items     []models.LineItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Totals    models.Totals     `json:"totals"`
}

type tableEntry struct {
	table models.Table
	cart  *Cart
}

// TableRegistry owns the floor plan. Every table is created from the seed
// list with its own Cart, and that Cart stays attached to it for the life
// of the registry.
type TableRegistry struct {
	tables  map[string]*tableEntry
	order   []string
	taxRate float64
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewTableRegistry(seed []models.Table, taxRate float64, log logrus.FieldLogger) *TableRegistry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &TableRegistry{
		tables:  make(map[string]*tableEntry, len(seed)),
		taxRate: taxRate,
		log:     log,
		now:     time.Now,
	}
	for _, t := range seed {
		if _, dup := r.tables[t.ID]; dup || t.ID == "" {
			log.WithField("table_id", t.ID).Warn("skipping duplicate or unnamed seed table")
			continue
		}
		if !ValidTableStatus(t.Status) {
			t.Status = models.TableStatusAvailable
		}
		r.tables[t.ID] = &tableEntry{table: t, cart: NewCart(taxRate)}
		r.order = append(r.order, t.ID)
	}
	return r
}

// GetTableByID returns false for an unknown id.
func (r *TableRegistry) GetTableByID(tableID string) (TableView, bool) {
	e, ok := r.tables[tableID]
	if !ok {
		return TableView{}, false
	}
	return e.view(), true
}

// ListTables returns every table in seed order.
func (r *TableRegistry) ListTables() []TableView {
	out := make([]TableView, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tables[id].view())
	}
	return out
}

func (r *TableRegistry) StatusCounts() map[models.TableStatus]int {
	counts := map[models.TableStatus]int{
		models.TableStatusAvailable:     0,
		models.TableStatusInUse:         0,
		models.TableStatusNeedsCleaning: 0,
	}
	for _, e := range r.tables {
		counts[e.table.Status]++
	}
	return counts
}

func (r *TableRegistry) UpdateTablePosition(tableID string, pos models.Position) (TableView, error) {
	e, err := r.entry(tableID)
	if err != nil {
		return TableView{}, err
	}
	e.table.Position = pos
	e.table.UpdatedAt = r.now()
	return e.view(), nil
}

// UpdateTableStatus applies a manual status change. Only moves along the
// lifecycle (or to the same status) are accepted, and a table keeps its
// status while its cart holds items.
func (r *TableRegistry) UpdateTableStatus(tableID string, status models.TableStatus) (TableView, error) {
	e, err := r.entry(tableID)
	if err != nil {
		return TableView{}, err
	}
	err = CanTransition(e.table.Status, status)
	if err == nil && status != e.table.Status && !e.cart.IsEmpty() {
		err = fmt.Errorf("%w: table %s still has %d cart lines", ErrInvalidTransition, tableID, e.cart.Len())
	}
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"table_id": tableID,
			"from":     e.table.Status,
			"to":       status,
		}).Warn("rejected table status change")
		return TableView{}, err
	}
	r.setStatus(e, status)
	return e.view(), nil
}

// AddItemToTableCart adds item to the table cart. The first item turns an
// available table in_use.
func (r *TableRegistry) AddItemToTableCart(tableID string, item models.LineItem) (models.LineItem, TableView, error) {
	e, err := r.entry(tableID)
	if err != nil {
		return models.LineItem{}, TableView{}, err
	}
	next, err := StatusAfterItemAdded(e.table.Status)
	if err != nil {
		return models.LineItem{}, TableView{}, err
	}
	line, err := e.cart.AddItem(item)
	if err != nil {
		return models.LineItem{}, TableView{}, err
	}
	r.setStatus(e, next)
	return line, e.view(), nil
}

func (r *TableRegistry) UpdateItemInTableCart(tableID, itemID string, update ItemUpdate) (TableView, error) {
	e, err := r.entry(tableID)
	if err != nil {
		return TableView{}, err
	}

	if err := e.cart.Apply(itemID, update); err != nil {
		return TableView{}, err
	}
	return e.view(), nil
}

// ClearTableCart empties the cart. A table whose non-empty cart is cleared
// moves to needs_cleaning.
func (r *TableRegistry) ClearTableCart(tableID string) (TableView, error) {
	e, err := r.entry(tableID)
	if err != nil {
		return TableView{}, err
	}
	hadItems := !e.cart.IsEmpty()
	e.cart.Clear()
	r.setStatus(e, StatusAfterCartCleared(e.table.Status, hadItems))
	return e.view(), nil
}

// CleanTable is the explicit action that returns a table to service.
func (r *TableRegistry) CleanTable(tableID string) (TableView, error) {
	e, err := r.entry(tableID)
	if err != nil {
		return TableView{}, err
	}
	next, err := StatusAfterCleaning(e.table.Status)
	if err != nil {
		return TableView{}, err
	}
	r.setStatus(e, next)
	return e.view(), nil
}

// cart exposes the owned cart to the payment coordinator.
func (r *TableRegistry) cart(tableID string) (*Cart, bool) {
	e, ok := r.tables[tableID]
	if !ok {
		return nil, false
	}
	return e.cart, true
}

func (r *TableRegistry) entry(tableID string) (*tableEntry, error) {
	e, ok := r.tables[tableID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	return e, nil
}

func (r *TableRegistry) setStatus(e *tableEntry, status models.TableStatus) {
	if e.table.Status == status {
		return
	}
	r.log.WithFields(logrus.Fields{
		"table_id": e.table.ID,
		"from":     e.table.Status,
		"to":       status,
	}).Info("table status changed")
	e.table.Status = status
	e.table.UpdatedAt = r.now()
}

func (e *tableEntry) view() TableView {
	return TableView{
		Table:     e.table,
		Items:     e.cart.Items(),
		ItemCount: e.cart.Len(),
		Totals:    e.cart.Totals(),
	}
}
