package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-pos/models"
)

const (
	EventTableUpdate   = "table_update"
	EventCartUpdate    = "cart_update"
	EventOrderUpdate   = "order_update"
	EventPaymentUpdate = "payment_update"
)

// Notifier receives an event after each committed change.
type Notifier interface {
	Publish(event string, data interface{})
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, interface{}) {}

// SeedData is the reference data the floor starts from.
type SeedData struct {
	Tables         []models.Table
	MenuItems      []models.MenuItem
	ModifierGroups []models.ModifierGroup
}

type GlobalCartView struct {
	Items  []models.LineItem `json:"items"`
	Totals models.Totals     `json:"totals"`
}

type DashboardStats struct {
	Tables       map[models.TableStatus]int `json:"tables"`
	OpenOrders   int                        `json:"open_orders"`
	ClosedOrders int                        `json:"closed_orders"`
	VoidedOrders int                        `json:"voided_orders"`
	GrossSales   float64                    `json:"gross_sales"`
	Customers    int                        `json:"customers"`
	PaymentState PaymentState               `json:"payment_state"`
}

// FloorService is the single entry point used by the HTTP layer. It owns the
// registries and runs every request to completion under one mutex, so the
// single-writer types behind it never see concurrent access and changes to
// one table are applied in arrival order.
type FloorService struct {
	mu sync.Mutex

	tables    *TableRegistry
	global    *Cart
	catalog   *Catalog
	customers *CustomerRegistry
	orders    *OrderBook
	payments  *PaymentCoordinator

	cleaningLogs []models.CleaningLog
	notifier     Notifier
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewFloorService(seed SeedData, taxRate float64, notifier Notifier, log logrus.FieldLogger) *FloorService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	tables := NewTableRegistry(seed.Tables, taxRate, log)
	global := NewCart(taxRate)
	customers := NewCustomerRegistry()
	orders := NewOrderBook()
	return &FloorService{
		tables:    tables,
		global:    global,
		catalog:   NewCatalog(seed.MenuItems, seed.ModifierGroups),
		customers: customers,
		orders:    orders,
		payments:  NewPaymentCoordinator(tables, global, orders, customers, log),
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// ----------------------------------------------------------------
// Tables
// ----------------------------------------------------------------

func (s *FloorService) GetTable(tableID string) (TableView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables.GetTableByID(tableID)
}

func (s *FloorService) ListTables() []TableView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables.ListTables()
}

func (s *FloorService) UpdateTablePosition(tableID string, pos models.Position) (TableView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, err := s.tables.UpdateTablePosition(tableID, pos)
	if err != nil {
		return TableView{}, err
	}
	s.notifier.Publish(EventTableUpdate, view)
	return view, nil
}

func (s *FloorService) UpdateTableStatus(tableID string, status models.TableStatus) (TableView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, err := s.tables.UpdateTableStatus(tableID, status)
	if err != nil {
		return TableView{}, err
	}
	s.notifier.Publish(EventTableUpdate, view)
	return view, nil
}

func (s *FloorService) AddItemToTable(tableID string, req ItemRequest) (models.LineItem, TableView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payments.Locks(tableID) {
		return models.LineItem{}, TableView{}, ErrPaymentInProgress
	}
	item, err := s.catalog.BuildLineItem(req)
	if err != nil {
		return models.LineItem{}, TableView{}, err
	}
	line, view, err := s.tables.AddItemToTableCart(tableID, item)
	if err != nil {
		return models.LineItem{}, TableView{}, err
	}
	s.syncOrder(tableID, view.Items, view.Totals)
	s.notifier.Publish(EventTableUpdate, view)
	return line, view, nil
}

func (s *FloorService) UpdateTableItem(tableID, itemID string, update ItemUpdate) (TableView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payments.Locks(tableID) {
		return TableView{}, ErrPaymentInProgress
	}
	view, err := s.tables.UpdateItemInTableCart(tableID, itemID, update)
	if err != nil {
		return TableView{}, err
	}
	s.syncOrder(tableID, view.Items, view.Totals)
	s.notifier.Publish(EventTableUpdate, view)
	return view, nil
}

// ClearTableCart empties a table cart without payment. The open order of
// the table is voided and an in-flight checkout for it is cancelled.
func (s *FloorService) ClearTableCart(tableID string) (TableView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearTable(tableID)
}

func (s *FloorService) CleanTable(tableID, cleanedBy string) (TableView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, err := s.tables.CleanTable(tableID)
	if err != nil {
		return TableView{}, err
	}
	s.cleaningLogs = append(s.cleaningLogs, models.CleaningLog{
		ID:        uint(len(s.cleaningLogs) + 1),
		TableID:   tableID,
		CleanedBy: cleanedBy,
		CleanedAt: s.now(),
	})
	s.notifier.Publish(EventTableUpdate, view)
	return view, nil
}

func (s *FloorService) CleaningLogs() []models.CleaningLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CleaningLog(nil), s.cleaningLogs...)
}

// ----------------------------------------------------------------
// Global (takeaway) cart
// ----------------------------------------------------------------

func (s *FloorService) GlobalCart() GlobalCartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.globalView()
}

func (s *FloorService) AddItemToGlobalCart(req ItemRequest) (models.LineItem, GlobalCartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payments.Locks("") {
		return models.LineItem{}, GlobalCartView{}, ErrPaymentInProgress
	}
	item, err := s.catalog.BuildLineItem(req)
	if err != nil {
		return models.LineItem{}, GlobalCartView{}, err
	}
	line, err := s.global.AddItem(item)
	if err != nil {
		return models.LineItem{}, GlobalCartView{}, err
	}
	view := s.globalView()
	s.syncOrder("", view.Items, view.Totals)
	s.notifier.Publish(EventCartUpdate, view)
	return line, view, nil
}

func (s *FloorService) UpdateGlobalItem(itemID string, update ItemUpdate) (GlobalCartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payments.Locks("") {
		return GlobalCartView{}, ErrPaymentInProgress
	}
	if err := s.global.Apply(itemID, update); err != nil {
		return GlobalCartView{}, err
	}
	view := s.globalView()
	s.syncOrder("", view.Items, view.Totals)
	s.notifier.Publish(EventCartUpdate, view)
	return view, nil
}

func (s *FloorService) ClearGlobalCart() (GlobalCartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearGlobal()
}

// ----------------------------------------------------------------
// Catalog & customers (the catalog is read-only, no lock needed)
// ----------------------------------------------------------------

func (s *FloorService) MenuItems() []models.MenuItem {
	return s.catalog.MenuItems()
}

func (s *FloorService) MenuItem(id string) (models.MenuItem, bool) {
	return s.catalog.MenuItem(id)
}

func (s *FloorService) ModifierGroups() []models.ModifierGroup {
	return s.catalog.ModifierGroups()
}

func (s *FloorService) ModifierGroup(id string) (models.ModifierGroup, bool) {
	return s.catalog.ModifierGroup(id)
}

func (s *FloorService) RegisterCustomer(in CustomerInput) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.customers.Register(in)
	if err != nil {
		s.log.WithError(err).WithField("phone", in.Phone).Warn("customer registration rejected")
		return models.Customer{}, err
	}
	return c, nil
}

func (s *FloorService) GetCustomer(id string) (models.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.GetByID(id)
}

func (s *FloorService) ListCustomers() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.List()
}

func (s *FloorService) SearchCustomersByPhone(fragment string) []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.SearchByPhone(fragment)
}

// ----------------------------------------------------------------
// Orders
// ----------------------------------------------------------------

func (s *FloorService) ListOrders(status models.OrderStatus) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.List(status)
}

func (s *FloorService) GetOrder(id string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Get(id)
}

// VoidOrder cancels an active order and empties the cart it came from.
func (s *FloorService) VoidOrder(orderID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders.Get(orderID)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if !o.IsActive() {
		return models.Order{}, fmt.Errorf("%w: %s is %s", ErrOrderNotActive, orderID, o.Status)
	}
	var err error
	if o.TableID != "" {
		_, err = s.clearTable(o.TableID)
	} else {
		_, err = s.clearGlobal()
	}
	if err != nil {
		return models.Order{}, err
	}
	o, _ = s.orders.Get(orderID)
	return o, nil
}

// ----------------------------------------------------------------
// Payment flow
// ----------------------------------------------------------------

func (s *FloorService) SetActiveTable(tableID string) (CheckoutSnapshot, error) {
	return s.paymentStep(func() error { return s.payments.SetActiveTable(tableID) })
}

func (s *FloorService) ClearActiveTable() (CheckoutSnapshot, error) {
	return s.paymentStep(s.payments.ClearActiveTable)
}

func (s *FloorService) BeginCheckout() (CheckoutSnapshot, error) {
	return s.paymentStep(func() error {
		_, err := s.payments.BeginCheckout()
		return err
	})
}

func (s *FloorService) AttachCustomer(customerID string) (CheckoutSnapshot, error) {
	return s.paymentStep(func() error { return s.payments.AttachCustomer(customerID) })
}

func (s *FloorService) SelectPaymentMethod(method models.PaymentMethod) (CheckoutSnapshot, error) {
	return s.paymentStep(func() error { return s.payments.SelectMethod(method) })
}

func (s *FloorService) ProcessPayment() (CheckoutSnapshot, error) {
	return s.paymentStep(func() error {
		_, err := s.payments.Process()
		return err
	})
}

func (s *FloorService) CancelPayment() (CheckoutSnapshot, error) {
	return s.paymentStep(s.payments.Cancel)
}

func (s *FloorService) CompletePayment(tender Tender) (CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.payments.Complete(tender)
	if err != nil {
		return CheckoutResult{}, err
	}
	s.notifier.Publish(EventPaymentUpdate, res.Payment)
	s.notifier.Publish(EventOrderUpdate, res.Order)
	if res.Order.TableID != "" {
		if view, ok := s.tables.GetTableByID(res.Order.TableID); ok {
			s.notifier.Publish(EventTableUpdate, view)
		}
	} else {
		s.notifier.Publish(EventCartUpdate, s.globalView())
	}
	return res, nil
}

func (s *FloorService) PaymentSnapshot() CheckoutSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments.Snapshot()
}

func (s *FloorService) Receipt(id string) (models.Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments.Receipt(id)
}

func (s *FloorService) Payments() []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments.Payments()
}

func (s *FloorService) Stats() DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := DashboardStats{
		Tables:       s.tables.StatusCounts(),
		Customers:    s.customers.Len(),
		PaymentState: s.payments.State(),
	}
	for _, o := range s.orders.List("") {
		switch o.Status {
		case models.OrderStatusOpen, models.OrderStatusPaymentPending:
			stats.OpenOrders++
		case models.OrderStatusClosed:
			stats.ClosedOrders++
		case models.OrderStatusVoided:
			stats.VoidedOrders++
		}
	}
	sales := 0.0
	for _, p := range s.payments.Payments() {
		sales += p.Amount
	}
	stats.GrossSales = amountDue(models.Totals{Total: sales}).InexactFloat64()
	return stats
}

// ----------------------------------------------------------------
// helpers (callers hold s.mu)
// ----------------------------------------------------------------

func (s *FloorService) paymentStep(step func() error) (CheckoutSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := step(); err != nil {
		return CheckoutSnapshot{}, err
	}
	snap := s.payments.Snapshot()
	s.notifier.Publish(EventPaymentUpdate, snap)
	return snap, nil
}

func (s *FloorService) clearTable(tableID string) (TableView, error) {
	if s.payments.Locks(tableID) {
		return TableView{}, ErrPaymentInProgress
	}
	if _, ok := s.tables.GetTableByID(tableID); !ok {
		return TableView{}, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	if o, ok := s.orders.Active(tableID); ok && s.payments.Involves(o.ID) {
		_ = s.payments.Cancel()
	}
	view, err := s.tables.ClearTableCart(tableID)
	if err != nil {
		return TableView{}, err
	}
	s.voidActive(tableID)
	s.notifier.Publish(EventTableUpdate, view)
	return view, nil
}

func (s *FloorService) clearGlobal() (GlobalCartView, error) {
	if s.payments.Locks("") {
		return GlobalCartView{}, ErrPaymentInProgress
	}
	if o, ok := s.orders.Active(""); ok && s.payments.Involves(o.ID) {
		_ = s.payments.Cancel()
	}
	s.global.Clear()
	s.voidActive("")
	view := s.globalView()
	s.notifier.Publish(EventCartUpdate, view)
	return view, nil
}

func (s *FloorService) voidActive(tableID string) {
	o, ok := s.orders.Active(tableID)
	if !ok {
		return
	}
	if voided, err := s.orders.Void(o.ID); err == nil {
		s.notifier.Publish(EventOrderUpdate, voided)
	}
}

// syncOrder keeps the active order of a location in step with its cart.
func (s *FloorService) syncOrder(tableID string, items []models.LineItem, totals models.Totals) {
	o := s.orders.EnsureOpen(tableID)
	if err := s.orders.Sync(o.ID, items, totals); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Error("failed to sync order")
	}
}

func (s *FloorService) globalView() GlobalCartView {
	return GlobalCartView{Items: s.global.Items(), Totals: s.global.Totals()}
}
