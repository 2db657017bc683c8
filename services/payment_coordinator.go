package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-pos/models"
)

type PaymentState string

const (
	PaymentIdle            PaymentState = "idle"
	PaymentTableActive     PaymentState = "table_active"
	PaymentMethodSelecting PaymentState = "method_selecting"
	PaymentProcessing      PaymentState = "processing"
	PaymentCompleted       PaymentState = "completed"
	PaymentCancelled       PaymentState = "cancelled"
)

// Tender carries what the customer hands over at completion.
type Tender struct {
	CashReceived float64 `json:"cash_received"`
	SplitWays    int     `json:"split_ways"`
}

// CheckoutSnapshot describes the flow as seen by a caller. Totals are
// computed from the authoritative cart at the time of the call.
type CheckoutSnapshot struct {
	State      PaymentState         `json:"state"`
	TableID    string               `json:"table_id,omitempty"`
	OrderID    string               `json:"order_id,omitempty"`
	CustomerID string               `json:"customer_id,omitempty"`
	Method     models.PaymentMethod `json:"payment_method,omitempty"`
	Items      []models.LineItem    `json:"items"`
	Totals     models.Totals        `json:"totals"`
	AmountDue  float64              `json:"amount_due"`
}

type CheckoutResult struct {
	Order   models.Order   `json:"order"`
	Payment models.Payment `json:"payment"`
	Receipt models.Receipt `json:"receipt"`
}

// PaymentCoordinator drives checkout:
//
//	idle -> table_active -> method_selecting -> processing -> completed
//	                                   any state before completed -> cancelled
//
// The authoritative cart is the active table's cart, or the global cart when
// no table is active. Nothing is mutated until Complete, which commits the
// order, payment, receipt and cart clearing together.
type PaymentCoordinator struct {
	tables    *TableRegistry
	global    *Cart
	orders    *OrderBook
	customers *CustomerRegistry
	log       logrus.FieldLogger
	now       func() time.Time

	state       PaymentState
	activeTable string
	orderID     string
	customerID  string
	method      models.PaymentMethod

	payments   []models.Payment
	receipts   []models.Receipt
	receiptSeq int
}

func NewPaymentCoordinator(tables *TableRegistry, global *Cart, orders *OrderBook, customers *CustomerRegistry, log logrus.FieldLogger) *PaymentCoordinator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentCoordinator{
		tables:    tables,
		global:    global,
		orders:    orders,
		customers: customers,
		log:       log,
		now:       time.Now,
		state:     PaymentIdle,
	}
}

func (p *PaymentCoordinator) State() PaymentState { return p.state }

func (p *PaymentCoordinator) ActiveTable() string { return p.activeTable }

// SetActiveTable makes tableID the checkout context. Switching to another
// table while a method is being selected cancels that flow first.
func (p *PaymentCoordinator) SetActiveTable(tableID string) error {
	if p.state == PaymentProcessing {
		return ErrPaymentInProgress
	}
	if _, ok := p.tables.GetTableByID(tableID); !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	if p.state == PaymentMethodSelecting {
		if tableID == p.activeTable {
			return nil
		}
		p.abandon("active table switched")
	}
	p.resetFlow()
	p.activeTable = tableID
	p.state = PaymentTableActive
	return nil
}

// ClearActiveTable falls back to the global cart.
func (p *PaymentCoordinator) ClearActiveTable() error {
	if p.state == PaymentProcessing {
		return ErrPaymentInProgress
	}
	if p.state == PaymentMethodSelecting {
		p.abandon("active table cleared")
	}
	p.resetFlow()
	p.activeTable = ""
	p.state = PaymentIdle
	return nil
}

// BeginCheckout starts method selection for the authoritative cart.
func (p *PaymentCoordinator) BeginCheckout() (CheckoutSnapshot, error) {
	switch p.state {
	case PaymentProcessing:
		return CheckoutSnapshot{}, ErrPaymentInProgress
	case PaymentMethodSelecting:
		return p.Snapshot(), nil
	}
	cart := p.cart()
	if cart.IsEmpty() {
		return CheckoutSnapshot{}, ErrEmptyCart
	}
	order := p.orders.EnsureOpen(p.activeTable)
	if err := p.orders.SetStatus(order.ID, models.OrderStatusPaymentPending); err != nil {
		return CheckoutSnapshot{}, err
	}
	p.resetFlow()
	p.orderID = order.ID
	p.customerID = order.CustomerID
	p.state = PaymentMethodSelecting
	return p.Snapshot(), nil
}

// AttachCustomer links a registered customer to the checkout in progress.
func (p *PaymentCoordinator) AttachCustomer(customerID string) error {
	if p.state != PaymentMethodSelecting {
		return fmt.Errorf("%w: attach customer in %s", ErrPaymentState, p.state)
	}
	if _, ok := p.customers.GetByID(customerID); !ok {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	if err := p.orders.SetCustomer(p.orderID, customerID); err != nil {
		return err
	}
	p.customerID = customerID
	return nil
}

// SelectMethod records the payment method. The cart is not touched.
func (p *PaymentCoordinator) SelectMethod(method models.PaymentMethod) error {
	if p.state != PaymentMethodSelecting {
		return fmt.Errorf("%w: select method in %s", ErrPaymentState, p.state)
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	p.method = method
	return nil
}

// Process locks in the selected method and quotes the amount due.
func (p *PaymentCoordinator) Process() (CheckoutSnapshot, error) {
	if p.state != PaymentMethodSelecting || p.method == "" {
		return CheckoutSnapshot{}, fmt.Errorf("%w: process in %s", ErrPaymentState, p.state)
	}
	if p.cart().IsEmpty() {
		return CheckoutSnapshot{}, ErrEmptyCart
	}
	p.state = PaymentProcessing
	return p.Snapshot(), nil
}

// Complete settles the payment. Every check runs before the first write so
// a rejected tender leaves the flow in processing with nothing changed.
func (p *PaymentCoordinator) Complete(tender Tender) (CheckoutResult, error) {
	if p.state != PaymentProcessing {
		return CheckoutResult{}, fmt.Errorf("%w: complete in %s", ErrPaymentState, p.state)
	}
	cart := p.cart()
	if cart.IsEmpty() {
		return CheckoutResult{}, ErrEmptyCart
	}
	totals := cart.Recalculate()
	due := amountDue(totals)

	payment := models.Payment{
		ID:          uuid.NewString(),
		OrderID:     p.orderID,
		TableID:     p.activeTable,
		Method:      p.method,
		Amount:      due.InexactFloat64(),
		PaymentTime: p.now(),
	}
	switch p.method {
	case models.PaymentMethodCash:
		received := decimal.NewFromFloat(tender.CashReceived)
		if received.LessThan(due) {
			return CheckoutResult{}, fmt.Errorf("%w: received %s, due %s", ErrInsufficientTender, received.StringFixed(2), due.StringFixed(2))
		}
		payment.CashReceived = tender.CashReceived
		payment.Change = received.Sub(due).InexactFloat64()
	case models.PaymentMethodSplit:
		if tender.SplitWays < 2 {
			return CheckoutResult{}, ErrInvalidSplit
		}
		payment.SplitShares = SplitShares(due, tender.SplitWays)
	}
	if p.customerID != "" {
		if _, ok := p.customers.GetByID(p.customerID); !ok {
			return CheckoutResult{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, p.customerID)
		}
	}
	if o, ok := p.orders.Get(p.orderID); !ok || !o.IsActive() {
		return CheckoutResult{}, fmt.Errorf("%w: %s", ErrOrderNotActive, p.orderID)
	}

	items := cart.Items()
	order, err := p.orders.Close(p.orderID, items, totals, p.method)
	if err != nil {
		return CheckoutResult{}, err
	}
	if p.customerID != "" {
		_ = p.customers.RecordOrder(p.customerID)
	}
	if p.activeTable != "" {
		if _, err := p.tables.ClearTableCart(p.activeTable); err != nil {
			return CheckoutResult{}, err
		}
	} else {
		p.global.Clear()
	}

	receipt := p.buildReceipt(order, payment)
	p.payments = append(p.payments, payment)
	p.receipts = append(p.receipts, receipt)

	p.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"table_id": order.TableID,
		"method":   payment.Method,
		"amount":   payment.Amount,
	}).Info("payment completed")

	p.resetFlow()
	p.activeTable = ""
	p.state = PaymentCompleted
	return CheckoutResult{Order: order, Payment: payment, Receipt: receipt}, nil
}

// Cancel abandons the flow without touching the cart or the table.
func (p *PaymentCoordinator) Cancel() error {
	if p.state == PaymentCompleted {
		return fmt.Errorf("%w: payment already completed", ErrPaymentState)
	}
	p.abandon("cancelled")
	p.resetFlow()
	p.activeTable = ""
	p.state = PaymentCancelled
	return nil
}

// Snapshot recomputes the totals of the authoritative cart.
func (p *PaymentCoordinator) Snapshot() CheckoutSnapshot {
	cart := p.cart()
	totals := cart.Recalculate()
	return CheckoutSnapshot{
		State:      p.state,
		TableID:    p.activeTable,
		OrderID:    p.orderID,
		CustomerID: p.customerID,
		Method:     p.method,
		Items:      cart.Items(),
		Totals:     totals,
		AmountDue:  amountDue(totals).InexactFloat64(),
	}
}

// Involves reports whether an in-flight checkout targets the order.
func (p *PaymentCoordinator) Involves(orderID string) bool {
	return orderID != "" && p.orderID == orderID &&
		(p.state == PaymentMethodSelecting || p.state == PaymentProcessing)
}

// Locks reports whether the cart of tableID ("" for the global cart) is
// being charged and must not change.
func (p *PaymentCoordinator) Locks(tableID string) bool {
	return p.state == PaymentProcessing && p.activeTable == tableID
}

func (p *PaymentCoordinator) Payments() []models.Payment {
	return append([]models.Payment(nil), p.payments...)
}

func (p *PaymentCoordinator) Receipts() []models.Receipt {
	return append([]models.Receipt(nil), p.receipts...)
}

func (p *PaymentCoordinator) Receipt(id string) (models.Receipt, bool) {
	for _, r := range p.receipts {
		if r.ID == id || r.ReceiptNumber == id {
			return r, true
		}
	}
	return models.Receipt{}, false
}

func (p *PaymentCoordinator) cart() *Cart {
	if p.activeTable != "" {
		if c, ok := p.tables.cart(p.activeTable); ok {
			return c
		}
	}
	return p.global
}

// abandon puts a payment_pending order back to open.
func (p *PaymentCoordinator) abandon(reason string) {
	if p.orderID == "" {
		return
	}
	if err := p.orders.SetStatus(p.orderID, models.OrderStatusOpen); err != nil {
		p.log.WithError(err).WithField("order_id", p.orderID).Debug("order no longer active")
	}
	p.log.WithFields(logrus.Fields{
		"order_id": p.orderID,
		"table_id": p.activeTable,
		"reason":   reason,
	}).Info("checkout abandoned")
}

func (p *PaymentCoordinator) resetFlow() {
	p.orderID = ""
	p.customerID = ""
	p.method = ""
}

func (p *PaymentCoordinator) buildReceipt(order models.Order, payment models.Payment) models.Receipt {
	p.receiptSeq++
	r := models.Receipt{
		ID:            uuid.NewString(),
		ReceiptNumber: fmt.Sprintf("RCP/%s/%06d", payment.PaymentTime.Format("20060102"), p.receiptSeq),
		OrderID:       order.ID,
		PaymentID:     payment.ID,
		Totals:        order.Totals,
		PaymentMethod: payment.Method,
		AmountPaid:    payment.Amount,
		Change:        payment.Change,
		CreatedAt:     payment.PaymentTime,
	}
	if payment.Method == models.PaymentMethodCash {
		r.AmountPaid = payment.CashReceived
	}
	if t, ok := p.tables.GetTableByID(order.TableID); ok {
		r.TableName = t.Name
	}
	if c, ok := p.customers.GetByID(order.CustomerID); ok {
		r.CustomerName = c.Name
	}
	for _, it := range order.Items {
		ri := models.ReceiptItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  decimal.NewFromFloat(it.UnitDiscount).Mul(decimal.NewFromInt(int64(it.Quantity))).InexactFloat64(),
			Subtotal:  decimal.NewFromFloat(it.FinalPrice).Mul(decimal.NewFromInt(int64(it.Quantity))).InexactFloat64(),
			Notes:     it.Customization.Notes,
		}
		if it.Customization.Size != "" {
			ri.Name = fmt.Sprintf("%s (%s)", it.Name, it.Customization.Size)
		}
		for _, a := range it.Customization.AddOns {
			ri.AddOnNames = append(ri.AddOnNames, a.Name)
		}
		r.Items = append(r.Items, ri)
	}
	return r
}

// amountDue is the total rounded to cents.
func amountDue(t models.Totals) decimal.Decimal {
	return decimal.NewFromFloat(t.Total).Round(2)
}

// SplitShares divides an amount into ways shares of whole cents; the last
// share absorbs the remainder so the shares always sum to the amount.
func SplitShares(amount decimal.Decimal, ways int) []float64 {
	if ways < 1 {
		return nil
	}
	share := amount.Div(decimal.NewFromInt(int64(ways))).RoundDown(2)
	shares := make([]float64, ways)
	rest := amount
	for i := 0; i < ways-1; i++ {
		shares[i] = share.InexactFloat64()
		rest = rest.Sub(share)
	}
	shares[ways-1] = rest.InexactFloat64()
	return shares
}
