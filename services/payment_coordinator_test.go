package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

type coordinatorFixture struct {
	tables    *TableRegistry
	global    *Cart
	orders    *OrderBook
	customers *CustomerRegistry
	pay       *PaymentCoordinator
}

func newCoordinatorFixture() *coordinatorFixture {
	f := &coordinatorFixture{
		tables:    newTestRegistry(),
		global:    NewCart(DefaultTaxRate),
		orders:    NewOrderBook(),
		customers: NewCustomerRegistry(),
	}
	f.pay = NewPaymentCoordinator(f.tables, f.global, f.orders, f.customers, quietLogger())
	return f
}

func (f *coordinatorFixture) addToTable(t *testing.T, tableID string, price float64) {
	t.Helper()
	_, _, err := f.tables.AddItemToTableCart(tableID, models.LineItem{MenuItemID: "dish", Name: "Dish", UnitPrice: price})
	require.NoError(t, err)
	f.orders.EnsureOpen(tableID)
}

func TestPaymentFlowForTable(t *testing.T) {
	f := newCoordinatorFixture()
	f.addToTable(t, "T1", 10)
	f.addToTable(t, "T1", 10)
	customer, err := f.customers.Register(CustomerInput{Name: "Ana", Phone: "5550100"})
	require.NoError(t, err)

	require.NoError(t, f.pay.SetActiveTable("T1"))
	assert.Equal(t, PaymentTableActive, f.pay.State())

	snap, err := f.pay.BeginCheckout()
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodSelecting, snap.State)
	assert.InDelta(t, 21.0, snap.Totals.Total, 1e-9)
	order, _ := f.orders.Get(snap.OrderID)
	assert.Equal(t, models.OrderStatusPaymentPending, order.Status)

	require.NoError(t, f.pay.AttachCustomer(customer.ID))
	assert.ErrorIs(t, f.pay.SelectMethod("cheque"), ErrInvalidMethod)
	require.NoError(t, f.pay.SelectMethod(models.PaymentMethodCard))

	snap, err = f.pay.Process()
	require.NoError(t, err)
	assert.Equal(t, PaymentProcessing, snap.State)
	assert.InDelta(t, 21.0, snap.AmountDue, 1e-9)

	res, err := f.pay.Complete(Tender{})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusClosed, res.Order.Status)
	assert.Len(t, res.Order.Items, 1)
	assert.InDelta(t, 21.0, res.Payment.Amount, 1e-9)
	assert.Equal(t, "Table 1", res.Receipt.TableName)
	assert.Equal(t, "Ana", res.Receipt.CustomerName)
	assert.Regexp(t, `^RCP/\d{8}/000001$`, res.Receipt.ReceiptNumber)

	view, _ := f.tables.GetTableByID("T1")
	assert.Equal(t, models.TableStatusNeedsCleaning, view.Status)
	assert.Zero(t, view.ItemCount)

	c, _ := f.customers.GetByID(customer.ID)
	assert.Equal(t, 1, c.OrderCount)

	assert.Equal(t, PaymentCompleted, f.pay.State())
	assert.Empty(t, f.pay.ActiveTable())
	_, ok := f.orders.Active("T1")
	assert.False(t, ok)

	got, ok := f.pay.Receipt(res.Receipt.ReceiptNumber)
	require.True(t, ok)
	assert.Equal(t, res.Receipt.ID, got.ID)
}

func TestPaymentFlowUsesGlobalCartWithoutTable(t *testing.T) {
	f := newCoordinatorFixture()
	_, err := f.global.AddItem(models.LineItem{MenuItemID: "coffee", Name: "Coffee", UnitPrice: 3})
	require.NoError(t, err)

	_, err = f.pay.BeginCheckout()
	require.NoError(t, err)
	require.NoError(t, f.pay.SelectMethod(models.PaymentMethodCash))
	_, err = f.pay.Process()
	require.NoError(t, err)

	res, err := f.pay.Complete(Tender{CashReceived: 5})
	require.NoError(t, err)
	assert.Empty(t, res.Order.TableID)
	assert.InDelta(t, 3.15, res.Payment.Amount, 1e-9)
	assert.InDelta(t, 1.85, res.Payment.Change, 1e-9)
	assert.InDelta(t, 5.0, res.Receipt.AmountPaid, 1e-9)
	assert.True(t, f.global.IsEmpty())
}

func TestBeginCheckoutOnEmptyCart(t *testing.T) {
	f := newCoordinatorFixture()
	require.NoError(t, f.pay.SetActiveTable("T2"))
	_, err := f.pay.BeginCheckout()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, PaymentTableActive, f.pay.State())
	assert.Empty(t, f.orders.List(""))
}

func TestSwitchingTableCancelsMethodSelection(t *testing.T) {
	f := newCoordinatorFixture()
	f.addToTable(t, "T1", 10)
	f.addToTable(t, "T2", 4)

	require.NoError(t, f.pay.SetActiveTable("T1"))
	snap, err := f.pay.BeginCheckout()
	require.NoError(t, err)
	require.NoError(t, f.pay.SelectMethod(models.PaymentMethodCard))

	require.NoError(t, f.pay.SetActiveTable("T2"))

	assert.Equal(t, PaymentTableActive, f.pay.State())
	assert.Equal(t, "T2", f.pay.ActiveTable())
	now := f.pay.Snapshot()
	assert.Empty(t, now.Method)
	assert.Empty(t, now.OrderID)
	assert.InDelta(t, 4.2, now.Totals.Total, 1e-9)

	prior, _ := f.orders.Get(snap.OrderID)
	assert.Equal(t, models.OrderStatusOpen, prior.Status)
	view, _ := f.tables.GetTableByID("T1")
	assert.Equal(t, 1, view.ItemCount)
}

func TestCancelLeavesCartAndTableAlone(t *testing.T) {
	f := newCoordinatorFixture()
	f.addToTable(t, "T1", 10)
	require.NoError(t, f.pay.SetActiveTable("T1"))
	_, err := f.pay.BeginCheckout()
	require.NoError(t, err)
	require.NoError(t, f.pay.SelectMethod(models.PaymentMethodSplit))
	_, err = f.pay.Process()
	require.NoError(t, err)

	require.NoError(t, f.pay.Cancel())

	assert.Equal(t, PaymentCancelled, f.pay.State())
	assert.Empty(t, f.pay.ActiveTable())
	view, _ := f.tables.GetTableByID("T1")
	assert.Equal(t, models.TableStatusInUse, view.Status)
	assert.Equal(t, 1, view.ItemCount)
	active, ok := f.orders.Active("T1")
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusOpen, active.Status)
	assert.Empty(t, f.pay.Payments())
}

func TestCompleteValidatesBeforeWriting(t *testing.T) {
	f := newCoordinatorFixture()
	f.addToTable(t, "T1", 10)
	require.NoError(t, f.pay.SetActiveTable("T1"))
	_, err := f.pay.BeginCheckout()
	require.NoError(t, err)
	require.NoError(t, f.pay.SelectMethod(models.PaymentMethodCash))
	_, err = f.pay.Process()
	require.NoError(t, err)

	_, err = f.pay.Complete(Tender{CashReceived: 10})
	assert.ErrorIs(t, err, ErrInsufficientTender)

	assert.Equal(t, PaymentProcessing, f.pay.State())
	view, _ := f.tables.GetTableByID("T1")
	assert.Equal(t, 1, view.ItemCount)
	assert.Empty(t, f.pay.Payments())
	assert.Empty(t, f.pay.Receipts())

	res, err := f.pay.Complete(Tender{CashReceived: 10.5})
	require.NoError(t, err)
	assert.Zero(t, res.Payment.Change)
}

func TestCompleteSplitPayment(t *testing.T) {
	f := newCoordinatorFixture()
	f.addToTable(t, "T1", 10)
	require.NoError(t, f.pay.SetActiveTable("T1"))
	_, err := f.pay.BeginCheckout()
	require.NoError(t, err)
	require.NoError(t, f.pay.SelectMethod(models.PaymentMethodSplit))
	_, err = f.pay.Process()
	require.NoError(t, err)

	_, err = f.pay.Complete(Tender{SplitWays: 1})
	assert.ErrorIs(t, err, ErrInvalidSplit)

	res, err := f.pay.Complete(Tender{SplitWays: 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 3.5, 3.5}, res.Payment.SplitShares)
}

func TestStepsOutOfOrderAreRejected(t *testing.T) {
	f := newCoordinatorFixture()
	f.addToTable(t, "T1", 10)

	assert.ErrorIs(t, f.pay.SelectMethod(models.PaymentMethodCard), ErrPaymentState)
	_, err := f.pay.Process()
	assert.ErrorIs(t, err, ErrPaymentState)
	_, err = f.pay.Complete(Tender{})
	assert.ErrorIs(t, err, ErrPaymentState)
	assert.ErrorIs(t, f.pay.SetActiveTable("T9"), ErrTableNotFound)

	require.NoError(t, f.pay.SetActiveTable("T1"))
	_, err = f.pay.BeginCheckout()
	require.NoError(t, err)
	_, err = f.pay.Process()
	assert.ErrorIs(t, err, ErrPaymentState, "no method selected yet")

	require.NoError(t, f.pay.SelectMethod(models.PaymentMethodCard))
	_, err = f.pay.Process()
	require.NoError(t, err)
	assert.ErrorIs(t, f.pay.SetActiveTable("T2"), ErrPaymentInProgress)
	assert.ErrorIs(t, f.pay.ClearActiveTable(), ErrPaymentInProgress)
	assert.True(t, f.pay.Locks("T1"))
}

func TestSplitShares(t *testing.T) {
	shares := SplitShares(decimal.RequireFromString("10.00"), 3)
	assert.Equal(t, []float64{3.33, 3.33, 3.34}, shares)

	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(decimal.NewFromFloat(s))
	}
	assert.True(t, sum.Equal(decimal.RequireFromString("10")))
	assert.Nil(t, SplitShares(decimal.NewFromInt(5), 0))
}
