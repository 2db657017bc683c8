package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(event string, _ interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e == event {
			c++
		}
	}
	return c
}

func newTestFloor() (*FloorService, *recordingNotifier) {
	cat := testCatalog()
	seed := SeedData{
		Tables:         seedTables(),
		MenuItems:      cat.MenuItems(),
		ModifierGroups: cat.ModifierGroups(),
	}
	n := &recordingNotifier{}
	return NewFloorService(seed, DefaultTaxRate, n, quietLogger()), n
}

func TestFloorServiceTableOrderFlow(t *testing.T) {
	s, n := newTestFloor()

	line, view, err := s.AddItemToTable("T1", ItemRequest{MenuItemID: "burger", AddOnIDs: []string{"bbq"}})
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusInUse, view.Status)
	assert.InDelta(t, 9.75, line.UnitPrice, 1e-9)

	open := s.ListOrders(models.OrderStatusOpen)
	require.Len(t, open, 1)
	assert.Equal(t, "T1", open[0].TableID)
	assert.Len(t, open[0].Items, 1)

	_, err = s.SetActiveTable("T1")
	require.NoError(t, err)
	_, err = s.BeginCheckout()
	require.NoError(t, err)
	_, err = s.SelectPaymentMethod(models.PaymentMethodCard)
	require.NoError(t, err)
	_, err = s.ProcessPayment()
	require.NoError(t, err)

	_, _, err = s.AddItemToTable("T1", ItemRequest{MenuItemID: "burger"})
	assert.ErrorIs(t, err, ErrPaymentInProgress)
	_, err = s.ClearTableCart("T1")
	assert.ErrorIs(t, err, ErrPaymentInProgress)

	res, err := s.CompletePayment(Tender{})
	require.NoError(t, err)
	assert.Equal(t, open[0].ID, res.Order.ID)

	view, _ = s.GetTable("T1")
	assert.Equal(t, models.TableStatusNeedsCleaning, view.Status)

	view, err = s.CleanTable("T1", "cleaner@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusAvailable, view.Status)
	logs := s.CleaningLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "T1", logs[0].TableID)

	stats := s.Stats()
	assert.Equal(t, 1, stats.ClosedOrders)
	assert.Zero(t, stats.OpenOrders)
	assert.InDelta(t, 10.24, stats.GrossSales, 1e-9)

	_, ok := s.Receipt(res.Receipt.ID)
	assert.True(t, ok)
	assert.Positive(t, n.count(EventTableUpdate))
	assert.Positive(t, n.count(EventPaymentUpdate))
	assert.Positive(t, n.count(EventOrderUpdate))
}

func TestFloorServiceClearTableVoidsOrder(t *testing.T) {
	s, _ := newTestFloor()
	_, _, err := s.AddItemToTable("T2", ItemRequest{MenuItemID: "latte"})
	require.NoError(t, err)
	_, err = s.SetActiveTable("T2")
	require.NoError(t, err)
	_, err = s.BeginCheckout()
	require.NoError(t, err)

	view, err := s.ClearTableCart("T2")
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusNeedsCleaning, view.Status)

	assert.Len(t, s.ListOrders(models.OrderStatusVoided), 1)
	assert.Equal(t, PaymentCancelled, s.PaymentSnapshot().State)
}

func TestFloorServiceVoidOrder(t *testing.T) {
	s, _ := newTestFloor()
	_, _, err := s.AddItemToGlobalCart(ItemRequest{MenuItemID: "latte", SizeID: "sz-s"})
	require.NoError(t, err)
	orders := s.ListOrders("")
	require.Len(t, orders, 1)

	voided, err := s.VoidOrder(orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusVoided, voided.Status)
	assert.Empty(t, s.GlobalCart().Items)

	_, err = s.VoidOrder(orders[0].ID)
	assert.ErrorIs(t, err, ErrOrderNotActive)
	_, err = s.VoidOrder("missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestFloorServiceGlobalCart(t *testing.T) {
	s, n := newTestFloor()
	line, view, err := s.AddItemToGlobalCart(ItemRequest{MenuItemID: "latte", SizeID: "sz-l", AddOnIDs: []string{"oat"}})
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = s.UpdateGlobalItem(line.ID, ItemUpdate{Action: ItemIncrease})
	require.NoError(t, err)
	assert.InDelta(t, 11.55, view.Totals.Total, 1e-9)

	_, err = s.UpdateGlobalItem("missing", ItemUpdate{Action: ItemIncrease})
	assert.ErrorIs(t, err, ErrItemNotFound)

	view, err = s.ClearGlobalCart()
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Positive(t, n.count(EventCartUpdate))
}

func TestFloorServiceCustomers(t *testing.T) {
	s, _ := newTestFloor()
	c, err := s.RegisterCustomer(CustomerInput{Name: "Ana", Phone: "081234"})
	require.NoError(t, err)

	_, err = s.RegisterCustomer(CustomerInput{Name: "Other", Phone: "081234"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.Len(t, s.ListCustomers(), 1)

	assert.Empty(t, s.SearchCustomersByPhone("08"))
	assert.Len(t, s.SearchCustomersByPhone("812"), 1)

	got, ok := s.GetCustomer(c.ID)
	require.True(t, ok)
	assert.Equal(t, "Ana", got.Name)
}

func TestFloorServiceSerializesConcurrentAdds(t *testing.T) {
	s, _ := newTestFloor()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = s.AddItemToTable("T1", ItemRequest{MenuItemID: "burger"})
		}()
	}
	wg.Wait()

	view, _ := s.GetTable("T1")
	require.Len(t, view.Items, 1)
	assert.Equal(t, 50, view.Items[0].Quantity)
}
