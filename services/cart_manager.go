package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yeremiapane/restaurant-pos/models"
)

type ItemAction string

const (
	ItemIncrease ItemAction = "increase"
	ItemDecrease ItemAction = "decrease"
	ItemRemove   ItemAction = "remove"
	ItemDiscount ItemAction = "discount"
)

// ItemUpdate is a single change to one line of a cart.
type ItemUpdate struct {
	Action   ItemAction       `json:"action"`
	Discount *models.Discount `json:"discount,omitempty"`
}

// Cart owns the line items of one table (or the global takeaway cart).
// Items are only changed through its methods, each of which recomputes the
// totals before returning. A Cart is not safe for concurrent use; callers
// serialize access (see FloorService).
type Cart struct {
	items   []models.LineItem
	totals  models.Totals
	taxRate float64
}

func NewCart(taxRate float64) *Cart {
	return &Cart{taxRate: taxRate}
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []models.LineItem {
	out := make([]models.LineItem, len(c.items))
	for i := range c.items {
		out[i] = cloneItem(c.items[i])
	}
	return out
}

func (c *Cart) Totals() models.Totals { return c.totals }

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Item looks up a line by id.
func (c *Cart) Item(itemID string) (models.LineItem, bool) {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return models.LineItem{}, false
	}
	return cloneItem(c.items[idx]), true
}

// Recalculate recomputes the totals from the current items.
func (c *Cart) Recalculate() models.Totals {
	c.totals = Calculate(c.items, c.taxRate)
	return c.totals
}

// AddItem merges item into an existing line with the same menu item and
// customization, or appends it as a new line with quantity 1. The returned
// line reflects the cart after the change.
func (c *Cart) AddItem(item models.LineItem) (models.LineItem, error) {
	if err := priceLine(&item); err != nil {
		return models.LineItem{}, err
	}

	key := signature(item)
	for i := range c.items {
		if signature(c.items[i]) == key {
			c.items[i].Quantity++
			c.Recalculate()
			return cloneItem(c.items[i]), nil
		}
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Quantity = 1
	c.items = append(c.items, cloneItem(item))
	c.Recalculate()
	return cloneItem(item), nil
}

func (c *Cart) IncreaseQuantity(itemID string) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	c.items[idx].Quantity++
	c.Recalculate()
	return nil
}

// DecreaseQuantity lowers the quantity by one and drops the line once it
// reaches zero. removed reports whether the line left the cart.
func (c *Cart) DecreaseQuantity(itemID string) (removed bool, err error) {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if c.items[idx].Quantity <= 1 {
		c.removeAt(idx)
		removed = true
	} else {
		c.items[idx].Quantity--
	}
	c.Recalculate()
	return removed, nil
}

func (c *Cart) RemoveItem(itemID string) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	c.removeAt(idx)
	c.Recalculate()
	return nil
}

// ApplyDiscount replaces the discount of a line; nil removes it.
func (c *Cart) ApplyDiscount(itemID string, d *models.Discount) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	updated := cloneItem(c.items[idx])
	if d != nil {
		dd := *d
		updated.Discount = &dd
	} else {
		updated.Discount = nil
	}
	if err := priceLine(&updated); err != nil {
		return err
	}
	c.items[idx] = updated
	c.Recalculate()
	return nil
}

// Apply dispatches an ItemUpdate to the matching cart operation.
func (c *Cart) Apply(itemID string, update ItemUpdate) error {
	switch update.Action {
	case ItemIncrease:
		return c.IncreaseQuantity(itemID)
	case ItemDecrease:
		_, err := c.DecreaseQuantity(itemID)
		return err
	case ItemRemove:
		return c.RemoveItem(itemID)
	case ItemDiscount:
		return c.ApplyDiscount(itemID, update.Discount)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, update.Action)
	}
}

// Clear empties the cart and zeroes its totals.
func (c *Cart) Clear() {
	c.items = nil
	c.Recalculate()
}

func (c *Cart) indexOf(itemID string) int {
	for i := range c.items {
		if c.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// signature identifies lines that should merge on add.
func signature(item models.LineItem) string {
	addOns := make([]string, 0, len(item.Customization.AddOns))
	for _, a := range item.Customization.AddOns {
		addOns = append(addOns, a.OptionID)
	}
	sort.Strings(addOns)

	discount := ""
	if item.Discount != nil {
		discount = fmt.Sprintf("%s:%g", item.Discount.Kind, item.Discount.Value)
	}

	return strings.Join([]string{
		item.MenuItemID,
		item.Customization.Size,
		strings.Join(addOns, ","),
		item.Customization.Notes,
		discount,
	}, "|")
}

func cloneItem(item models.LineItem) models.LineItem {
	if item.Customization.AddOns != nil {
		item.Customization.AddOns = append([]models.AddOn(nil), item.Customization.AddOns...)
	}
	if item.Discount != nil {
		d := *item.Discount
		item.Discount = &d
	}
	return item
}
