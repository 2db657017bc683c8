package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
)

// ItemRequest is how a caller asks for a menu item to be rung up.
type ItemRequest struct {
	MenuItemID string           `json:"menu_item_id" binding:"required"`
	SizeID     string           `json:"size_id"`
	AddOnIDs   []string         `json:"add_on_ids"`
	Notes      string           `json:"notes"`
	Discount   *models.Discount `json:"discount,omitempty"`
}

// Catalog is read-only reference data: menu items and the modifier groups
// they may be customized with. It is built once at startup.
type Catalog struct {
	items      map[string]models.MenuItem
	order      []string
	groups     map[string]models.ModifierGroup
	groupOrder []string
	options    map[string]optionRef
}

type optionRef struct {
	option models.ModifierOption
	kind   models.ModifierKind
}

func NewCatalog(items []models.MenuItem, groups []models.ModifierGroup) *Catalog {
	c := &Catalog{
		items:   make(map[string]models.MenuItem, len(items)),
		groups:  make(map[string]models.ModifierGroup, len(groups)),
		options: make(map[string]optionRef),
	}
	for _, g := range groups {
		if _, dup := c.groups[g.ID]; dup {
			continue
		}
		c.groups[g.ID] = g
		c.groupOrder = append(c.groupOrder, g.ID)
		for _, o := range g.Options {
			c.options[o.ID] = optionRef{option: o, kind: g.Kind}
		}
	}
	for _, it := range items {
		if _, dup := c.items[it.ID]; dup {
			continue
		}
		c.items[it.ID] = it
		c.order = append(c.order, it.ID)
	}
	return c
}

func (c *Catalog) MenuItems() []models.MenuItem {
	out := make([]models.MenuItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Catalog) MenuItem(id string) (models.MenuItem, bool) {
	it, ok := c.items[id]
	return it, ok
}

func (c *Catalog) ModifierGroups() []models.ModifierGroup {
	out := make([]models.ModifierGroup, 0, len(c.groupOrder))
	for _, id := range c.groupOrder {
		out = append(out, c.groups[id])
	}
	return out
}

func (c *Catalog) ModifierGroup(id string) (models.ModifierGroup, bool) {
	g, ok := c.groups[id]
	return g, ok
}

// BuildLineItem resolves a request against the catalog into an unpriced
// line item. Size and add-ons must belong to the groups the menu item
// offers.
func (c *Catalog) BuildLineItem(req ItemRequest) (models.LineItem, error) {
	menu, ok := c.items[req.MenuItemID]
	if !ok {
		return models.LineItem{}, fmt.Errorf("%w: %s", ErrMenuItemNotFound, req.MenuItemID)
	}
	if menu.Price < 0 {
		return models.LineItem{}, fmt.Errorf("%w: menu item %s", ErrInvalidPrice, menu.ID)
	}

	unit := decimal.NewFromFloat(menu.Price)
	custom := models.Customization{Notes: strings.TrimSpace(req.Notes)}

	if req.SizeID != "" {
		ref, ok := c.options[req.SizeID]
		if !ok || ref.kind != models.ModifierSize || ref.option.GroupID != menu.SizeGroupID {
			return models.LineItem{}, fmt.Errorf("%w: size %s for %s", ErrOptionNotFound, req.SizeID, menu.ID)
		}
		if ref.option.Price < 0 {
			return models.LineItem{}, fmt.Errorf("%w: size %s", ErrInvalidPrice, ref.option.ID)
		}
		custom.Size = ref.option.Name
		unit = unit.Add(decimal.NewFromFloat(ref.option.Price))
	}

	seen := make(map[string]bool, len(req.AddOnIDs))
	for _, id := range req.AddOnIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ref, ok := c.options[id]
		if !ok || ref.kind != models.ModifierAddOn || !contains(menu.AddOnGroupIDs, ref.option.GroupID) {
			return models.LineItem{}, fmt.Errorf("%w: add-on %s for %s", ErrOptionNotFound, id, menu.ID)
		}
		if ref.option.Price < 0 {
			return models.LineItem{}, fmt.Errorf("%w: add-on %s", ErrInvalidPrice, ref.option.ID)
		}
		custom.AddOns = append(custom.AddOns, models.AddOn{
			OptionID: ref.option.ID,
			Name:     ref.option.Name,
			Price:    ref.option.Price,
		})
		unit = unit.Add(decimal.NewFromFloat(ref.option.Price))
	}

	item := models.LineItem{
		MenuItemID:    menu.ID,
		Name:          menu.Name,
		UnitPrice:     unit.InexactFloat64(),
		Quantity:      1,
		Customization: custom,
	}
	if req.Discount != nil {
		d := *req.Discount
		item.Discount = &d
	}
	if err := priceLine(&item); err != nil {
		return models.LineItem{}, err
	}
	return item, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
