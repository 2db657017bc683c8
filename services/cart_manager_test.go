package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

func latte() models.LineItem {
	return models.LineItem{
		MenuItemID: "latte",
		Name:       "Latte",
		UnitPrice:  4.5,
		Customization: models.Customization{
			Size:   "Large",
			AddOns: []models.AddOn{{OptionID: "oat", Name: "Oat milk", Price: 0.5}, {OptionID: "shot", Name: "Extra shot", Price: 0.75}},
		},
	}
}

func TestCartAddItemMergesSameCustomization(t *testing.T) {
	cart := NewCart(DefaultTaxRate)

	first, err := cart.AddItem(latte())
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 1, first.Quantity)

	again := latte()
	again.Customization.AddOns[0], again.Customization.AddOns[1] = again.Customization.AddOns[1], again.Customization.AddOns[0]
	merged, err := cart.AddItem(again)
	require.NoError(t, err)

	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 2, merged.Quantity)
	assert.Equal(t, 1, cart.Len())
	assert.InDelta(t, 9.0, cart.Totals().Subtotal, 1e-9)
}

func TestCartAddItemKeepsDistinctLines(t *testing.T) {
	cart := NewCart(DefaultTaxRate)
	_, err := cart.AddItem(latte())
	require.NoError(t, err)

	small := latte()
	small.Customization.Size = "Small"
	_, err = cart.AddItem(small)
	require.NoError(t, err)

	noted := latte()
	noted.Customization.Notes = "extra hot"
	_, err = cart.AddItem(noted)
	require.NoError(t, err)

	discounted := latte()
	discounted.Discount = &models.Discount{Kind: models.DiscountPercent, Value: 0.5}
	_, err = cart.AddItem(discounted)
	require.NoError(t, err)

	assert.Equal(t, 4, cart.Len())
	for _, it := range cart.Items() {
		assert.Equal(t, 1, it.Quantity)
	}
}

func TestCartAddItemRejectsBadPricing(t *testing.T) {
	cart := NewCart(DefaultTaxRate)

	neg := latte()
	neg.UnitPrice = -2
	_, err := cart.AddItem(neg)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	over := latte()
	over.Discount = &models.Discount{Kind: models.DiscountFixed, Value: 100}
	_, err = cart.AddItem(over)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	assert.True(t, cart.IsEmpty())
}

func TestCartDecreaseToZeroRemovesLine(t *testing.T) {
	cart := NewCart(DefaultTaxRate)
	keep, err := cart.AddItem(models.LineItem{MenuItemID: "tea", Name: "Tea", UnitPrice: 2})
	require.NoError(t, err)
	line, err := cart.AddItem(latte())
	require.NoError(t, err)
	require.NoError(t, cart.IncreaseQuantity(line.ID))

	removed, err := cart.DecreaseQuantity(line.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 2, cart.Len())

	removed, err = cart.DecreaseQuantity(line.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, cart.Len())

	for _, it := range cart.Items() {
		assert.Greater(t, it.Quantity, 0)
	}
	_, ok := cart.Item(keep.ID)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, cart.Totals().Subtotal, 1e-9)
}

func TestCartMissingItemIsAnError(t *testing.T) {
	cart := NewCart(DefaultTaxRate)
	_, err := cart.AddItem(latte())
	require.NoError(t, err)
	before := cart.Items()
	beforeTotals := cart.Totals()

	assert.ErrorIs(t, cart.IncreaseQuantity("nope"), ErrItemNotFound)
	_, err = cart.DecreaseQuantity("nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, cart.RemoveItem("nope"), ErrItemNotFound)
	assert.ErrorIs(t, cart.ApplyDiscount("nope", nil), ErrItemNotFound)
	assert.ErrorIs(t, cart.Apply("nope", ItemUpdate{Action: ItemRemove}), ErrItemNotFound)

	assert.Equal(t, before, cart.Items())
	assert.Equal(t, beforeTotals, cart.Totals())
}

func TestCartApplyDiscount(t *testing.T) {
	cart := NewCart(0.1)
	line, err := cart.AddItem(models.LineItem{MenuItemID: "steak", Name: "Steak", UnitPrice: 20})
	require.NoError(t, err)
	require.NoError(t, cart.IncreaseQuantity(line.ID))

	require.NoError(t, cart.ApplyDiscount(line.ID, &models.Discount{Kind: models.DiscountFixed, Value: 5}))
	got, _ := cart.Item(line.ID)
	assert.InDelta(t, 5.0, got.UnitDiscount, 1e-9)
	assert.InDelta(t, 15.0, got.FinalPrice, 1e-9)
	assert.InDelta(t, 10.0, cart.Totals().Discount, 1e-9)
	assert.InDelta(t, 33.0, cart.Totals().Total, 1e-9)

	err = cart.ApplyDiscount(line.ID, &models.Discount{Kind: models.DiscountPercent, Value: 2})
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	got, _ = cart.Item(line.ID)
	assert.InDelta(t, 5.0, got.UnitDiscount, 1e-9)

	require.NoError(t, cart.ApplyDiscount(line.ID, nil))
	got, _ = cart.Item(line.ID)
	assert.Nil(t, got.Discount)
	assert.Zero(t, cart.Totals().Discount)
}

func TestCartApplyUnknownAction(t *testing.T) {
	cart := NewCart(DefaultTaxRate)
	line, err := cart.AddItem(latte())
	require.NoError(t, err)
	assert.ErrorIs(t, cart.Apply(line.ID, ItemUpdate{Action: "double"}), ErrUnknownAction)
}

func TestCartItemsAreCopies(t *testing.T) {
	cart := NewCart(DefaultTaxRate)
	_, err := cart.AddItem(latte())
	require.NoError(t, err)

	items := cart.Items()
	items[0].Quantity = 99
	items[0].Customization.AddOns[0].Price = 100

	fresh := cart.Items()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.InDelta(t, 0.5, fresh[0].Customization.AddOns[0].Price, 1e-9)
}

func TestCartClear(t *testing.T) {
	cart := NewCart(DefaultTaxRate)
	_, err := cart.AddItem(latte())
	require.NoError(t, err)

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, models.Totals{}, cart.Totals())
}
