package services

import (
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
)

// DefaultTaxRate applies when no TAX_RATE is configured.
const DefaultTaxRate = 0.05

// Calculate derives the cart totals from its line items. It reads nothing
// but its arguments, so two calls on the same items return identical results.
func Calculate(items []models.LineItem, taxRate float64) models.Totals {
	subtotal := decimal.Zero
	discount := decimal.Zero

	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(decimal.NewFromFloat(item.UnitPrice).Mul(qty))
		if item.UnitDiscount > 0 {
			discount = discount.Add(decimal.NewFromFloat(item.UnitDiscount).Mul(qty))
		}
	}

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(decimal.NewFromFloat(taxRate))
	total := taxable.Add(tax)

	return models.Totals{
		Subtotal: subtotal.InexactFloat64(),
		Discount: discount.InexactFloat64(),
		Taxable:  taxable.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// ResolveDiscount turns a discount variant into the absolute amount taken
// off one unit priced at unitPrice.
func ResolveDiscount(d *models.Discount, unitPrice float64) (float64, error) {
	if d == nil {
		return 0, nil
	}
	switch d.Kind {
	case models.DiscountPercent:
		if d.Value < 0 || d.Value > 1 {
			return 0, ErrInvalidDiscount
		}
		return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromFloat(d.Value)).InexactFloat64(), nil
	case models.DiscountFixed:
		if d.Value < 0 || d.Value > unitPrice {
			return 0, ErrInvalidDiscount
		}
		return d.Value, nil
	default:
		return 0, ErrInvalidDiscount
	}
}

// priceLine fills in the derived per-unit fields of a line item.
func priceLine(item *models.LineItem) error {
	if item.UnitPrice < 0 {
		return ErrInvalidPrice
	}
	unitDiscount, err := ResolveDiscount(item.Discount, item.UnitPrice)
	if err != nil {
		return err
	}
	item.UnitDiscount = unitDiscount
	item.FinalPrice = decimal.NewFromFloat(item.UnitPrice).Sub(decimal.NewFromFloat(unitDiscount)).InexactFloat64()
	return nil
}
