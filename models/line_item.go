package models

type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// Discount is either a proportion of the unit price (Value in [0,1]) or a
// fixed amount taken off each unit.
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

type AddOn struct {
	OptionID string  `json:"option_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

type Customization struct {
	Size   string  `json:"size,omitempty"`
	AddOns []AddOn `json:"add_ons,omitempty"`
	Notes  string  `json:"notes,omitempty"`
}

// LineItem is one purchasable entry of a cart. UnitPrice already includes
// the size and add-on deltas; FinalPrice is UnitPrice less the per-unit discount.
type LineItem struct {
	ID             string        `json:"id"`
	MenuItemID     string        `json:"menu_item_id"`
	Name           string        `json:"name"`
	UnitPrice      float64       `json:"unit_price"`
	Quantity       int           `json:"quantity"`
	Customization  Customization `json:"customization"`
	Discount       *Discount     `json:"discount,omitempty"`
	UnitDiscount   float64       `json:"unit_discount"`
	FinalPrice     float64       `json:"final_price"`
}

// Totals are derived from a cart's line items and never stored on their own.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Taxable  float64 `json:"taxable"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
