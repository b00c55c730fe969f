package types

import "github.com/shopspring/decimal"

// CartItem is one (product, size) line in the cart. UnitPrice is snapshotted
// when the line is added and never re-derived from the catalog.
type CartItem struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Images       []Image         `json:"images,omitempty"`
	SelectedSize string          `json:"selectedSize"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
}

// LineTotal is the snapshotted unit price times quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
