// Package pricing holds the pure cart arithmetic. No I/O happens here; every
// input is already resolved to an absolute currency amount.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/pkg/types"
)

// Subtotal sums unit price times quantity across all lines.
func Subtotal(items []types.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Total computes the order total: subtotal, plus the protection fee when
// enabled, minus the resolved discount amount. The result is floored at zero;
// a discount larger than the order can never drive the total negative.
func Total(items []types.CartItem, protection types.ShippingProtection, discount types.Discount) decimal.Decimal {
	total := Subtotal(items)
	if protection.Enabled {
		total = total.Add(protection.Cost)
	}
	total = total.Sub(discount.Amount)
	return types.ClampNonNegative(total)
}
