package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/pkg/types"
)

func amount(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func sampleItems() []types.CartItem {
	return []types.CartItem{
		{ProductID: "A", SelectedSize: "Small", UnitPrice: amount(1000), Quantity: 2},
		{ProductID: "B", SelectedSize: "Large", UnitPrice: amount(3000), Quantity: 1},
	}
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	if got := Subtotal(sampleItems()); !got.Equal(amount(5000)) {
		t.Fatalf("expected 5000, got %s", got)
	}
	if got := Subtotal(nil); !got.IsZero() {
		t.Fatalf("empty cart subtotal must be zero, got %s", got)
	}
}

func TestTotalWithProtectionAndDiscount(t *testing.T) {
	t.Parallel()

	items := sampleItems()
	protection := types.ShippingProtection{Enabled: true, Cost: amount(200)}

	got := Total(items, protection, types.Discount{})
	if !got.Equal(amount(5200)) {
		t.Fatalf("expected 5200, got %s", got)
	}

	discount := types.Discount{Code: "SAVE10", Amount: amount(1000)}
	got = Total(items, protection, discount)
	if !got.Equal(amount(4200)) {
		t.Fatalf("expected 4200, got %s", got)
	}
}

func TestTotalClampsAtZero(t *testing.T) {
	t.Parallel()

	items := sampleItems()
	discount := types.Discount{Code: "BIG", Amount: amount(6000)}

	got := Total(items, types.ShippingProtection{}, discount)
	if !got.IsZero() {
		t.Fatalf("expected clamped zero, got %s", got)
	}

	// Clamp holds even when the discount also swallows the protection fee.
	got = Total(items, types.ShippingProtection{Enabled: true, Cost: amount(200)}, types.Discount{Code: "BIG", Amount: amount(99999)})
	if !got.IsZero() {
		t.Fatalf("expected clamped zero, got %s", got)
	}
}

func TestDisabledProtectionAddsNothing(t *testing.T) {
	t.Parallel()

	protection := types.ShippingProtection{Enabled: false, Cost: amount(200)}
	if got := Total(sampleItems(), protection, types.Discount{}); !got.Equal(amount(5000)) {
		t.Fatalf("expected 5000, got %s", got)
	}
}
