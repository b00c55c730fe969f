package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/internal/catalog"
	"github.com/zaimara-studio/storefront/internal/pricing"
	"github.com/zaimara-studio/storefront/pkg/logger"
	"github.com/zaimara-studio/storefront/pkg/statestore"
	"github.com/zaimara-studio/storefront/pkg/types"
)

// Observer is notified after every cart mutation with the current line count,
// so a view layer can refresh its badge without polling.
type Observer func(lineCount int)

// Store is the single shared cart for a session. All views mutate it through
// this API only; the uniqueness and quantity invariants live here. Every
// mutation is mirrored to durable state best-effort: a persistence failure is
// logged and the in-memory cart stays authoritative.
type Store struct {
	mu         sync.Mutex
	items      []types.CartItem
	protection types.ShippingProtection
	discount   types.Discount

	state     statestore.Store
	logg      *logger.Logger
	observers []Observer
}

// NewStore builds an empty cart persisting to state, with the configured
// shipping-protection fee (disabled until the customer opts in).
func NewStore(state statestore.Store, logg *logger.Logger, protectionFee decimal.Decimal) *Store {
	return &Store{
		state:      state,
		protection: types.ShippingProtection{Enabled: false, Cost: protectionFee},
		logg:       logg,
	}
}

// Subscribe registers an observer for cart mutations.
func (s *Store) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, observer)
	s.mu.Unlock()
}

// Load restores the persisted item list. A missing key starts empty; a value
// that does not decode as an item list is treated as corrupt and discarded.
func (s *Store) Load(ctx context.Context) {
	if s.state == nil {
		return
	}
	raw, err := s.state.Get(ctx, statestore.KeyCart)
	if err != nil {
		if err != statestore.ErrNotFound && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", statestore.KeyCart), "reading persisted cart failed")
		}
		return
	}

	var items []types.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "discarding corrupt persisted cart")
		}
		if err := s.state.Delete(ctx, statestore.KeyCart); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "deleting corrupt persisted cart failed")
		}
		return
	}

	kept := make([]types.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			continue
		}
		item.UnitPrice = types.ClampNonNegative(item.UnitPrice)
		kept = append(kept, item)
	}

	s.mu.Lock()
	s.items = kept
	s.mu.Unlock()
	s.notify()
}

// Add snapshots the price for the selected size and merges the line into the
// cart. An existing (product, size) line gains quantity instead of
// duplicating. Quantities below one are treated as one.
func (s *Store) Add(ctx context.Context, product types.Product, selectedSize string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	unitPrice := catalog.PriceForSize(product, selectedSize)

	s.mu.Lock()
	if idx := s.indexOf(product.ID, selectedSize); idx >= 0 {
		s.items[idx].Quantity += quantity
	} else {
		s.items = append(s.items, types.CartItem{
			ProductID:    product.ID,
			Name:         product.Name,
			Images:       product.Images,
			SelectedSize: selectedSize,
			UnitPrice:    unitPrice,
			Quantity:     quantity,
		})
	}
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// Remove deletes the matching line; absent lines are a no-op.
func (s *Store) Remove(ctx context.Context, productID, selectedSize string) {
	s.mu.Lock()
	idx := s.indexOf(productID, selectedSize)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// SetQuantity clamps quantity at zero; zero removes the line. This is the
// only quantity path that can remove a line.
func (s *Store) SetQuantity(ctx context.Context, productID, selectedSize string, quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		s.Remove(ctx, productID, selectedSize)
		return
	}

	s.mu.Lock()
	idx := s.indexOf(productID, selectedSize)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items[idx].Quantity = quantity
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// Clear empties the cart and drops the session discount. Called after a
// successful order submission.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.discount = types.Discount{}
	s.protection.Enabled = false
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []types.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]types.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the current line count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// SetShippingProtection toggles the flat-fee add-on.
func (s *Store) SetShippingProtection(enabled bool) {
	s.mu.Lock()
	s.protection.Enabled = enabled
	s.mu.Unlock()
	s.notify()
}

// ShippingProtection returns the current protection setting.
func (s *Store) ShippingProtection() types.ShippingProtection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.protection
}

// SetDiscount replaces the active discount. At most one is in effect; there
// is no stacking path.
func (s *Store) SetDiscount(discount types.Discount) {
	s.mu.Lock()
	s.discount = discount
	s.mu.Unlock()
	s.notify()
}

// ClearDiscount resets the discount state; idempotent.
func (s *Store) ClearDiscount() {
	s.SetDiscount(types.Discount{})
}

// Discount returns the active discount state.
func (s *Store) Discount() types.Discount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discount
}

// Subtotal prices the current lines.
func (s *Store) Subtotal() decimal.Decimal {
	return pricing.Subtotal(s.Items())
}

// Total prices the current cart including protection and discount.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	items := make([]types.CartItem, len(s.items))
	copy(items, s.items)
	protection := s.protection
	discount := s.discount
	s.mu.Unlock()
	return pricing.Total(items, protection, discount)
}

func (s *Store) indexOf(productID, selectedSize string) int {
	for i, item := range s.items {
		if item.ProductID == productID && item.SelectedSize == selectedSize {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	if s.state == nil {
		return
	}
	payload, err := json.Marshal(s.Items())
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "encoding cart for persistence failed", err)
		}
		return
	}
	if err := s.state.Set(ctx, statestore.KeyCart, payload); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "key", statestore.KeyCart), "persisting cart failed")
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	count := len(s.items)
	s.mu.Unlock()
	for _, observer := range observers {
		observer(count)
	}
}
