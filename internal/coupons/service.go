package coupons

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/internal/api"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/types"
)

type couponValidator interface {
	ValidateCoupon(ctx context.Context, code string, orderTotal decimal.Decimal) (*api.CouponResolution, error)
}

type discountCart interface {
	Subtotal() decimal.Decimal
	SetDiscount(discount types.Discount)
	ClearDiscount()
	Discount() types.Discount
}

// Service resolves discount codes against the backend and keeps the cart's
// single discount slot in sync.
type Service struct {
	backend couponValidator
	cart    discountCart
}

// NewService builds the coupon service.
func NewService(backend couponValidator, cart discountCart) (*Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("coupon validator required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart required")
	}
	return &Service{backend: backend, cart: cart}, nil
}

// Apply validates code against the current subtotal and installs the resolved
// discount. Applying a new code always replaces the previous one; amounts are
// never stacked. On any failure the discount resets to zero for the entered
// code, so a later retry starts clean.
func (s *Service) Apply(ctx context.Context, code string) (types.Discount, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return s.cart.Discount(), pkgerrors.New(pkgerrors.CodeValidation, "discount code is required")
	}

	resolution, err := s.backend.ValidateCoupon(ctx, trimmed, s.cart.Subtotal())
	if err != nil {
		reset := types.Discount{Code: trimmed}
		s.cart.SetDiscount(reset)
		return reset, err
	}

	discount := types.Discount{
		Code:         trimmed,
		Amount:       types.ClampNonNegative(resolution.DiscountAmount),
		SourceCoupon: resolution.Coupon,
	}
	s.cart.SetDiscount(discount)
	return discount, nil
}

// Remove clears the active discount; idempotent.
func (s *Service) Remove() {
	s.cart.ClearDiscount()
}
