package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/types"
)

// CouponResolution is the backend's answer to a coupon validation: an already
// resolved absolute discount amount plus the source coupon record.
type CouponResolution struct {
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Coupon         *types.Coupon   `json:"coupon"`
}

// ValidateCoupon asks the backend to resolve a code against the current order
// total. Rejections come back as CodeCouponRejected so callers can reset the
// discount without treating it as a transport failure.
func (c *Client) ValidateCoupon(ctx context.Context, code string, orderTotal decimal.Decimal) (*CouponResolution, error) {
	payload := struct {
		Code       string          `json:"code"`
		OrderTotal decimal.Decimal `json:"orderTotal"`
	}{Code: code, OrderTotal: orderTotal}

	var out CouponResolution
	err := c.do(ctx, request{
		operation: "validate_coupon",
		method:    http.MethodPost,
		path:      "coupons/validate",
		body:      payload,
	}, &out)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			switch typed.Code() {
			case pkgerrors.CodeValidation, pkgerrors.CodeNotFound, pkgerrors.CodeConflict:
				return nil, pkgerrors.New(pkgerrors.CodeCouponRejected, typed.Message())
			}
		}
		return nil, err
	}
	return &out, nil
}
