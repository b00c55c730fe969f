package types

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/pkg/enums"
)

// OrderLineItem is a frozen copy of one cart line at submission time. Catalog
// changes after submission never alter it.
type OrderLineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// ShippingProtection is the optional flat-fee add-on.
type ShippingProtection struct {
	Enabled bool            `json:"enabled"`
	Cost    decimal.Decimal `json:"cost"`
}

// Discount holds the single resolved discount applied to a cart. Amount is an
// absolute currency value already resolved by the backend; the client never
// evaluates percentage rules itself.
type Discount struct {
	Code         string          `json:"code,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	SourceCoupon *Coupon         `json:"sourceCoupon,omitempty"`
}

// Active reports whether a resolved discount is in effect.
func (d Discount) Active() bool {
	return d.Code != "" && d.Amount.IsPositive()
}

// Coupon mirrors the backend coupon record returned by validation.
type Coupon struct {
	ID            string          `json:"id,omitempty"`
	Code          string          `json:"code"`
	Type          string          `json:"type,omitempty"`
	Value         decimal.Decimal `json:"value,omitempty"`
	MinOrderTotal decimal.Decimal `json:"minOrderTotal,omitempty"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
}

// PaymentDetails appears on an order once a payment proof has been submitted.
type PaymentDetails struct {
	TransactionID      string     `json:"transactionId,omitempty"`
	ReceiptImage       string     `json:"receiptImage,omitempty"`
	PaymentConfirmedAt *time.Time `json:"paymentConfirmedAt,omitempty"`
	AdminNotes         string     `json:"adminNotes,omitempty"`
}

// OrderDraft is the payload posted to create an order.
type OrderDraft struct {
	CustomerInfo       CustomerInfo        `json:"customerInfo"`
	Items              []OrderLineItem     `json:"items"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	ShippingProtection ShippingProtection  `json:"shippingProtection"`
	DiscountCode       string              `json:"discountCode,omitempty"`
	Total              decimal.Decimal     `json:"total"`
	PaymentMethod      enums.PaymentMethod `json:"paymentMethod"`
	Notes              string              `json:"notes,omitempty"`
}

// Order is the read-only projection of a server-owned order.
type Order struct {
	OrderNumber        string              `json:"orderNumber"`
	CustomerInfo       CustomerInfo        `json:"customerInfo"`
	Items              []OrderLineItem     `json:"items"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	ShippingProtection ShippingProtection  `json:"shippingProtection"`
	DiscountCode       string              `json:"discountCode,omitempty"`
	Total              decimal.Decimal     `json:"total"`
	PaymentMethod      enums.PaymentMethod `json:"paymentMethod"`
	OrderStatus        enums.OrderStatus   `json:"orderStatus"`
	PaymentStatus      enums.PaymentStatus `json:"paymentStatus"`
	PaymentDetails     *PaymentDetails     `json:"paymentDetails,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt,omitempty"`
}

// Review is a product review record.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Images    []Image   `json:"images,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}
