package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/zaimara-studio/storefront/pkg/types"
)

type orderEnvelope struct {
	Order types.Order `json:"order"`
}

// CreateOrder posts a priced order draft and returns the server-owned order.
func (c *Client) CreateOrder(ctx context.Context, draft types.OrderDraft) (*types.Order, error) {
	var out orderEnvelope
	err := c.do(ctx, request{
		operation: "create_order",
		method:    http.MethodPost,
		path:      "orders",
		body:      draft,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// TrackOrder looks an order up by its public tracking pair. Both fields are
// required by the backend; a miss on either comes back as a plain not-found.
func (c *Client) TrackOrder(ctx context.Context, orderNumber, email string) (*types.Order, error) {
	query := url.Values{}
	query.Set("email", email)

	var out orderEnvelope
	err := c.do(ctx, request{
		operation: "track_order",
		method:    http.MethodGet,
		path:      fmt.Sprintf("orders/track/%s", url.PathEscape(orderNumber)),
		query:     query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Order, nil
}
