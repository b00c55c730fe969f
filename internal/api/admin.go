package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/pkg/enums"
	"github.com/zaimara-studio/storefront/pkg/types"
)

// AdminSession is the result of a successful back-office login.
type AdminSession struct {
	Token string    `json:"token"`
	Admin AdminInfo `json:"admin"`
}

// AdminInfo identifies the authenticated back-office user.
type AdminInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// AdminLogin exchanges credentials for a bearer token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*AdminSession, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out AdminSession
	err := c.do(ctx, request{
		operation: "admin_login",
		method:    http.MethodPost,
		path:      "auth/admin/login",
		body:      payload,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminVerify checks that the stored token is still accepted by the backend.
func (c *Client) AdminVerify(ctx context.Context) (*AdminInfo, error) {
	var out struct {
		Admin AdminInfo `json:"admin"`
	}
	err := c.do(ctx, request{
		operation: "admin_verify",
		method:    http.MethodGet,
		path:      "auth/admin/verify",
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Admin, nil
}

// DashboardStats aggregates the back-office landing numbers.
type DashboardStats struct {
	TotalOrders    int             `json:"totalOrders"`
	PendingOrders  int             `json:"pendingOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalProducts  int             `json:"totalProducts"`
	PendingReviews int             `json:"pendingReviews"`
}

// AdminDashboard fetches aggregate stats.
func (c *Client) AdminDashboard(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	err := c.do(ctx, request{
		operation: "admin_dashboard",
		method:    http.MethodGet,
		path:      "admin/dashboard",
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminOrderFilters narrow the back-office order list.
type AdminOrderFilters struct {
	OrderStatus   *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	Search        string
	Page          int
	Limit         int
}

// AdminOrderList wraps the filtered order page.
type AdminOrderList struct {
	Orders []types.Order `json:"orders"`
	Total  int           `json:"total"`
}

// AdminListOrders returns the filtered back-office order list.
func (c *Client) AdminListOrders(ctx context.Context, filters AdminOrderFilters) (*AdminOrderList, error) {
	query := url.Values{}
	if filters.OrderStatus != nil {
		query.Set("orderStatus", filters.OrderStatus.String())
	}
	if filters.PaymentStatus != nil {
		query.Set("paymentStatus", filters.PaymentStatus.String())
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var out AdminOrderList
	err := c.do(ctx, request{
		operation: "admin_list_orders",
		method:    http.MethodGet,
		path:      "admin/orders",
		query:     query,
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminOrderPatch updates either status axis independently, plus free-text notes.
type AdminOrderPatch struct {
	OrderStatus   *enums.OrderStatus   `json:"orderStatus,omitempty"`
	PaymentStatus *enums.PaymentStatus `json:"paymentStatus,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
}

// AdminUpdateOrder applies a status patch to one order.
func (c *Client) AdminUpdateOrder(ctx context.Context, orderID string, patch AdminOrderPatch) (*types.Order, error) {
	var out orderEnvelope
	err := c.do(ctx, request{
		operation: "admin_update_order",
		method:    http.MethodPut,
		path:      fmt.Sprintf("admin/orders/%s", url.PathEscape(orderID)),
		body:      patch,
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Order, nil
}
