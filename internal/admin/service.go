package admin

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/zaimara-studio/storefront/internal/api"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/logger"
	"github.com/zaimara-studio/storefront/pkg/types"
)

type adminBackend interface {
	AdminLogin(ctx context.Context, email, password string) (*api.AdminSession, error)
	AdminVerify(ctx context.Context) (*api.AdminInfo, error)
	AdminDashboard(ctx context.Context) (*api.DashboardStats, error)
	AdminListOrders(ctx context.Context, filters api.AdminOrderFilters) (*api.AdminOrderList, error)
	AdminUpdateOrder(ctx context.Context, orderID string, patch api.AdminOrderPatch) (*types.Order, error)
	AdminConfirmPayment(ctx context.Context, orderID, adminNotes string) (*types.Order, error)
}

// Service is the back-office session and order management layer. It owns the
// stored bearer token through TokenStore; every other call is a thin authed
// pass-through to the backend.
type Service struct {
	backend adminBackend
	tokens  *TokenStore
	logg    *logger.Logger
}

// NewService builds the admin service.
func NewService(backend adminBackend, tokens *TokenStore, logg *logger.Logger) *Service {
	return &Service{backend: backend, tokens: tokens, logg: logg}
}

// Login exchanges credentials for a session and persists its token.
func (s *Service) Login(ctx context.Context, email, password string) (*api.AdminSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	session, err := s.backend.AdminLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, session.Token); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting admin token")
	}
	return session, nil
}

// Logout drops the stored token. It never calls the backend; the token is
// bearer-only and forgetting it ends the session.
func (s *Service) Logout(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

// Verify asks the backend whether the stored token is still good. An
// unauthorized answer clears the token so the next call fails fast locally.
func (s *Service) Verify(ctx context.Context) (*api.AdminInfo, error) {
	info, err := s.backend.AdminVerify(ctx)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			if clearErr := s.tokens.Clear(ctx); clearErr != nil && s.logg != nil {
				s.logg.Warn(ctx, "clearing rejected admin token failed")
			}
		}
		return nil, err
	}
	return info, nil
}

// Dashboard fetches the back-office aggregate stats.
func (s *Service) Dashboard(ctx context.Context) (*api.DashboardStats, error) {
	return s.backend.AdminDashboard(ctx)
}

// ListOrders returns the filtered order page.
func (s *Service) ListOrders(ctx context.Context, filters api.AdminOrderFilters) (*api.AdminOrderList, error) {
	if filters.OrderStatus != nil && !filters.OrderStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", *filters.OrderStatus))
	}
	if filters.PaymentStatus != nil && !filters.PaymentStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment status %q", *filters.PaymentStatus))
	}
	return s.backend.AdminListOrders(ctx, filters)
}

// UpdateOrder patches one order. The two status axes move independently; a
// patch naming neither axis and no notes is rejected before the network.
func (s *Service) UpdateOrder(ctx context.Context, orderID string, patch api.AdminOrderPatch) (*types.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if patch.OrderStatus == nil && patch.PaymentStatus == nil && patch.Notes == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}
	if patch.OrderStatus != nil && !patch.OrderStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", *patch.OrderStatus))
	}
	if patch.PaymentStatus != nil && !patch.PaymentStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment status %q", *patch.PaymentStatus))
	}
	return s.backend.AdminUpdateOrder(ctx, orderID, patch)
}

// BulkResult summarizes a bulk order update.
type BulkResult struct {
	Updated int
	Failed  int
}

// BulkUpdateOrders applies the same patch to each order independently. One
// failing order never blocks the rest; failures are logged in aggregate and
// only the counts are returned.
func (s *Service) BulkUpdateOrders(ctx context.Context, orderIDs []string, patch api.AdminOrderPatch) (BulkResult, error) {
	if len(orderIDs) == 0 {
		return BulkResult{}, pkgerrors.New(pkgerrors.CodeValidation, "no orders selected")
	}

	var result BulkResult
	var errs error
	for _, orderID := range orderIDs {
		if _, err := s.UpdateOrder(ctx, orderID, patch); err != nil {
			result.Failed++
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", orderID, err))
			continue
		}
		result.Updated++
	}

	if errs != nil && s.logg != nil {
		logCtx := s.logg.WithField(ctx, "failed", result.Failed)
		s.logg.Error(logCtx, "bulk order update had failures", errs)
	}
	return result, nil
}

// ConfirmPayment marks an order's payment verified.
func (s *Service) ConfirmPayment(ctx context.Context, orderID, adminNotes string) (*types.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return s.backend.AdminConfirmPayment(ctx, orderID, adminNotes)
}
