package payments

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/zaimara-studio/storefront/internal/api"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/logger"
	"github.com/zaimara-studio/storefront/pkg/statestore"
	"github.com/zaimara-studio/storefront/pkg/types"
)

type paymentBackend interface {
	PaymentInstructions(ctx context.Context, orderNumber string) (*types.Order, error)
	ConfirmPayment(ctx context.Context, orderNumber string, proof api.PaymentProof) (*types.Order, error)
}

// Service backs the post-checkout payment page: showing the method-specific
// instructions for a fresh order and submitting the customer's payment proof.
type Service struct {
	backend paymentBackend
	state   statestore.Store
	logg    *logger.Logger
}

// NewService builds the payments service.
func NewService(backend paymentBackend, state statestore.Store, logg *logger.Logger) *Service {
	return &Service{backend: backend, state: state, logg: logg}
}

// Instructions returns the order the payment page renders. The snapshot kept
// at checkout is preferred so the page works immediately after submission;
// when it is missing or unreadable the backend is asked instead.
func (s *Service) Instructions(ctx context.Context, orderNumber string) (*types.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}

	if order := s.snapshot(ctx, orderNumber); order != nil {
		return order, nil
	}
	return s.backend.PaymentInstructions(ctx, orderNumber)
}

// ConfirmProof submits the transaction id and optional receipt for an order.
// The local order snapshot is dropped once the backend accepts the proof; the
// payment page has served its purpose at that point.
func (s *Service) ConfirmProof(ctx context.Context, orderNumber string, proof api.PaymentProof) (*types.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	proof.TransactionID = strings.TrimSpace(proof.TransactionID)
	if proof.TransactionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}

	order, err := s.backend.ConfirmPayment(ctx, orderNumber, proof)
	if err != nil {
		return nil, err
	}

	if s.state != nil {
		if err := s.state.Delete(ctx, statestore.OrderKey(orderNumber)); err != nil && err != statestore.ErrNotFound && s.logg != nil {
			s.logg.Warn(s.logg.WithOrderNumber(ctx, orderNumber), "dropping order snapshot failed")
		}
	}
	return order, nil
}

func (s *Service) snapshot(ctx context.Context, orderNumber string) *types.Order {
	if s.state == nil {
		return nil
	}
	raw, err := s.state.Get(ctx, statestore.OrderKey(orderNumber))
	if err != nil {
		return nil
	}
	var order types.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithOrderNumber(ctx, orderNumber), "discarding corrupt order snapshot")
		}
		if err := s.state.Delete(ctx, statestore.OrderKey(orderNumber)); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "deleting corrupt order snapshot failed")
		}
		return nil
	}
	if order.OrderNumber != orderNumber {
		return nil
	}
	return &order
}
