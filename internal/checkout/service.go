package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/pkg/enums"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/logger"
	"github.com/zaimara-studio/storefront/pkg/statestore"
	"github.com/zaimara-studio/storefront/pkg/types"
	"github.com/zaimara-studio/storefront/pkg/validate"
)

// ErrConfirmationDeclined is returned when the customer backs out of the
// cash-on-delivery confirmation. No order request has been sent.
var ErrConfirmationDeclined = errors.New("cash-on-delivery confirmation declined")

// State is the phase of the current checkout attempt.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateConfirming State = "confirming"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Confirmer is the human-in-the-loop acknowledgement shown before a
// cash-on-delivery order is sent. Online methods never pass through it.
type Confirmer interface {
	ConfirmCOD(ctx context.Context, draft types.OrderDraft) (bool, error)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, draft types.OrderDraft) (*types.Order, error)
}

type checkoutCart interface {
	Items() []types.CartItem
	ShippingProtection() types.ShippingProtection
	Discount() types.Discount
	Subtotal() decimal.Decimal
	Total() decimal.Decimal
	Clear(ctx context.Context)
}

// Input carries everything the customer supplies on the checkout page.
type Input struct {
	CustomerInfo  types.CustomerInfo
	PaymentMethod enums.PaymentMethod
	Notes         string
}

// Service drives a single checkout attempt from cart to created order. Only
// one attempt may be in flight at a time; the cart is cleared exactly when
// the backend accepts the order and never on failure.
type Service struct {
	mu       sync.Mutex
	state    State
	inFlight bool

	cart      checkoutCart
	backend   orderCreator
	confirmer Confirmer
	store     statestore.Store
	logg      *logger.Logger
}

// NewService builds the checkout orchestrator.
func NewService(cart checkoutCart, backend orderCreator, confirmer Confirmer, store statestore.Store, logg *logger.Logger) (*Service, error) {
	if cart == nil {
		return nil, fmt.Errorf("cart required")
	}
	if backend == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if confirmer == nil {
		return nil, fmt.Errorf("confirmer required")
	}
	return &Service{
		state:     StateIdle,
		cart:      cart,
		backend:   backend,
		confirmer: confirmer,
		store:     store,
		logg:      logg,
	}, nil
}

// State reports the phase of the current or most recent attempt.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit runs one checkout attempt. A second call while one is in flight is
// rejected so the UI can simply disable its button. On failure the cart is
// left untouched and the error carries the backend's message verbatim.
func (s *Service) Submit(ctx context.Context, input Input) (*types.Order, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	order, err := s.run(ctx, input)
	s.finish(err)
	return order, err
}

func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return pkgerrors.New(pkgerrors.CodeConflict, "a checkout is already in progress")
	}
	s.inFlight = true
	s.state = StateValidating
	return nil
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Service) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	switch {
	case err == nil:
		s.state = StateSucceeded
	case errors.Is(err, ErrConfirmationDeclined):
		// A declined confirmation is a cancelled attempt, not a failure.
		s.state = StateIdle
	default:
		s.state = StateFailed
	}
}

func (s *Service) run(ctx context.Context, input Input) (*types.Order, error) {
	draft, err := s.buildDraft(input)
	if err != nil {
		return nil, err
	}

	if input.PaymentMethod.IsCOD() {
		s.setState(StateConfirming)
		confirmed, err := s.confirmer.ConfirmCOD(ctx, *draft)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cash-on-delivery confirmation")
		}
		if !confirmed {
			return nil, ErrConfirmationDeclined
		}
	}

	s.setState(StateSubmitting)
	order, err := s.backend.CreateOrder(ctx, *draft)
	if err != nil {
		return nil, err
	}

	s.snapshotOrder(ctx, order)
	s.cart.Clear(ctx)

	if s.logg != nil {
		logCtx := s.logg.WithOrderNumber(ctx, order.OrderNumber)
		s.logg.Info(logCtx, "order submitted")
	}
	return order, nil
}

func (s *Service) buildDraft(input Input) (*types.OrderDraft, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}
	if err := validate.Struct(input.CustomerInfo); err != nil {
		return nil, err
	}

	lines := make([]types.OrderLineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, types.OrderLineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.SelectedSize,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		})
	}

	return &types.OrderDraft{
		CustomerInfo:       input.CustomerInfo,
		Items:              lines,
		Subtotal:           s.cart.Subtotal(),
		ShippingProtection: s.cart.ShippingProtection(),
		DiscountCode:       s.cart.Discount().Code,
		Total:              s.cart.Total(),
		PaymentMethod:      input.PaymentMethod,
		Notes:              input.Notes,
	}, nil
}

// snapshotOrder retains the created order locally so the payment page that
// follows does not need to refetch it. Best-effort only.
func (s *Service) snapshotOrder(ctx context.Context, order *types.Order) {
	if s.store == nil || order == nil || order.OrderNumber == "" {
		return
	}
	payload, err := json.Marshal(order)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "encoding order snapshot failed", err)
		}
		return
	}
	if err := s.store.Set(ctx, statestore.OrderKey(order.OrderNumber), payload); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithOrderNumber(ctx, order.OrderNumber), "persisting order snapshot failed")
	}
}
