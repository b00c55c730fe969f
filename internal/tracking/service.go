package tracking

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/zaimara-studio/storefront/pkg/enums"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/logger"
	"github.com/zaimara-studio/storefront/pkg/statestore"
	"github.com/zaimara-studio/storefront/pkg/types"
)

type orderTracker interface {
	TrackOrder(ctx context.Context, orderNumber, email string) (*types.Order, error)
}

// Service looks orders up by their public tracking pair and remembers the
// last email that produced a hit, so the tracking form can prefill it.
type Service struct {
	backend orderTracker
	state   statestore.Store
	logg    *logger.Logger
}

// NewService builds the tracking service.
func NewService(backend orderTracker, state statestore.Store, logg *logger.Logger) *Service {
	return &Service{backend: backend, state: state, logg: logg}
}

// Track fetches an order by number and email. A successful lookup caches the
// email; a not-found stays deliberately opaque about which half was wrong.
func (s *Service) Track(ctx context.Context, orderNumber, email string) (*types.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	email = strings.TrimSpace(email)
	if orderNumber == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number and email are required")
	}

	order, err := s.backend.TrackOrder(ctx, orderNumber, email)
	if err != nil {
		return nil, err
	}

	s.cacheEmail(ctx, email)
	return order, nil
}

// CachedEmail returns the email from the last successful lookup, or "" when
// none has been cached.
func (s *Service) CachedEmail(ctx context.Context) string {
	if s.state == nil {
		return ""
	}
	raw, err := s.state.Get(ctx, statestore.KeyTrackingEmail)
	if err != nil {
		return ""
	}
	var email string
	if err := json.Unmarshal(raw, &email); err != nil {
		return ""
	}
	return email
}

func (s *Service) cacheEmail(ctx context.Context, email string) {
	if s.state == nil {
		return
	}
	payload, err := json.Marshal(email)
	if err != nil {
		return
	}
	if err := s.state.Set(ctx, statestore.KeyTrackingEmail, payload); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "caching tracking email failed")
	}
}

// Step is one stage on the tracking progress bar.
type Step struct {
	Status  enums.OrderStatus
	Label   string
	Reached bool
	Current bool
}

var progressStages = []struct {
	status enums.OrderStatus
	label  string
}{
	{enums.OrderStatusProcessing, "Processing"},
	{enums.OrderStatusShipped, "Shipped"},
	{enums.OrderStatusEnroute, "En Route"},
	{enums.OrderStatusDelivered, "Delivered"},
}

// Progress lays the order's status out on the four-stage tracking bar.
// A confirmed order still shows as processing; a cancelled order reaches no
// stage at all.
func Progress(order *types.Order) []Step {
	steps := make([]Step, len(progressStages))
	reachedIdx := stageIndex(order.OrderStatus)
	for i, stage := range progressStages {
		steps[i] = Step{
			Status:  stage.status,
			Label:   stage.label,
			Reached: reachedIdx >= i,
			Current: reachedIdx == i,
		}
	}
	return steps
}

func stageIndex(status enums.OrderStatus) int {
	switch status {
	case enums.OrderStatusProcessing, enums.OrderStatusConfirmed:
		return 0
	case enums.OrderStatusShipped:
		return 1
	case enums.OrderStatusEnroute:
		return 2
	case enums.OrderStatusDelivered:
		return 3
	}
	return -1
}
