package payments

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/zaimara-studio/storefront/internal/api"
	"github.com/zaimara-studio/storefront/pkg/enums"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/statestore"
	"github.com/zaimara-studio/storefront/pkg/types"
)

type stubBackend struct {
	instructionCalls int
	confirmCalls     int
	order            *types.Order
	err              error
	lastProof        api.PaymentProof
}

func (s *stubBackend) PaymentInstructions(ctx context.Context, orderNumber string) (*types.Order, error) {
	s.instructionCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubBackend) ConfirmPayment(ctx context.Context, orderNumber string, proof api.PaymentProof) (*types.Order, error) {
	s.confirmCalls++
	s.lastProof = proof
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func seedSnapshot(t *testing.T, state statestore.Store, order types.Order) {
	t.Helper()
	payload, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	if err := state.Set(context.Background(), statestore.OrderKey(order.OrderNumber), payload); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
}

func TestInstructionsPrefersLocalSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := statestore.NewMemory()
	seedSnapshot(t, state, types.Order{
		OrderNumber:   "ORD-1001",
		PaymentMethod: enums.PaymentMethodJazzCash,
	})

	backend := &stubBackend{order: &types.Order{OrderNumber: "ORD-1001"}}
	svc := NewService(backend, state, nil)

	order, err := svc.Instructions(ctx, "ORD-1001")
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if order.PaymentMethod != enums.PaymentMethodJazzCash {
		t.Fatalf("payment method = %q", order.PaymentMethod)
	}
	if backend.instructionCalls != 0 {
		t.Fatalf("backend fetched despite local snapshot, %d calls", backend.instructionCalls)
	}
}

func TestInstructionsFallsBackToBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := &stubBackend{order: &types.Order{OrderNumber: "ORD-1002"}}
	svc := NewService(backend, statestore.NewMemory(), nil)

	order, err := svc.Instructions(ctx, "ORD-1002")
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if order.OrderNumber != "ORD-1002" {
		t.Fatalf("order number = %q", order.OrderNumber)
	}
	if backend.instructionCalls != 1 {
		t.Fatalf("backend calls = %d", backend.instructionCalls)
	}
}

func TestInstructionsDiscardsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := statestore.NewMemory()
	if err := state.Set(ctx, statestore.OrderKey("ORD-1003"), []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	backend := &stubBackend{order: &types.Order{OrderNumber: "ORD-1003"}}
	svc := NewService(backend, state, nil)

	if _, err := svc.Instructions(ctx, "ORD-1003"); err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if backend.instructionCalls != 1 {
		t.Fatalf("backend calls = %d", backend.instructionCalls)
	}
	if _, err := state.Get(ctx, statestore.OrderKey("ORD-1003")); err != statestore.ErrNotFound {
		t.Fatalf("corrupt snapshot still present: %v", err)
	}
}

func TestConfirmProofRequiresTransactionID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := &stubBackend{order: &types.Order{}}
	svc := NewService(backend, statestore.NewMemory(), nil)

	_, err := svc.ConfirmProof(ctx, "ORD-2001", api.PaymentProof{TransactionID: "   "})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if backend.confirmCalls != 0 {
		t.Fatalf("backend reached without transaction id")
	}
}

func TestConfirmProofDropsSnapshotOnSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := statestore.NewMemory()
	seedSnapshot(t, state, types.Order{OrderNumber: "ORD-2002"})

	backend := &stubBackend{order: &types.Order{
		OrderNumber:   "ORD-2002",
		PaymentStatus: enums.PaymentStatusPending,
	}}
	svc := NewService(backend, state, nil)

	order, err := svc.ConfirmProof(ctx, "ORD-2002", api.PaymentProof{
		TransactionID:   " TX-778899 ",
		Notes:           "paid via app",
		ReceiptFilename: "receipt.jpg",
		Receipt:         strings.NewReader("fake image bytes"),
	})
	if err != nil {
		t.Fatalf("ConfirmProof: %v", err)
	}
	if order.OrderNumber != "ORD-2002" {
		t.Fatalf("order number = %q", order.OrderNumber)
	}
	if backend.lastProof.TransactionID != "TX-778899" {
		t.Fatalf("transaction id = %q, want trimmed", backend.lastProof.TransactionID)
	}
	if _, err := state.Get(ctx, statestore.OrderKey("ORD-2002")); err != statestore.ErrNotFound {
		t.Fatalf("snapshot not dropped after confirmation: %v", err)
	}
}

func TestConfirmProofKeepsSnapshotOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := statestore.NewMemory()
	seedSnapshot(t, state, types.Order{OrderNumber: "ORD-2003"})

	backend := &stubBackend{err: pkgerrors.New(pkgerrors.CodeDependency, "payment service unavailable")}
	svc := NewService(backend, state, nil)

	_, err := svc.ConfirmProof(ctx, "ORD-2003", api.PaymentProof{TransactionID: "TX-1"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("err = %v", err)
	}
	if _, err := state.Get(ctx, statestore.OrderKey("ORD-2003")); err != nil {
		t.Fatalf("snapshot must survive a failed confirmation: %v", err)
	}
}
