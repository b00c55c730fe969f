package statestore

import (
	"context"
	"errors"
	"testing"
)

func TestOrderKey(t *testing.T) {
	t.Parallel()

	if got := OrderKey("ORD-123"); got != "order_ORD-123" {
		t.Fatalf("unexpected order key: %q", got)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Get(ctx, KeyCart); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, KeyCart, []byte(`[]`)); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	value, err := store.Get(ctx, KeyCart)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(value) != `[]` {
		t.Fatalf("unexpected value: %s", value)
	}

	// Mutating the returned slice must not leak into the store.
	value[0] = 'x'
	again, err := store.Get(ctx, KeyCart)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(again) != `[]` {
		t.Fatalf("stored value was mutated: %s", again)
	}

	if err := store.Delete(ctx, KeyCart); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := store.Get(ctx, KeyCart); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	key := OrderKey("ORD-42")
	if err := store.Set(ctx, key, []byte(`{"orderNumber":"ORD-42"}`)); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	value, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(value) != `{"orderNumber":"ORD-42"}` {
		t.Fatalf("unexpected value: %s", value)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete must be idempotent: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileSanitizesHostileKeys(t *testing.T) {
	t.Parallel()

	store, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	key := "order_../../etc/passwd"
	if err := store.Set(ctx, key, []byte(`{}`)); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	value, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(value) != `{}` {
		t.Fatalf("unexpected value: %s", value)
	}
}

func TestFileRequiresDir(t *testing.T) {
	t.Parallel()

	if _, err := NewFile("  "); err == nil {
		t.Fatal("expected error for blank directory")
	}
}
