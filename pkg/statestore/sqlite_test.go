package statestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLite {
	t.Helper()

	store, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := setupSQLiteStore(t)

	_, err := store.Get(ctx, KeyCart)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyCart, []byte(`[{"productId":"p1"}]`)))
	value, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1"}]`, string(value))

	// Save upserts on the key.
	require.NoError(t, store.Set(ctx, KeyCart, []byte(`[]`)))
	value, err = store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))

	require.NoError(t, store.Delete(ctx, KeyCart))
	_, err = store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteKeysAreIndependent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := setupSQLiteStore(t)

	require.NoError(t, store.Set(ctx, OrderKey("ORD-1"), []byte(`{"orderNumber":"ORD-1"}`)))
	require.NoError(t, store.Set(ctx, OrderKey("ORD-2"), []byte(`{"orderNumber":"ORD-2"}`)))

	require.NoError(t, store.Delete(ctx, OrderKey("ORD-1")))

	_, err := store.Get(ctx, OrderKey("ORD-1"))
	assert.ErrorIs(t, err, ErrNotFound)

	value, err := store.Get(ctx, OrderKey("ORD-2"))
	require.NoError(t, err)
	assert.Contains(t, string(value), "ORD-2")
}

func TestSQLiteDeleteMissingKeyIsNoop(t *testing.T) {
	t.Parallel()

	store := setupSQLiteStore(t)
	assert.NoError(t, store.Delete(context.Background(), "never_set"))
}

func TestSQLiteRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := NewSQLite("")
	assert.Error(t, err)
}
