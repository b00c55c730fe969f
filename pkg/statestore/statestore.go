package statestore

import (
	"context"
	"errors"
	"fmt"
)

// Well-known keys persisted by the client. Order snapshots are keyed per order
// number via OrderKey.
const (
	KeyCart          = "cart"
	KeyTrackingEmail = "tracking_email"
	KeyAdminToken    = "admin_token"

	orderKeyPrefix = "order_"
)

// ErrNotFound is returned when a key has no persisted value.
var ErrNotFound = errors.New("statestore: key not found")

// Store is the durable key-value state shared across client sessions. Values
// are raw JSON documents; callers own encoding. Implementations must treat a
// missing key as ErrNotFound, never as an empty value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// OrderKey builds the snapshot key for a submitted order.
func OrderKey(orderNumber string) string {
	return fmt.Sprintf("%s%s", orderKeyPrefix, orderNumber)
}
