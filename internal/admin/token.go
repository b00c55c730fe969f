package admin

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zaimara-studio/storefront/pkg/logger"
	"github.com/zaimara-studio/storefront/pkg/statestore"
)

// TokenStore keeps the back-office bearer token in durable state and hands it
// to the API client. A token whose JWT expiry has already passed is dropped
// locally instead of being sent, so the backend never sees a stale bearer.
type TokenStore struct {
	state statestore.Store
	logg  *logger.Logger
	now   func() time.Time
}

// NewTokenStore builds a token store over state.
func NewTokenStore(state statestore.Store, logg *logger.Logger) *TokenStore {
	return &TokenStore{state: state, logg: logg, now: time.Now}
}

// Token implements the API client's token source. It returns "" when no
// usable token is stored.
func (t *TokenStore) Token(ctx context.Context) (string, error) {
	raw, err := t.state.Get(ctx, statestore.KeyAdminToken)
	if err != nil {
		if err == statestore.ErrNotFound {
			return "", nil
		}
		return "", err
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		t.drop(ctx, "discarding corrupt stored admin token")
		return "", nil
	}
	if token == "" {
		return "", nil
	}
	if t.expired(token) {
		t.drop(ctx, "discarding expired admin token")
		return "", nil
	}
	return token, nil
}

// Save persists a freshly issued token.
func (t *TokenStore) Save(ctx context.Context, token string) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return t.state.Set(ctx, statestore.KeyAdminToken, payload)
}

// Clear removes the stored token. Clearing an empty store is a no-op.
func (t *TokenStore) Clear(ctx context.Context) error {
	if err := t.state.Delete(ctx, statestore.KeyAdminToken); err != nil && err != statestore.ErrNotFound {
		return err
	}
	return nil
}

// expired inspects the token's exp claim without verifying the signature.
// Verification is the backend's job; this only avoids sending a token that
// cannot possibly be accepted. Tokens without a readable exp are sent as-is.
func (t *TokenStore) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(t.now())
}

func (t *TokenStore) drop(ctx context.Context, reason string) {
	if t.logg != nil {
		t.logg.Warn(ctx, reason)
	}
	if err := t.state.Delete(ctx, statestore.KeyAdminToken); err != nil && err != statestore.ErrNotFound && t.logg != nil {
		t.logg.Warn(ctx, "deleting stored admin token failed")
	}
}
