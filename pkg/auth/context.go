package auth

import (
	"context"
	"errors"
)

// Identity is the authenticated caller as handed to us by the surrounding
// application. This layer never authenticates anyone itself; it trusts the
// identity established at the session boundary.
type Identity struct {
	ID          string
	DisplayName string
	Email       string
}

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// ErrNoIdentity is returned when no Identity exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrNoIdentity = errors.New("no identity in context")

// IdentityFromCtx extracts the authenticated caller from the request context.
// Returns ErrNoIdentity for unauthenticated requests.
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.ID == "" {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

// WithIdentity returns a new context with the given Identity attached.
// Used by the session middleware after validating the session cookie.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
