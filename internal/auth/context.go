package auth

import (
	"context"

	"github.com/taskforge/taskforge/internal/token"
)

type identityContextKey struct{}

// ContextWithIdentity stores the authenticated identity in the context.
func ContextWithIdentity(ctx context.Context, id token.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the authenticated identity. The second
// return is false on requests that never passed the auth gate.
func IdentityFromContext(ctx context.Context) (token.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(token.Identity)
	return id, ok
}
