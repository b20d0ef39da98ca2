package context

import (
	"context"

	"github.com/kimlik-dev/kimlik/internal/domain"
)

const contextKeySessionClaims = contextKey("sessionClaims")

// SessionClaimsFromContext extracts the authenticated session claims from the context.
// Returns the claims and true if present, or zero claims and false if not present.
func SessionClaimsFromContext(ctx context.Context) (domain.SessionClaims, bool) {
	claims, ok := ctx.Value(contextKeySessionClaims).(domain.SessionClaims)

	return claims, ok
}

// WithSessionClaims creates a new context carrying the given session claims.
// This context identifies the authenticated user throughout a request.
func WithSessionClaims(ctx context.Context, claims domain.SessionClaims) context.Context {
	return context.WithValue(ctx, contextKeySessionClaims, claims)
}
