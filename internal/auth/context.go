package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrForbidden is returned by Authorize when the caller lacks every required scope.
var ErrForbidden = errors.New("insufficient scope")

type contextKey struct{}

// WithClaims stores claims on the context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// FromContext retrieves claims stored by WithClaims.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok && claims != nil
}

// Authorize returns the caller's claims when they hold at least one of scopes.
// It fails with ErrMissingToken when no claims are attached and ErrForbidden
// when none of the scopes is granted.
func Authorize(ctx context.Context, scopes ...Scope) (*Claims, error) {
	claims, ok := FromContext(ctx)
	if !ok {
		return nil, ErrMissingToken
	}
	if len(scopes) > 0 && !claims.Scopes.HasAny(scopes...) {
		return nil, fmt.Errorf("%w: requires %s", ErrForbidden, NewScopeSet(scopes...))
	}
	return claims, nil
}
