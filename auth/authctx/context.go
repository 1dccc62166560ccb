// Package authctx carries the authenticated principal through a request
// context.
//
//	ctx = authctx.WithPrincipal(ctx, "alice")
//	username, ok := authctx.Principal(ctx)
package authctx

import (
	"context"
	"errors"
)

type contextKey struct{}

var principalKey = contextKey{}

// ErrNoPrincipal is returned when the context carries no principal.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// WithPrincipal stores the authenticated username in ctx.
func WithPrincipal(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, principalKey, username)
}

// Principal returns the username stored by WithPrincipal.
func Principal(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(principalKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// PrincipalOrError is Principal with ErrNoPrincipal for a missing value.
func PrincipalOrError(ctx context.Context) (string, error) {
	username, ok := Principal(ctx)
	if !ok {
		return "", ErrNoPrincipal
	}
	return username, nil
}
