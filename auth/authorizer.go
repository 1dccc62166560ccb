package auth

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/mp/auth/credential"
	"github.com/kbukum/mp/auth/jwt"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
)

// Authorizer resolves bearer tokens to registered principals.
type Authorizer struct {
	tokens  TokenParser
	store   credential.Store
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewAuthorizer builds an Authorizer. metrics may be nil.
func NewAuthorizer(tokens TokenParser, store credential.Store, metrics *observability.Metrics) *Authorizer {
	return &Authorizer{
		tokens:  tokens,
		store:   store,
		metrics: metrics,
		log:     logger.WithComponent("auth"),
	}
}

// ResolveCurrentPrincipal returns the username a token asserts. The token
// must verify and its subject must still be registered; anything else is an
// *UnauthorizedError.
func (a *Authorizer) ResolveCurrentPrincipal(ctx context.Context, token string) (string, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAuthResolve)
	defer span.End()

	subject, err := a.tokens.Parse(token)
	if err != nil {
		if !errors.Is(err, jwt.ErrInvalidToken) && !errors.Is(err, jwt.ErrMissingSubject) {
			a.log.WithContext(ctx).WithError(err).Warn("unexpected token parse error")
		}
		a.metrics.RecordAuth(ctx, "resolve", "invalid_token")
		return "", unauthorized(DetailInvalidToken, err)
	}

	if !a.store.Contains(ctx, subject) {
		a.log.WithContext(ctx).Debug("token subject not registered", logger.Fields(logger.FieldUsername, subject))
		a.metrics.RecordAuth(ctx, "resolve", "unknown_subject")
		return "", unauthorized(DetailInvalidCredentials, nil)
	}

	span.SetAttributes(attribute.String(observability.AttrUsername, subject))
	a.metrics.RecordAuth(ctx, "resolve", "success")
	return subject, nil
}
