package auth

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/mp/auth/credential"
	"github.com/kbukum/mp/auth/password"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
)

// Service enrolls and authenticates principals.
type Service struct {
	store   credential.Store
	hasher  password.Hasher
	tokens  TokenIssuer
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewService wires the registration/login flow. metrics may be nil.
func NewService(store credential.Store, hasher password.Hasher, tokens TokenIssuer, metrics *observability.Metrics) *Service {
	return &Service{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		metrics: metrics,
		log:     logger.WithComponent("auth"),
	}
}

// Register enrolls username. It fails with ErrAlreadyExists when the name
// is taken.
func (s *Service) Register(ctx context.Context, username, pw string) (Principal, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAuthRegister)
	defer span.End()
	span.SetAttributes(attribute.String(observability.AttrUsername, username))

	if username == "" || pw == "" {
		return Principal{}, ErrInvalidInput
	}
	if s.store.Contains(ctx, username) {
		s.metrics.RecordAuth(ctx, "register", "conflict")
		return Principal{}, ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(pw)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return Principal{}, fmt.Errorf("auth: hash password: %w", err)
	}

	// Contains above is a fast path; PutIfAbsent settles concurrent races.
	if !s.store.PutIfAbsent(ctx, username, hash) {
		s.metrics.RecordAuth(ctx, "register", "conflict")
		return Principal{}, ErrAlreadyExists
	}

	s.metrics.RecordAuth(ctx, "register", "success")
	s.log.WithContext(ctx).Info("principal registered", logger.Fields(logger.FieldUsername, username))
	return Principal{Username: username}, nil
}

// Login checks the password and issues a bearer token. Unknown users and
// wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, username, pw string) (Token, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAuthLogin)
	defer span.End()
	span.SetAttributes(attribute.String(observability.AttrUsername, username))

	hash, ok := s.store.Get(ctx, username)
	if !ok {
		s.metrics.RecordAuth(ctx, "login", "failure")
		return Token{}, unauthorized(DetailInvalidCredentials, nil)
	}

	match, err := s.hasher.Verify(pw, hash)
	if err != nil {
		if errors.Is(err, password.ErrMalformedCredential) {
			s.log.WithContext(ctx).WithError(err).Warn("stored credential is malformed",
				logger.Fields(logger.FieldUsername, username))
		}
		s.metrics.RecordAuth(ctx, "login", "failure")
		return Token{}, unauthorized(DetailInvalidCredentials, err)
	}
	if !match {
		s.metrics.RecordAuth(ctx, "login", "failure")
		return Token{}, unauthorized(DetailInvalidCredentials, nil)
	}

	access, err := s.tokens.Issue(username)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return Token{}, fmt.Errorf("auth: issue token: %w", err)
	}

	s.metrics.RecordAuth(ctx, "login", "success")
	s.log.WithContext(ctx).Info("login succeeded", logger.Fields(logger.FieldUsername, username))
	return Token{AccessToken: access, TokenType: TokenType}, nil
}
