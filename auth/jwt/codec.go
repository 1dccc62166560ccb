// Package jwt issues and parses signed, time-limited bearer tokens.
//
// A token carries the principal in "sub" and an absolute expiry in "exp".
// Nothing is stored server-side: a token is valid while its signature
// verifies and its expiry lies in the future.
//
//	codec, err := jwt.NewCodec(&jwt.Config{Secret: "s3cret"})
//	token, err := codec.Issue("alice")
//	subject, err := codec.Parse(token)
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers bad signatures, malformed structure, an
	// unexpected algorithm and missing or past expiry.
	ErrInvalidToken = errors.New("jwt: invalid token")

	// ErrMissingSubject is returned when a token verifies but has no "sub".
	ErrMissingSubject = errors.New("jwt: missing subject")
)

// Codec signs and verifies tokens with a single process-wide key.
type Codec struct {
	cfg Config
	now func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec validates cfg and returns a Codec.
func NewCodec(cfg *Config, opts ...Option) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	c := &Codec{cfg: *cfg, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for subject expiring after ttl, or after the
// configured AccessTokenTTL when ttl is omitted. A zero or negative ttl
// yields a token that is already expired.
func (c *Codec) Issue(subject string, ttl ...time.Duration) (string, error) {
	lifetime := c.cfg.AccessTokenTTL
	if len(ttl) > 0 {
		lifetime = ttl[0]
	}

	claims := gojwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    c.cfg.Issuer,
		ExpiresAt: gojwt.NewNumericDate(c.now().Add(lifetime)),
	}
	token := gojwt.NewWithClaims(c.cfg.signingMethod(), claims)
	signed, err := token.SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns its subject.
func (c *Codec) Parse(token string) (string, error) {
	claims := &gojwt.RegisteredClaims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, c.keyFunc, c.parserOptions()...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}

// TTL returns the default token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.cfg.AccessTokenTTL
}

func (c *Codec) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := c.cfg.signingMethod()
	if token.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(c.cfg.Secret), nil
}

func (c *Codec) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{c.cfg.signingMethod().Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(c.now),
	}
	if c.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(c.cfg.Issuer))
	}
	return opts
}
