package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements Hasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// BcryptOption configures a BcryptHasher.
type BcryptOption func(*BcryptHasher)

// WithCost sets the bcrypt cost. Values outside bcrypt's range are ignored.
func WithCost(cost int) BcryptOption {
	return func(h *BcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// NewBcryptHasher returns a bcrypt hasher with cost 12 unless overridden.
func NewBcryptHasher(opts ...BcryptOption) *BcryptHasher {
	h := &BcryptHasher{cost: 12}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash fails for passwords longer than 72 bytes.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: bcrypt hash: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, encoded string) (bool, error) {
	if _, err := bcrypt.Cost([]byte(encoded)); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
}
