// Package password hashes and verifies user passwords.
//
// Two algorithms are available: bcrypt (the default) and argon2id. Both
// embed a random salt and their cost parameters in the encoded hash, so
// hashing the same password twice gives different strings that both
// verify.
//
//	h := password.NewHasher(password.Config{})
//	encoded, err := h.Hash("pw1")
//	ok, err := h.Verify("pw1", encoded)
package password

import (
	"crypto/rand"
	"errors"
	"io"
)

var (
	// ErrMalformedCredential is returned by Verify when the stored hash
	// cannot be decoded.
	ErrMalformedCredential = errors.New("password: malformed credential")

	// ErrEmptyPassword is returned by Hash for an empty password.
	ErrEmptyPassword = errors.New("password: empty password")
)

// Hasher hashes passwords and checks them against stored hashes.
type Hasher interface {
	// Hash returns a salted, encoded hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A mismatch is
	// (false, nil); an undecodable hash is ErrMalformedCredential.
	Verify(password, encoded string) (bool, error)
}

func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
