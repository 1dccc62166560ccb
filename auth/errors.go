package auth

import "errors"

// Fixed details carried by UnauthorizedError.
const (
	DetailInvalidToken       = "invalid token"
	DetailInvalidCredentials = "invalid credentials"
	DetailNotAuthenticated   = "not authenticated"
)

var (
	// ErrAlreadyExists is returned by Register for a taken username.
	ErrAlreadyExists = errors.New("auth: username already registered")

	// ErrInvalidInput is returned for an empty username or password.
	ErrInvalidInput = errors.New("auth: username and password are required")

	// ErrUnauthorized matches every *UnauthorizedError via errors.Is.
	ErrUnauthorized = errors.New("auth: unauthorized")
)

// UnauthorizedError is a rejected login or token. Detail is one of the
// Detail* constants and is safe to return to the caller; the cause is not.
type UnauthorizedError struct {
	Detail string
	cause  error
}

func unauthorized(detail string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Detail: detail, cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.cause != nil {
		return "auth: " + e.Detail + ": " + e.cause.Error()
	}
	return "auth: " + e.Detail
}

func (e *UnauthorizedError) Unwrap() error { return e.cause }

func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// UnauthorizedDetail extracts the caller-safe detail from err.
func UnauthorizedDetail(err error) (string, bool) {
	var ue *UnauthorizedError
	if errors.As(err, &ue) {
		return ue.Detail, true
	}
	return "", false
}
