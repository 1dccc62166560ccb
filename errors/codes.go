package errors

// ErrorCode is a machine-readable error code.
type ErrorCode string

const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"

	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"

	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabaseError   ErrorCode = "DATABASE_ERROR"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
	ErrCodeDatabaseError:      true,
	ErrCodeExternalService:    true,
}

// IsRetryableCode reports whether errors with code may succeed on retry.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
