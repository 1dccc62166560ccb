package errors

import (
	"fmt"
	"net/http"
)

// AppError is the error type the HTTP layer renders.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is shown to the client.
	Message string `json:"message"`
	// Retryable tells the client whether repeating the request may help.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the response status for this error.
	HTTPStatus int `json:"-"`
	// Details carries extra client-visible context.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. Never rendered.
	Cause error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail entry and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithStatus overrides the HTTP status and returns the receiver.
func (e *AppError) WithStatus(status int) *AppError {
	e.HTTPStatus = status
	return e
}

// New creates an AppError; retryability follows the code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// NotFound reports a missing resource, e.g. NotFound("Item", "3") renders
// "Item not found".
func NotFound(resource, id string) *AppError {
	err := New(ErrCodeNotFound, resource+" not found", http.StatusNotFound)
	if id != "" {
		err.WithDetail("id", id)
	}
	return err
}

// AlreadyExists reports a uniqueness conflict on resource.
func AlreadyExists(resource string) *AppError {
	return New(ErrCodeAlreadyExists, resource+" already exists", http.StatusConflict)
}

// InvalidInput reports a malformed or missing request field.
func InvalidInput(field, reason string) *AppError {
	err := New(ErrCodeInvalidInput, fmt.Sprintf("Invalid input: %s", reason), http.StatusBadRequest)
	if field != "" {
		err.WithDetail("field", field)
	}
	return err
}

// Validation reports struct validation failures.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// Unauthorized reports a failed authentication. The reason is shown as is.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "not authenticated"
	}
	return New(ErrCodeUnauthorized, reason, http.StatusUnauthorized)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.", http.StatusInternalServerError).WithCause(cause)
}

// DatabaseError wraps a storage failure.
func DatabaseError(cause error) *AppError {
	return New(ErrCodeDatabaseError, "A database error occurred. Please try again.", http.StatusInternalServerError).WithCause(cause)
}

// ServiceUnavailable reports a dependency that cannot serve right now.
func ServiceUnavailable(service string) *AppError {
	return New(ErrCodeServiceUnavailable, fmt.Sprintf("The %s is temporarily unavailable.", service), http.StatusServiceUnavailable).
		WithDetail("service", service)
}

// ExternalServiceError wraps a failure of a remote dependency.
func ExternalServiceError(service string, cause error) *AppError {
	return New(ErrCodeExternalService, fmt.Sprintf("The %s service returned an error.", service), http.StatusBadGateway).
		WithDetail("service", service).
		WithCause(cause)
}

// Timeout reports an operation that exceeded its deadline.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, "The operation timed out.", http.StatusGatewayTimeout).
		WithDetail("operation", operation)
}
