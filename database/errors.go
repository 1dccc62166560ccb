package database

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/kbukum/mp/errors"
)

// IsBusyError reports whether err is SQLite lock contention that a retry
// may resolve.
func IsBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}

// IsNotFoundError reports whether err is gorm.ErrRecordNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// FromDatabase converts a GORM error into an AppError for resource. id is
// included in not-found details when non-empty.
func FromDatabase(err error, resource, id string) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	switch {
	case IsNotFoundError(err):
		return apperrors.NotFound(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.AlreadyExists(resource).WithCause(err)
	case IsBusyError(err):
		return apperrors.New(apperrors.ErrCodeDatabaseError,
			"Database is temporarily unavailable. Please try again.",
			http.StatusServiceUnavailable).WithCause(err)
	default:
		return apperrors.DatabaseError(err)
	}
}
