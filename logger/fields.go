package logger

import (
	"context"
	"time"
)

// Standard field keys.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldRequestID = "request_id"
	FieldUsername  = "username"
	FieldTask      = "task"
	FieldTaskID    = "task_id"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// contextFields lists the keys WithContext copies into log lines.
var contextFields = []string{FieldRequestID, FieldTraceID, FieldUsername, FieldTaskID}

type contextKey string

// ContextWithRequestID stores a request ID for WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey(FieldRequestID), id)
}

// ContextWithTraceID stores a trace ID for WithContext.
func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey(FieldTraceID), id)
}

// ContextWithUsername stores the authenticated username for WithContext.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKey(FieldUsername), username)
}

// ContextWithTaskID stores a task ID for WithContext.
func ContextWithTaskID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey(FieldTaskID), id)
}

// Fields builds a field map from alternating key-value pairs.
//
//	log.Info("saved", logger.Fields("title", title, "id", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
