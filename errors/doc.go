// Package errors defines AppError, the structured error the HTTP layer
// renders as {"error": {code, message, retryable, details}}.
//
// Domain packages return their own sentinel errors; handlers translate
// them into AppError values with the right status.
package errors
