// Package item stores named items with an optional description.
//
// Repository talks to the items table through GORM; Service adds input
// validation, tracing and AppError mapping for the HTTP layer.
package item
