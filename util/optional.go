package util

import "encoding/json"

// Optional is a JSON field that tells an absent key from an explicit null.
// The zero value is absent.
//
//	var in struct{ Description Optional[string] `json:"description"` }
//	// {}                   -> Set=false
//	// {"description":null} -> Set=true, Null=true
//	// {"description":"x"}  -> Set=true, Value="x"
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only called for keys present in the document, null
// included.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}
