// Package validation checks request input and reports failures as
// *errors.AppError values with per-field details.
//
// # Struct Tag Validation
//
//	type ItemCreate struct {
//	    Name string `json:"name" validate:"required,max=255"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("username", name).MaxLength("username", name, 150)
//	if err := v.Validate(); err != nil { ... }
package validation
