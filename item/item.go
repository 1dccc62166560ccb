package item

import (
	"github.com/kbukum/mp/util"
	"github.com/kbukum/mp/validation"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 4096
)

// Item is a row of the items table.
type Item struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"not null"`
	Description *string `json:"description"`
}

// TableName pins the table created by the migrations.
func (Item) TableName() string { return "items" }

// CreateInput is the body of a create request.
type CreateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=4096"`
}

// UpdateInput is a partial update. Absent fields are left unchanged, an
// explicit null description clears it, and a null name is rejected.
type UpdateInput struct {
	Name        util.Optional[string] `json:"name"`
	Description util.Optional[string] `json:"description"`
}

// Validate checks the fields that are present.
func (u UpdateInput) Validate() error {
	v := validation.New()
	if u.Name.Set {
		v.Custom(!u.Name.Null && u.Name.Value != "", "name", "is required")
		v.MaxLength("name", u.Name.Value, maxNameLength)
	}
	if u.Description.Set {
		v.MaxLength("description", u.Description.Value, maxDescriptionLength)
	}
	return v.Validate()
}

// changes returns the columns to update. A nil value writes NULL.
func (u UpdateInput) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.Name.Set {
		m["name"] = u.Name.Value
	}
	if u.Description.Set {
		if u.Description.Null {
			m["description"] = nil
		} else {
			m["description"] = u.Description.Value
		}
	}
	return m
}
