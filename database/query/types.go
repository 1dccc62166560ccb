// Package query turns list-endpoint query strings into paginated, sorted
// and filtered GORM queries.
//
//	GET /items/?page=2&page_size=10&sort=-name&search=widget&name=eq.Widget
package query

import "slices"

// Operator is a filter operator in "field=op.value" form.
type Operator string

const (
	OpEq      Operator = "eq"
	OpNeq     Operator = "neq"
	OpLike    Operator = "like"
	OpNull    Operator = "null"
	OpNotNull Operator = "notNull"
)

var operators = []Operator{OpEq, OpNeq, OpLike, OpNull, OpNotNull}

// IsValid reports whether o is a supported operator.
func (o Operator) IsValid() bool {
	return slices.Contains(operators, o)
}

// Condition is a single filter.
type Condition struct {
	Field    string
	Operator Operator
	Value    string
}

// Params are the parsed list parameters.
type Params struct {
	Page       int
	PageSize   int
	SortBy     string
	Desc       bool
	Search     string
	Conditions []Condition
}

// Pagination is returned alongside a page of results.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Result is one page of T.
type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Config declares what a list endpoint accepts. Fields not listed are
// ignored, so column names never come from the request unchecked.
type Config struct {
	SearchFields      []string
	AllowedSortFields []string
	AllowedFilters    []string
	DefaultSort       string // "id" or "-id"
	DefaultPageSize   int
	MaxPageSize       int
}

func (c Config) pageSizes() (def, maxSize int) {
	def, maxSize = c.DefaultPageSize, c.MaxPageSize
	if def <= 0 {
		def = 20
	}
	if maxSize <= 0 {
		maxSize = 100
	}
	return def, maxSize
}
