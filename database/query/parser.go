package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Parse extracts list parameters from a query string.
func Parse(values url.Values, cfg Config) Params {
	defSize, maxSize := cfg.pageSizes()
	params := Params{
		Page:     max(intOrDefault(values.Get("page"), 1), 1),
		PageSize: clamp(intOrDefault(values.Get("page_size"), defSize), 1, maxSize),
		Search:   strings.TrimSpace(values.Get("search")),
	}

	sort := values.Get("sort")
	if sort == "" {
		sort = cfg.DefaultSort
	}
	field, desc := strings.CutPrefix(sort, "-")
	if slices.Contains(cfg.AllowedSortFields, field) {
		params.SortBy, params.Desc = field, desc
	}

	for _, field := range cfg.AllowedFilters {
		if v := values.Get(field); v != "" {
			if cond, ok := parseCondition(field, v); ok {
				params.Conditions = append(params.Conditions, cond)
			}
		}
	}
	return params
}

// parseCondition reads "op.value"; a bare value means eq.
func parseCondition(field, raw string) (Condition, bool) {
	op, value, found := strings.Cut(raw, ".")
	if !found || !Operator(op).IsValid() {
		return Condition{Field: field, Operator: OpEq, Value: raw}, true
	}
	switch Operator(op) {
	case OpNull, OpNotNull:
		return Condition{Field: field, Operator: Operator(op)}, true
	}
	if value == "" {
		return Condition{}, false
	}
	return Condition{Field: field, Operator: Operator(op), Value: value}, true
}

func intOrDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}
