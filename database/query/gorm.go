package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Apply runs params against db (already scoped to a model or table) and
// returns one page of T.
func Apply[T any](db *gorm.DB, params Params, cfg Config) (*Result[T], error) {
	q := db.Session(&gorm.Session{})

	if params.Search != "" && len(cfg.SearchFields) > 0 {
		q = applySearch(q, params.Search, cfg.SearchFields)
	}
	for _, cond := range params.Conditions {
		q = applyCondition(q, cond)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	if params.SortBy != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: params.SortBy}, Desc: params.Desc})
	}
	if params.PageSize <= 0 {
		params.PageSize, _ = cfg.pageSizes()
	}
	if params.Page <= 0 {
		params.Page = 1
	}

	data := make([]T, 0, params.PageSize)
	if err := q.Offset((params.Page - 1) * params.PageSize).Limit(params.PageSize).Find(&data).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	totalPages := max((int(total)+params.PageSize-1)/params.PageSize, 1)
	return &Result[T]{
		Data: data,
		Pagination: Pagination{
			Page:       params.Page,
			PageSize:   params.PageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	}, nil
}

// applySearch matches any search field case-insensitively.
func applySearch(db *gorm.DB, search string, fields []string) *gorm.DB {
	pattern := "%" + strings.ToLower(search) + "%"
	exprs := make([]clause.Expression, 0, len(fields))
	for _, f := range fields {
		exprs = append(exprs, clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{clause.Column{Name: f}, pattern}})
	}
	return db.Where(clause.Or(exprs...))
}

func applyCondition(db *gorm.DB, cond Condition) *gorm.DB {
	col := clause.Column{Name: cond.Field}
	switch cond.Operator {
	case OpEq:
		return db.Where(clause.Eq{Column: col, Value: cond.Value})
	case OpNeq:
		return db.Where(clause.Neq{Column: col, Value: cond.Value})
	case OpLike:
		return db.Where(clause.Like{Column: col, Value: "%" + cond.Value + "%"})
	case OpNull:
		return db.Where(clause.Eq{Column: col, Value: nil})
	case OpNotNull:
		return db.Where(clause.Neq{Column: col, Value: nil})
	default:
		return db
	}
}
