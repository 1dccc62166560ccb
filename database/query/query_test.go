package query

import (
	"net/url"
	"testing"

	"github.com/kbukum/mp/database/testutil"
)

type row struct {
	ID          int64
	Name        string
	Description *string
}

var itemsConfig = Config{
	SearchFields:      []string{"name", "description"},
	AllowedSortFields: []string{"id", "name"},
	AllowedFilters:    []string{"name", "description"},
	DefaultSort:       "id",
	DefaultPageSize:   2,
	MaxPageSize:       5,
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, p Params)
	}{
		{"defaults", "", func(t *testing.T, p Params) {
			if p.Page != 1 || p.PageSize != 2 || p.SortBy != "id" || p.Desc {
				t.Errorf("unexpected defaults %+v", p)
			}
		}},
		{"page size clamped", "page_size=50&page=0", func(t *testing.T, p Params) {
			if p.PageSize != 5 || p.Page != 1 {
				t.Errorf("expected page 1 size 5, got %+v", p)
			}
		}},
		{"descending sort", "sort=-name", func(t *testing.T, p Params) {
			if p.SortBy != "name" || !p.Desc {
				t.Errorf("expected name desc, got %+v", p)
			}
		}},
		{"unknown sort ignored", "sort=password", func(t *testing.T, p Params) {
			if p.SortBy != "" {
				t.Errorf("expected no sort, got %q", p.SortBy)
			}
		}},
		{"filters", "name=eq.Widget&description=null.&owner=eq.bob", func(t *testing.T, p Params) {
			if len(p.Conditions) != 2 {
				t.Fatalf("expected 2 conditions, got %+v", p.Conditions)
			}
			if p.Conditions[0] != (Condition{Field: "name", Operator: OpEq, Value: "Widget"}) {
				t.Errorf("unexpected first condition %+v", p.Conditions[0])
			}
			if p.Conditions[1].Operator != OpNull {
				t.Errorf("expected null operator, got %+v", p.Conditions[1])
			}
		}},
		{"bare value is eq", "name=Widget", func(t *testing.T, p Params) {
			if len(p.Conditions) != 1 || p.Conditions[0].Operator != OpEq || p.Conditions[0].Value != "Widget" {
				t.Errorf("unexpected conditions %+v", p.Conditions)
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatal(err)
			}
			tc.check(t, Parse(values, itemsConfig))
		})
	}
}

func TestApply(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.MustLoadFixture(t, db, "items", []map[string]interface{}{
		{"name": "Widget", "description": "blue widget"},
		{"name": "Gadget"},
		{"name": "Gizmo", "description": "WIDGET compatible"},
	})

	run := func(t *testing.T, query string) *Result[row] {
		t.Helper()
		values, _ := url.ParseQuery(query)
		res, err := Apply[row](db.Gorm().Table("items"), Parse(values, itemsConfig), itemsConfig)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		return res
	}

	t.Run("first page", func(t *testing.T) {
		res := run(t, "")
		if len(res.Data) != 2 || res.Pagination.Total != 3 || res.Pagination.TotalPages != 2 {
			t.Fatalf("unexpected page %+v", res.Pagination)
		}
		if res.Data[0].Name != "Widget" {
			t.Errorf("expected id order, got %q first", res.Data[0].Name)
		}
	})

	t.Run("second page", func(t *testing.T) {
		res := run(t, "page=2")
		if len(res.Data) != 1 || res.Data[0].Name != "Gizmo" {
			t.Fatalf("unexpected second page %+v", res.Data)
		}
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		res := run(t, "search=widget&page_size=5")
		if res.Pagination.Total != 2 {
			t.Fatalf("expected 2 matches, got %d", res.Pagination.Total)
		}
	})

	t.Run("null filter", func(t *testing.T) {
		res := run(t, "description=null.")
		if res.Pagination.Total != 1 || res.Data[0].Name != "Gadget" {
			t.Fatalf("expected Gadget only, got %+v", res.Data)
		}
	})

	t.Run("sort descending", func(t *testing.T) {
		res := run(t, "sort=-name&page_size=5")
		if res.Data[0].Name != "Widget" || res.Data[2].Name != "Gadget" {
			t.Fatalf("unexpected order %+v", res.Data)
		}
	})

	t.Run("empty page is empty slice", func(t *testing.T) {
		res := run(t, "page=9")
		if res.Data == nil || len(res.Data) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", res.Data)
		}
	})
}
