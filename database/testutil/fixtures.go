package testutil

import (
	"fmt"
	"testing"

	"github.com/kbukum/mp/database"
)

// MustLoadFixture inserts rows into table and fails the test on error.
func MustLoadFixture(t testing.TB, db *database.DB, table string, rows []map[string]interface{}) {
	t.Helper()
	for _, row := range rows {
		if err := db.Gorm().Table(table).Create(row).Error; err != nil {
			t.Fatalf("insert fixture row into %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in table.
func CountRows(db *database.DB, table string) (int64, error) {
	var count int64
	err := db.Gorm().Table(table).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// AssertRowCount fails the test if table does not hold want rows.
func AssertRowCount(t testing.TB, db *database.DB, table string, want int64) {
	t.Helper()
	got, err := CountRows(db, table)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("table %s row count = %d, want %d", table, got, want)
	}
}
