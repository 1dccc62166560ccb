// Package testutil opens throwaway migrated SQLite databases for tests.
//
//	db := testutil.NewDB(t)
//	testutil.MustLoadFixture(t, db, "items", []map[string]interface{}{
//	    {"name": "Widget"},
//	})
//	testutil.AssertRowCount(t, db, "items", 1)
package testutil
