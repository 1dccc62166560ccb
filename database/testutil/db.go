package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/logger"
)

// NewDB opens a database file in t.TempDir with the schema applied. It is
// closed when the test ends.
func NewDB(t testing.TB) *database.DB {
	t.Helper()

	cfg := database.Config{
		DSN:      "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000",
		LogLevel: "silent",
	}
	ctx := context.Background()
	db, err := database.Open(ctx, cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
