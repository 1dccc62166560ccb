// Package migration applies versioned SQL migrations with golang-migrate.
//
// Files follow golang-migrate's VERSION_name.up.sql / VERSION_name.down.sql
// naming and are read from any fs.FS, usually an embed.FS:
//
//	//go:embed migrations/*.sql
//	var migrationsFS embed.FS
//
//	err := migration.Up(ctx, sqlDB, migrationsFS, "migrations", migration.SQLite)
//
// SQLite migrations must not contain BEGIN/COMMIT; the driver wraps each
// file in a transaction.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// DriverFunc creates a migrate database driver on an open *sql.DB.
type DriverFunc func(*sql.DB) (database.Driver, error)

// SQLite is the DriverFunc for go-sqlite3 databases.
func SQLite(db *sql.DB) (database.Driver, error) {
	return sqlite3.WithInstance(db, &sqlite3.Config{})
}

// Up applies all pending migrations. No pending migrations is not an error.
func Up(ctx context.Context, db *sql.DB, source fs.FS, path string, driverFunc DriverFunc) error {
	m, err := newMigrator(db, source, path, driverFunc)
	if err != nil {
		return err
	}
	return run(ctx, m, m.Up, "migrate up")
}

// Down rolls back every applied migration.
func Down(ctx context.Context, db *sql.DB, source fs.FS, path string, driverFunc DriverFunc) error {
	m, err := newMigrator(db, source, path, driverFunc)
	if err != nil {
		return err
	}
	return run(ctx, m, m.Down, "migrate down")
}

// Steps applies n migrations forward (n > 0) or rolls back -n (n < 0).
func Steps(ctx context.Context, db *sql.DB, source fs.FS, path string, n int, driverFunc DriverFunc) error {
	m, err := newMigrator(db, source, path, driverFunc)
	if err != nil {
		return err
	}
	return run(ctx, m, func() error { return m.Steps(n) }, "migrate steps")
}

// Version returns the applied version and dirty flag. A database with no
// migrations applied reports version 0.
func Version(db *sql.DB, source fs.FS, path string, driverFunc DriverFunc) (uint, bool, error) {
	m, err := newMigrator(db, source, path, driverFunc)
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// run executes op and stops it gracefully when ctx is canceled.
func run(ctx context.Context, m *migrate.Migrate, op func() error, name string) error {
	done := make(chan error, 1)
	go func() { done <- op() }()

	select {
	case err := <-done:
		return ignoreNoChange(err, name)
	case <-ctx.Done():
		m.GracefulStop <- true
		<-done
		return fmt.Errorf("%s: %w", name, ctx.Err())
	}
}

func ignoreNoChange(err error, name string) error {
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

// newMigrator builds a migrate instance over db. Callers must not call
// m.Close(): it would close the shared *sql.DB.
func newMigrator(db *sql.DB, source fs.FS, path string, driverFunc DriverFunc) (*migrate.Migrate, error) {
	driver, err := driverFunc(db)
	if err != nil {
		return nil, fmt.Errorf("create database driver: %w", err)
	}
	src, err := iofs.New(source, path)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
