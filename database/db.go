package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/resilience"
)

// DB wraps a GORM connection.
type DB struct {
	gorm *gorm.DB
	log  *logger.Logger
	cfg  Config

	mu     sync.Mutex
	closed bool
}

// Open connects to the SQLite database described by cfg, retrying with
// backoff, and configures the pool.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()

	gormCfg := &gorm.Config{
		Logger:         newGormLogger(log, cfg.SlowQueryThreshold, parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	}

	retry := resilience.RetryConfig{
		MaxAttempts:    cfg.MaxRetries,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			log.Warn("Database connection attempt failed, retrying", logger.Fields(
				"attempt", attempt, "error", err.Error(), "backoff", backoff.String(),
			))
		},
	}

	gdb, err := resilience.Retry(ctx, retry, func(ctx context.Context) (*gorm.DB, error) {
		gdb, err := gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return gdb, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.MaxRetries, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info("Database connection established", logger.Fields("dsn", cfg.DSN))
	return &DB{gorm: gdb, log: log, cfg: cfg}, nil
}

// Gorm returns the underlying *gorm.DB.
func (d *DB) Gorm() *gorm.DB {
	return d.gorm
}

// WithContext returns a GORM session scoped to ctx.
func (d *DB) WithContext(ctx context.Context) *gorm.DB {
	return d.gorm.WithContext(ctx)
}

// PingContext verifies the connection is alive.
func (d *DB) PingContext(ctx context.Context) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Transaction runs fn in a transaction that commits when fn returns nil.
func (d *DB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Close closes the connection pool. Safe to call more than once.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	d.closed = true
	d.log.Info("Closing database connection")
	return sqlDB.Close()
}
