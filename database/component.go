package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/database/migration"
	"github.com/kbukum/mp/logger"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component manages the DB lifecycle inside a component.Registry.
type Component struct {
	cfg Config
	log *logger.Logger

	mu sync.RWMutex
	db *DB
}

// NewComponent creates a database component. Nothing is opened until Start.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("database")}
}

// DB returns the open database, or nil before Start.
func (c *Component) DB() *DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

func (c *Component) Name() string { return "database" }

// Start opens the database and applies pending migrations when enabled.
func (c *Component) Start(ctx context.Context) error {
	db, err := Open(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("database start: %w", err)
	}

	if c.cfg.MigrateEnabled() {
		if err := Migrate(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("database migrate: %w", err)
		}
		c.log.Info("Schema migrations applied")
	}

	c.mu.Lock()
	c.db = db
	c.mu.Unlock()
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Component) Health(ctx context.Context) component.Health {
	db := c.DB()
	if db == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "database not initialized"}
	}
	if err := db.PingContext(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: fmt.Sprintf("ping failed: %v", err)}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("sqlite %s pool=%d/%d", c.cfg.DSN, c.cfg.MaxOpenConns, c.cfg.MaxIdleConns)
	if c.cfg.MigrateEnabled() {
		details += " migrate=on"
	}
	return component.Description{Type: "database", Details: details}
}

// Migrate applies the embedded schema to db.
func Migrate(ctx context.Context, db *DB) error {
	sqlDB, err := db.Gorm().DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return migration.Up(ctx, sqlDB, Migrations, MigrationsDir, migration.SQLite)
}
