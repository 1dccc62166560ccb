package database

import (
	"fmt"
	"time"
)

// Config holds the SQLite connection settings.
type Config struct {
	// DSN is a file path or a go-sqlite3 URI ("file:mp.db?_busy_timeout=5000").
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`

	// MaxRetries is the number of connection attempts before giving up.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// Migrate applies the embedded schema migrations on Start.
	Migrate *bool `yaml:"migrate" mapstructure:"migrate"`

	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" mapstructure:"slow_query_threshold"`
	LogLevel           string        `yaml:"log_level" mapstructure:"log_level"` // silent, error, warn, info
}

// ApplyDefaults sets defaults for zero-valued fields. SQLite serialises
// writers, so the pool defaults to a single connection.
func (c *Config) ApplyDefaults() {
	if c.DSN == "" {
		c.DSN = "mp.db"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 1
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 1
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = time.Hour
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.Migrate == nil {
		enabled := true
		c.Migrate = &enabled
	}
	if c.SlowQueryThreshold <= 0 {
		c.SlowQueryThreshold = 200 * time.Millisecond
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks the configuration after ApplyDefaults.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) must be <= max_open_conns (%d)", c.MaxIdleConns, c.MaxOpenConns)
	}
	switch c.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("database.log_level must be one of silent, error, warn, info (got: %q)", c.LogLevel)
	}
	return nil
}

// MigrateEnabled reports whether Start applies migrations.
func (c *Config) MigrateEnabled() bool {
	return c.Migrate == nil || *c.Migrate
}
