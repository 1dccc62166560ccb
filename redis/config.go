package redis

import (
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultURL is used when no URL is configured.
const DefaultURL = "redis://localhost:6379/0"

// Config holds Redis connection settings. URL carries address, database
// and credentials; the remaining fields tune the pool.
type Config struct {
	URL          string        `yaml:"url" mapstructure:"url"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 3 * time.Second
	}
}

// Validate checks that the URL parses.
func (c *Config) Validate() error {
	if _, err := goredis.ParseURL(c.URL); err != nil {
		return fmt.Errorf("redis.url is invalid: %w", err)
	}
	return nil
}

// options builds go-redis options from the URL and pool settings.
func (c *Config) options() (*goredis.Options, error) {
	opts, err := goredis.ParseURL(c.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = c.PoolSize
	opts.MinIdleConns = c.MinIdleConns
	opts.MaxRetries = c.MaxRetries
	opts.DialTimeout = c.DialTimeout
	opts.ReadTimeout = c.ReadTimeout
	opts.WriteTimeout = c.WriteTimeout
	return opts, nil
}
