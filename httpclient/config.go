package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/mp/resilience"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxBodySize = 5 << 20
)

// Config configures the HTTP client.
type Config struct {
	// Timeout bounds one attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent with every request when set.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// MaxBodySize caps how much of a response body is read. Defaults to 5MB.
	MaxBodySize int64 `yaml:"max_body_size" mapstructure:"max_body_size"`

	// Retry configures retries. Nil disables them.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// CircuitBreaker configures a breaker around each attempt. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = defaultMaxBodySize
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf("httpclient: max_body_size must be positive")
	}
	return nil
}

// DefaultRetryConfig retries timeouts, connection failures, 429 and 5xx.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.RetryConfig{RetryIf: IsRetryable}
	cfg.ApplyDefaults()
	return &cfg
}

// DefaultCircuitBreakerConfig returns a breaker config named after the
// remote host.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.CircuitBreakerConfig{Name: name}
	cfg.ApplyDefaults()
	return &cfg
}
