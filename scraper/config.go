package scraper

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultStartURL is the page fetched when none is configured.
const DefaultStartURL = "https://example.com"

// Config configures the spider.
type Config struct {
	StartURL    string        `yaml:"start_url" mapstructure:"start_url"`
	UserAgent   string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.StartURL == "" {
		c.StartURL = DefaultStartURL
	}
	if c.UserAgent == "" {
		c.UserAgent = "mp-scraper/1.0"
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
}

// Validate checks that StartURL is an absolute http(s) URL.
func (c *Config) Validate() error {
	u, err := url.Parse(c.StartURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("scraper.start_url must be an absolute http(s) URL (got: %q)", c.StartURL)
	}
	return nil
}
