package auth

import (
	"fmt"

	"github.com/kbukum/mp/auth/jwt"
	"github.com/kbukum/mp/auth/password"
)

// Config composes the token and password settings.
type Config struct {
	JWT      jwt.Config      `yaml:"jwt" mapstructure:"jwt"`
	Password password.Config `yaml:"password" mapstructure:"password"`
}

// ApplyDefaults fills both sub-configurations.
func (c *Config) ApplyDefaults() {
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks both sub-configurations.
func (c *Config) Validate() error {
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	return nil
}

// Describe returns a one-liner for the startup log, e.g.
// "JWT(HS256) TTL=30m0s password=bcrypt".
func (c *Config) Describe() string {
	return fmt.Sprintf("JWT(%s) TTL=%s password=%s", c.JWT.Method, c.JWT.AccessTokenTTL, c.Password.Algorithm)
}
