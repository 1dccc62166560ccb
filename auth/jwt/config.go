package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the token lifetime when none is configured.
const DefaultAccessTokenTTL = 30 * time.Minute

// SigningMethod names a supported HMAC signing algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the token codec.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`

	// Issuer is the "iss" claim (optional). When set, parsed tokens must carry it.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// AccessTokenTTL is the lifetime of issued tokens (default: 30m).
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = DefaultAccessTokenTTL
	}
}

// Validate checks the secret, method and TTL.
func (c *Config) Validate() error {
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return fmt.Errorf("unsupported signing method: %s", c.Method)
	}
	if c.Secret == "" {
		return errors.New("secret is required")
	}
	if c.AccessTokenTTL < 0 {
		return fmt.Errorf("access_token_ttl must not be negative (got: %s)", c.AccessTokenTTL)
	}
	return nil
}

func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}
