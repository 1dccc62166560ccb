package observability

import (
	"fmt"
	"time"
)

// Config groups tracing and metrics settings.
type Config struct {
	Tracing TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults propagates service identity and fills exporter defaults.
func (c *Config) ApplyDefaults(serviceName, version, environment string) {
	c.Tracing.id.apply(serviceName, version, environment)
	c.Metrics.id.apply(serviceName, version, environment)
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = defaultEndpoint
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = defaultEndpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15 * time.Second
	}
}

// Validate checks the sampling rate.
func (c *Config) Validate() error {
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("observability.tracing.sample_rate must be within [0, 1] (got: %v)", c.Tracing.SampleRate)
	}
	if c.Metrics.Interval < 0 {
		return fmt.Errorf("observability.metrics.interval must not be negative")
	}
	return nil
}

const defaultEndpoint = "localhost:4318"

// identity feeds the resource attributes of both providers.
type identity struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
}

func (i *identity) apply(name, version, env string) {
	if i.ServiceName == "" {
		i.ServiceName = name
	}
	if i.ServiceVersion == "" {
		i.ServiceVersion = version
	}
	if i.Environment == "" {
		i.Environment = env
	}
}
