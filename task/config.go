package task

import (
	"fmt"
	"net/url"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultBrokerURL is used for both broker and result backend when unset.
const DefaultBrokerURL = "redis://localhost:6379/0"

// EnvAliases lets deployments keep the CELERY_* variable names. Pass it to
// config.WithEnvAliases.
var EnvAliases = map[string]string{
	"CELERY_BROKER_URL":     "TASKS_BROKER_URL",
	"CELERY_RESULT_BACKEND": "TASKS_RESULT_BACKEND",
}

// Config configures the task runtime.
type Config struct {
	BrokerURL     string `yaml:"broker_url" mapstructure:"broker_url"`
	ResultBackend string `yaml:"result_backend" mapstructure:"result_backend"`

	// AlwaysEager runs tasks inside Delay instead of publishing them.
	AlwaysEager bool `yaml:"always_eager" mapstructure:"always_eager"`

	Queue          string        `yaml:"queue" mapstructure:"queue"`
	QueueSize      int           `yaml:"queue_size" mapstructure:"queue_size"` // memory broker only
	Concurrency    int           `yaml:"concurrency" mapstructure:"concurrency"`
	TaskTimeout    time.Duration `yaml:"task_timeout" mapstructure:"task_timeout"`
	ResultTTL      time.Duration `yaml:"result_ttl" mapstructure:"result_ttl"`
	PollInterval   time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	ConsumeTimeout time.Duration `yaml:"consume_timeout" mapstructure:"consume_timeout"`

	Beat BeatConfig `yaml:"beat" mapstructure:"beat"`
}

// BeatConfig configures the periodic scheduler.
type BeatConfig struct {
	Enabled  bool    `yaml:"enabled" mapstructure:"enabled"`
	Timezone string  `yaml:"timezone" mapstructure:"timezone"`
	Entries  []Entry `yaml:"entries" mapstructure:"entries"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BrokerURL == "" {
		c.BrokerURL = DefaultBrokerURL
	}
	if c.ResultBackend == "" {
		c.ResultBackend = DefaultBrokerURL
	}
	if c.Queue == "" {
		c.Queue = "mp"
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.TaskTimeout <= 0 {
		c.TaskTimeout = 10 * time.Minute
	}
	if c.ResultTTL <= 0 {
		c.ResultTTL = 24 * time.Hour
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	if c.ConsumeTimeout <= 0 {
		c.ConsumeTimeout = time.Second
	}
	if c.Beat.Timezone == "" {
		c.Beat.Timezone = "UTC"
	}
	if len(c.Beat.Entries) == 0 {
		c.Beat.Entries = DefaultSchedule()
	}
}

// Validate checks URLs, the timezone and every schedule entry.
func (c *Config) Validate() error {
	if err := validateURL("tasks.broker_url", c.BrokerURL, brokerSchemes); err != nil {
		return err
	}
	if err := validateURL("tasks.result_backend", c.ResultBackend, backendSchemes); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Beat.Timezone); err != nil {
		return fmt.Errorf("tasks.beat.timezone: %w", err)
	}
	for _, e := range c.Beat.Entries {
		if e.Name == "" || e.Task == "" {
			return fmt.Errorf("tasks.beat.entries: name and task are required")
		}
		if _, err := cron.ParseStandard(e.Spec); err != nil {
			return fmt.Errorf("tasks.beat.entries[%s]: %w", e.Name, err)
		}
	}
	return nil
}

var (
	brokerSchemes  = []string{"memory", "redis", "rediss"}
	backendSchemes = []string{"memory", "cache+memory", "redis", "rediss"}
)

func validateURL(key, raw string, schemes []string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", key, err)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("%s: unsupported scheme %q (want one of %v)", key, u.Scheme, schemes)
}
