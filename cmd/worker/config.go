package main

import (
	"github.com/kbukum/mp/config"
	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/scraper"
	"github.com/kbukum/mp/task"
	"github.com/kbukum/mp/version"
)

// Config is the mp-worker configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Scraper       scraper.Config       `yaml:"scraper" mapstructure:"scraper"`
	Tasks         task.Config          `yaml:"tasks" mapstructure:"tasks"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "mp-worker"
	}
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Scraper.ApplyDefaults()
	c.Tasks.ApplyDefaults()
	c.Observability.ApplyDefaults(c.Name, c.Version, c.Environment)
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Scraper.Validate(); err != nil {
		return err
	}
	if err := c.Tasks.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}
