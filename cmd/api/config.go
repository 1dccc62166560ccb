package main

import (
	"fmt"

	"github.com/kbukum/mp/auth"
	"github.com/kbukum/mp/config"
	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/scraper"
	"github.com/kbukum/mp/server"
	"github.com/kbukum/mp/task"
	"github.com/kbukum/mp/version"
)

// devSecret signs tokens in development when no secret is configured.
const devSecret = "mp-development-secret"

// Config is the mp-api configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Scraper       scraper.Config       `yaml:"scraper" mapstructure:"scraper"`
	Tasks         task.Config          `yaml:"tasks" mapstructure:"tasks"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`

	// EnableTasks mounts the /tasks routes and connects to the broker.
	EnableTasks bool `yaml:"enable_tasks" mapstructure:"enable_tasks"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "mp-api"
	}
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	if c.Auth.JWT.Secret == "" && c.Environment == "development" {
		c.Auth.JWT.Secret = devSecret
	}
	c.Auth.ApplyDefaults()
	c.Scraper.ApplyDefaults()
	c.Tasks.ApplyDefaults()
	c.Observability.ApplyDefaults(c.Name, c.Version, c.Environment)
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if c.IsProduction() && c.Auth.JWT.Secret == devSecret {
		return fmt.Errorf("auth.jwt.secret must be set in production")
	}
	if err := c.Scraper.Validate(); err != nil {
		return err
	}
	if c.EnableTasks {
		if err := c.Tasks.Validate(); err != nil {
			return err
		}
	}
	return c.Observability.Validate()
}
