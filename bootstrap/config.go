package bootstrap

import (
	"github.com/kbukum/mp/config"
)

// Config is the constraint on application config types. Any struct that
// embeds config.ServiceConfig satisfies it through promoted methods:
//
//	type APIConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Database database.Config `yaml:"database" mapstructure:"database"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
