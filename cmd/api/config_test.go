package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/mp/config"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Name != "mp-api" {
		t.Errorf("expected name mp-api, got %q", cfg.Name)
	}
	if cfg.Auth.JWT.Secret != devSecret {
		t.Errorf("expected development secret, got %q", cfg.Auth.JWT.Secret)
	}
	if cfg.Server.Port != 8080 || cfg.Database.DSN != "mp.db" {
		t.Errorf("unexpected defaults: port=%d dsn=%q", cfg.Server.Port, cfg.Database.DSN)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"production without secret", func(c *Config) { c.Environment = "production" }, "secret is required"},
		{"production with secret", func(c *Config) { c.Environment = "production"; c.Auth.JWT.Secret = "s3cr3t" }, ""},
		{"bad broker when tasks enabled", func(c *Config) { c.EnableTasks = true; c.Tasks.BrokerURL = "amqp://x" }, "tasks.broker_url"},
		{"bad broker ignored when tasks disabled", func(c *Config) { c.Tasks.BrokerURL = "amqp://x" }, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			tc.mutate(&cfg)
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestConfigFileLoads(t *testing.T) {
	var cfg Config
	if err := config.LoadConfig("mp-api", &cfg, config.WithConfigFile("config.yml"), config.WithEnvFile(filepath.Join(t.TempDir(), "none"))); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("shipped config should validate: %v", err)
	}
	if !cfg.EnableTasks || cfg.Auth.JWT.AccessTokenTTL.String() != "30m0s" {
		t.Errorf("unexpected config %+v", cfg)
	}
}
