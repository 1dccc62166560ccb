// Command mp-api serves the authentication, items and task endpoints.
package main

import (
	"context"
	"os"

	"github.com/kbukum/mp/api"
	"github.com/kbukum/mp/auth"
	"github.com/kbukum/mp/auth/credential"
	"github.com/kbukum/mp/auth/jwt"
	"github.com/kbukum/mp/auth/password"
	"github.com/kbukum/mp/bootstrap"
	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/config"
	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/item"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/scraper"
	"github.com/kbukum/mp/server"
	"github.com/kbukum/mp/task"
	"github.com/kbukum/mp/util"
)

func main() {
	var cfg Config
	if err := config.LoadConfig("mp-api", &cfg, config.WithEnvAliases(task.EnvAliases)); err != nil {
		logger.NewFromEnv("mp-api").Fatal("Failed to load config", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := run(context.Background(), &cfg); err != nil {
		logger.Error("mp-api stopped with error", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config) error {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	if cfg.Auth.JWT.Secret == devSecret {
		app.Logger.Warn("Using the development JWT secret; set AUTH_JWT_SECRET")
	}

	codec, err := jwt.NewCodec(&cfg.Auth.JWT)
	if err != nil {
		return err
	}
	metrics := observability.DefaultMetrics()
	store := credential.NewMemoryStore()

	obs := observability.NewComponent(cfg.Observability)
	db := database.NewComponent(cfg.Database, app.Logger)
	pages := scraper.NewComponent(cfg.Scraper, db, metrics)
	for _, c := range []component.Component{obs, db, pages} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	var tasks *task.Component
	if cfg.EnableTasks {
		registry := task.NewRegistry()
		if err := task.RegisterDefaults(registry, pages, pages); err != nil {
			return err
		}
		tasks = task.NewComponent(cfg.Tasks, registry, metrics, false)
		if err := app.RegisterComponent(tasks); err != nil {
			return err
		}
	}

	srv := server.New(cfg.Server, app.Logger)
	httpServer := server.NewComponent(srv)

	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		srv.ApplyDefaults(a.Name, a.Components.HealthAll)

		deps := api.Deps{
			Auth:       auth.NewService(store, password.NewHasher(cfg.Auth.Password), codec, metrics),
			Authorizer: auth.NewAuthorizer(codec, store, metrics),
			Items:      item.NewService(item.NewRepository(db.DB())),
		}
		if tasks != nil {
			deps.Tasks = tasks.Client()
		}
		api.Register(srv.GinEngine(), deps)

		for _, r := range srv.GinEngine().Routes() {
			a.Summary.TrackRoute(r.Method, r.Path)
		}
		a.Logger.Info("Auth configured", logger.Fields("auth", cfg.Auth.Describe(), "secret", util.MaskSecret(cfg.Auth.JWT.Secret, 2)))
		return httpServer.Start(ctx)
	})
	app.OnStop(httpServer.Stop)

	return app.Run(ctx)
}
