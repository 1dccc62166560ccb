// Command mp-worker consumes queued tasks and, with beat enabled, enqueues
// the periodic scrape and processing tasks.
//
// Run a single task inline and exit:
//
//	mp-worker -run tasks.start_spider
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/kbukum/mp/bootstrap"
	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/config"
	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/scraper"
	"github.com/kbukum/mp/task"
)

var (
	runOnce = flag.String("run", "", "Run the named task inline and exit")
	timeout = flag.Duration("timeout", 5*time.Minute, "Result timeout for -run")
)

func main() {
	flag.Parse()

	var cfg Config
	if err := config.LoadConfig("mp-worker", &cfg, config.WithEnvAliases(task.EnvAliases)); err != nil {
		logger.NewFromEnv("mp-worker").Fatal("Failed to load config", logger.Fields(logger.FieldError, err.Error()))
	}
	if *runOnce != "" {
		cfg.Tasks.AlwaysEager = true
		cfg.Tasks.Beat.Enabled = false
	}

	if err := run(context.Background(), &cfg); err != nil {
		logger.Error("mp-worker stopped with error", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config) error {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	metrics := observability.DefaultMetrics()
	db := database.NewComponent(cfg.Database, app.Logger)
	pages := scraper.NewComponent(cfg.Scraper, db, metrics)

	registry := task.NewRegistry()
	if err := task.RegisterDefaults(registry, pages, pages); err != nil {
		return err
	}
	tasks := task.NewComponent(cfg.Tasks, registry, metrics, *runOnce == "")

	for _, c := range []component.Component{observability.NewComponent(cfg.Observability), db, pages, tasks} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	if *runOnce == "" {
		return app.Run(ctx)
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		ar, err := tasks.Client().Delay(ctx, *runOnce)
		if err != nil {
			return err
		}
		value, err := ar.Get(ctx, *timeout)
		if err != nil {
			return err
		}
		app.Logger.Info("Task finished", logger.Fields(logger.FieldTask, ar.Name, logger.FieldTaskID, ar.ID, "result", value))
		return nil
	})
}
