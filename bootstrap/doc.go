// Package bootstrap runs a service binary: it validates the typed config,
// initializes the logger, starts registered components in order, runs
// configure callbacks and hooks, then blocks until SIGINT/SIGTERM and
// stops everything in reverse within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(dbComponent)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    return wireRoutes(a)
//	})
//	return app.Run(context.Background())
package bootstrap
