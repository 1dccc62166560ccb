// Package database provides the SQLite-backed GORM connection used by the
// item and scraper repositories.
//
// The Component opens the database, applies the embedded schema migrations
// and reports health to the readiness endpoint:
//
//	database:
//	  dsn: "mp.db"
//	  max_open_conns: 1
//	  slow_query_threshold: 200ms
//
//	db := database.NewComponent(cfg.Database, log)
//	registry.Register(db)
//	...
//	repo := item.NewRepository(db.DB())
package database
