// Package server runs the HTTP API on Gin behind an h2c handler.
//
// ApplyMiddleware installs the standard stack: panic recovery, request
// IDs, tracing and request logging on the Gin engine, plus CORS and a body
// size limit around the whole handler. RegisterDefaultEndpoints adds
// /health, /ready and /info.
//
//	srv := server.New(cfg, log)
//	srv.ApplyDefaults("mp-api", registry.HealthAll)
//	srv.GinEngine().POST("/login", handler.Login)
package server
