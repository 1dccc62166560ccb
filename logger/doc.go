// Package logger provides structured logging on top of zerolog.
//
// A Logger writes JSON or console output, can be scoped to a component,
// and picks up request-scoped values (request ID, username, task ID) that
// middleware stores in the context.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("auth")
//	log.WithContext(ctx).Info("login succeeded", logger.Fields("username", name))
package logger
