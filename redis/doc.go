// Package redis wraps go-redis for the task broker and result backend.
//
// Connections are described by a URL so the same setting selects the
// broker and the backend:
//
//	tasks:
//	  broker_url: "redis://localhost:6379/0"
//
// TypedStore stores JSON values under a key prefix with an optional TTL.
package redis
