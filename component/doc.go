// Package component defines lifecycle-managed infrastructure and an
// ordered registry that starts it, stops it and reports its health.
//
// Components are started in registration order and stopped in reverse,
// so dependencies (database, redis) are registered before their users
// (HTTP server, task worker).
package component
