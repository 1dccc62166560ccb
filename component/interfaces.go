package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed piece of infrastructure: the database,
// the redis client, the HTTP server, the task worker.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description is a one-line summary a component reports at startup.
type Description struct {
	// Type categorizes the component: "database", "server", "redis", "worker".
	Type string
	// Details is a short human-readable configuration summary,
	// e.g. "mp.db pool=10/5" or ":8080".
	Details string
}

// Describable is optionally implemented by components to be listed in the
// startup log.
type Describable interface {
	Describe() Description
}
