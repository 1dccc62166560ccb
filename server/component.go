package server

import (
	"context"
	"fmt"

	"github.com/kbukum/mp/component"
)

const componentName = "http-server"

var (
	_ component.Component   = (*ServerComponent)(nil)
	_ component.Describable = (*ServerComponent)(nil)
)

// ServerComponent wraps Server to implement component.Component.
type ServerComponent struct {
	server *Server
}

// NewComponent returns a component.Component backed by s.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

func (sc *ServerComponent) Name() string { return componentName }

func (sc *ServerComponent) Start(ctx context.Context) error {
	return sc.server.Start(ctx)
}

func (sc *ServerComponent) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

func (sc *ServerComponent) Health(_ context.Context) component.Health {
	sc.server.mu.RLock()
	bound := sc.server.listener != nil
	sc.server.mu.RUnlock()

	if !bound {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: "HTTP server not started",
		}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

func (sc *ServerComponent) Describe() component.Description {
	return component.Description{
		Type:    "server",
		Details: fmt.Sprintf("%s:%d", sc.server.config.Host, sc.server.config.Port),
	}
}
