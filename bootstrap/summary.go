package bootstrap

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/logger"
)

// RouteInfo is a registered HTTP route.
type RouteInfo struct {
	Method string
	Path   string
}

// Summary collects what the service started with and logs it once ready.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	routes          []RouteInfo
}

func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackRoute records an HTTP route for the startup log.
func (s *Summary) TrackRoute(method, path string) {
	s.routes = append(s.routes, RouteInfo{Method: method, Path: path})
}

// Routes returns the tracked routes sorted by path then method.
func (s *Summary) Routes() []RouteInfo {
	out := append([]RouteInfo(nil), s.routes...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Lines renders the summary, one entry per line.
func (s *Summary) Lines(ctx context.Context, registry *component.Registry) []string {
	lines := []string{fmt.Sprintf("%s %s started in %s", s.serviceName, s.version, s.startupDuration.Round(time.Millisecond))}

	if registry != nil {
		for _, c := range registry.All() {
			h := c.Health(ctx)
			line := fmt.Sprintf("component %-14s %-9s", c.Name(), h.Status)
			if d, ok := c.(component.Describable); ok {
				desc := d.Describe()
				line += fmt.Sprintf(" %s %s", desc.Type, desc.Details)
			}
			if h.Message != "" {
				line += " (" + h.Message + ")"
			}
			lines = append(lines, line)
		}
	}

	for _, r := range s.Routes() {
		lines = append(lines, fmt.Sprintf("route %-7s %s", r.Method, r.Path))
	}
	return lines
}

// DisplaySummary logs Lines at info level.
func (s *Summary) DisplaySummary(ctx context.Context, registry *component.Registry, log *logger.Logger) {
	for _, line := range s.Lines(ctx, registry) {
		log.Info(line)
	}
}
