package bootstrap

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/config"
	"github.com/kbukum/mp/logger"
)

type testConfig struct {
	config.ServiceConfig
}

// mockComponent records lifecycle calls into a shared journal.
type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	status   component.HealthStatus
	journal  *journal
}

type journal struct {
	mu     sync.Mutex
	events []string
}

func (j *journal) add(e string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
}

func (j *journal) String() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return strings.Join(j.events, ",")
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(context.Context) error {
	m.journal.add("start:" + m.name)
	return m.startErr
}

func (m *mockComponent) Stop(context.Context) error {
	m.journal.add("stop:" + m.name)
	return m.stopErr
}

func (m *mockComponent) Health(context.Context) component.Health {
	status := m.status
	if status == "" {
		status = component.StatusHealthy
	}
	return component.Health{Name: m.name, Status: status}
}

func (m *mockComponent) Describe() component.Description {
	return component.Description{Type: "mock", Details: m.name}
}

func newTestConfig(name string) *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{
		Name:        name,
		Version:     "1.0.0",
		Environment: "development",
	}}
}

func newTestApp(t *testing.T) (*App[*testConfig], *journal) {
	t.Helper()
	app, err := NewApp(newTestConfig("mp-test"), WithLogger(logger.NewNop()), WithGracefulTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app, &journal{}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestConfig("mp-api"), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "mp-api" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %q %q", app.Name, app.Version)
	}
	if app.Cfg.Name != "mp-api" {
		t.Errorf("expected typed cfg, got %q", app.Cfg.Name)
	}
	if app.Components == nil || app.Summary == nil {
		t.Error("expected registry and summary")
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected default graceful timeout, got %v", app.gracefulTimeout)
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := newTestConfig("mp-api")
	cfg.Environment = "qa"
	if _, err := NewApp(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	app, j := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "db", journal: j})
	_ = app.RegisterComponent(&mockComponent{name: "redis", journal: j})

	app.OnStart(func(context.Context) error { j.add("onStart"); return nil })
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		j.add("configure:" + a.Cfg.Name)
		return nil
	})
	app.OnReady(func(context.Context) error { j.add("onReady"); return nil })
	app.OnStop(func(context.Context) error { j.add("onStop"); return nil })

	err := app.RunTask(context.Background(), func(context.Context) error {
		j.add("task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := "start:db,start:redis,onStart,configure:mp-test,onReady,task,onStop,stop:redis,stop:db"
	if got := j.String(); got != want {
		t.Errorf("unexpected order\n got: %s\nwant: %s", got, want)
	}
}

func TestRunTask_ReturnsTaskError(t *testing.T) {
	app, j := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "db", journal: j})

	boom := errors.New("boom")
	err := app.RunTask(context.Background(), func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected task error, got %v", err)
	}
	if !strings.Contains(j.String(), "stop:db") {
		t.Error("components should stop after a failed task")
	}
}

func TestRunTask_StartFailureStopsStarted(t *testing.T) {
	app, j := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "db", journal: j})
	_ = app.RegisterComponent(&mockComponent{name: "redis", journal: j, startErr: errors.New("refused")})

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if err == nil || !strings.Contains(err.Error(), "initialization failed") {
		t.Fatalf("expected initialization error, got %v", err)
	}
	if ran {
		t.Error("task should not run")
	}
	if got := j.String(); got != "start:db,start:redis,stop:db" {
		t.Errorf("unexpected journal %s", got)
	}
}

func TestRunTask_ConfigureFailure(t *testing.T) {
	app, j := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "db", journal: j})
	app.OnConfigure(func(context.Context, *App[*testConfig]) error { return errors.New("no routes") })

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "configuration failed") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, j := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "server", journal: j})

	ctx, cancel := context.WithCancel(context.Background())
	app.OnReady(func(context.Context) error { cancel(); return nil })

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := j.String(); got != "start:server,stop:server" {
		t.Errorf("unexpected journal %s", got)
	}
}

func TestStopErrorIsReported(t *testing.T) {
	app, j := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "db", journal: j, stopErr: errors.New("busy")})

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "busy") {
		t.Fatalf("expected stop error, got %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  component.HealthStatus
		wantErr bool
	}{
		{"healthy", component.StatusHealthy, false},
		{"degraded", component.StatusDegraded, true},
		{"unhealthy", component.StatusUnhealthy, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, j := newTestApp(t)
			_ = app.RegisterComponent(&mockComponent{name: "tasks", journal: j, status: tc.status})
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tc.wantErr {
				t.Errorf("ReadyCheck() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSummaryLines(t *testing.T) {
	s := NewSummary("mp-api", "1.0.0")
	s.SetStartupDuration(1500 * time.Millisecond)
	s.TrackRoute("POST", "/register")
	s.TrackRoute("GET", "/items/:id")
	s.TrackRoute("DELETE", "/items/:id")

	registry := component.NewRegistry()
	_ = registry.Register(&mockComponent{name: "database", journal: &journal{}})

	lines := s.Lines(context.Background(), registry)
	if !strings.Contains(lines[0], "mp-api 1.0.0 started in 1.5s") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "database") || !strings.Contains(lines[1], "healthy") {
		t.Errorf("expected component line, got %q", lines[1])
	}
	routes := s.Routes()
	if routes[0].Method != "DELETE" || routes[2].Path != "/register" {
		t.Errorf("routes not sorted: %+v", routes)
	}
}
