package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/logger"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.URL != DefaultURL {
		t.Errorf("expected default url, got %q", cfg.URL)
	}
	if cfg.PoolSize != 10 || cfg.DialTimeout != 5*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"redis://localhost:6379/0", false},
		{"redis://:secret@cache:6380/2", false},
		{"http://localhost", true},
		{"redis://localhost:6379/notadb", true},
	}
	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			cfg := Config{URL: tc.url}
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestClient_ListOps(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.LPush(ctx, "queue", "first"); err != nil {
		t.Fatalf("LPush failed: %v", err)
	}
	if err := client.LPush(ctx, "queue", "second"); err != nil {
		t.Fatalf("LPush failed: %v", err)
	}
	if n, _ := client.LLen(ctx, "queue"); n != 2 {
		t.Fatalf("expected 2 entries, got %d", n)
	}

	got, err := client.BRPop(ctx, time.Second, "queue")
	if err != nil {
		t.Fatalf("BRPop failed: %v", err)
	}
	if got != "first" {
		t.Errorf("expected FIFO order, got %q", got)
	}
}

func TestClient_GetMissing(t *testing.T) {
	client, _ := newTestClient(t)
	_, err := client.Get(context.Background(), "missing")
	if !IsNil(err) {
		t.Fatalf("expected nil reply, got %v", err)
	}
}

func TestClient_CloseTwice(t *testing.T) {
	client, _ := newTestClient(t)
	if err := client.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestComponentLifecycle(t *testing.T) {
	_, mini := newTestClient(t)
	c := NewComponent(Config{URL: "redis://:hunter2@" + mini.Addr() + "/0"}, logger.NewNop())
	mini.RequireAuth("hunter2")
	ctx := context.Background()

	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s (%s)", h.Status, h.Message)
	}
	if d := c.Describe(); strings.Contains(d.Details, "hunter2") {
		t.Errorf("password leaked in description: %s", d.Details)
	}
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestComponentStartFailsWithoutServer(t *testing.T) {
	c := NewComponent(Config{URL: "redis://127.0.0.1:1/0", DialTimeout: 100 * time.Millisecond, MaxRetries: 1}, logger.NewNop())
	if err := c.Start(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
}
