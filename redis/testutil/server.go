package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/redis"
)

// NewServer starts a miniredis server closed on cleanup.
func NewServer(t testing.TB) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(srv.Close)
	return srv
}

// URL returns a redis:// URL for srv.
func URL(srv *miniredis.Miniredis) string {
	return "redis://" + srv.Addr() + "/0"
}

// NewClient returns a client connected to srv.
func NewClient(t testing.TB, srv *miniredis.Miniredis) *redis.Client {
	t.Helper()
	client, err := redis.New(redis.Config{URL: URL(srv)}, logger.NewNop())
	if err != nil {
		t.Fatalf("create redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
