package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/mp/resilience"
)

func fastRetry() *resilience.RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if ua := r.Header.Get("User-Agent"); ua != "mp-test/1.0" {
			t.Errorf("expected user agent, got %q", ua)
		}
		if v := r.Header.Get("Accept"); v != "text/html" {
			t.Errorf("expected default header, got %q", v)
		}
		_, _ = w.Write([]byte("<title>ok</title>"))
	}))
	defer srv.Close()

	c, err := New(Config{UserAgent: "mp-test/1.0", Headers: map[string]string{"Accept": "text/html"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() || !strings.Contains(string(resp.Body), "ok") {
		t.Errorf("unexpected response %d %q", resp.StatusCode, resp.Body)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		status    int
		code      ErrorCode
		retryable bool
	}{
		{http.StatusNotFound, ErrCodeNotFound, false},
		{http.StatusBadRequest, ErrCodeClient, false},
		{http.StatusTooManyRequests, ErrCodeRateLimit, true},
		{http.StatusBadGateway, ErrCodeServer, true},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c, _ := New(Config{})
			resp, err := c.Get(context.Background(), srv.URL)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if e.Code != tc.code || e.Retryable != tc.retryable {
				t.Errorf("got code=%s retryable=%v", e.Code, e.Retryable)
			}
			if resp == nil || resp.StatusCode != tc.status {
				t.Errorf("response should be returned with the error")
			}
		})
	}
}

func TestClient_Retry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, _ := New(Config{Retry: fastRetry()})
	if _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
}

func TestClient_NoRetryOnNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := New(Config{Retry: fastRetry()})
	_, err := c.Get(context.Background(), srv.URL)
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

func TestClient_CircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cb := DefaultCircuitBreakerConfig("test")
	cb.MaxFailures = 2
	cb.Timeout = time.Hour
	c, _ := New(Config{CircuitBreaker: cb})

	for i := 0; i < 2; i++ {
		_, _ = c.Get(context.Background(), srv.URL)
	}
	_, err := c.Get(context.Background(), srv.URL)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls to reach the server, got %d", calls.Load())
	}
	if c.Breaker().State() != resilience.StateOpen {
		t.Errorf("expected open state, got %s", c.Breaker().State())
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c, _ := New(Config{})
	_, err := c.Get(ctx, srv.URL)
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestClient_MaxBodySize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	c, _ := New(Config{MaxBodySize: 10})
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Body) != 10 {
		t.Errorf("expected body truncated to 10 bytes, got %d", len(resp.Body))
	}
}

func TestClient_InvalidURL(t *testing.T) {
	c, _ := New(Config{})
	_, err := c.Get(context.Background(), "://bad")
	var e *Error
	if !errors.As(err, &e) || e.Code != ErrCodeInvalidRequest {
		t.Fatalf("expected invalid request error, got %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second || cfg.MaxBodySize != 5<<20 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := (&Config{}).Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}
}
