package resilience

import (
	"errors"
	"sync"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream failed")

func newTestBreaker(maxFailures int) (*CircuitBreaker, *time.Time) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "example.com", MaxFailures: maxFailures, Timeout: time.Minute})
	cb.now = func() time.Time { return now }
	return cb, &now
}

func failN(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_ = cb.Execute(func() error { return errUpstream })
	}
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb, _ := newTestBreaker(3)

	failN(cb, 2)
	if cb.State() != StateClosed {
		t.Fatalf("expected closed after 2 failures, got %s", cb.State())
	}
	failN(cb, 1)
	if cb.State() != StateOpen {
		t.Fatalf("expected open after 3 failures, got %s", cb.State())
	}

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Errorf("expected fast failure while open, got %v (called=%v)", err, called)
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(3)
	failN(cb, 2)
	_ = cb.Execute(func() error { return nil })
	if cb.Failures() != 0 {
		t.Errorf("expected failures reset, got %d", cb.Failures())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	tests := []struct {
		name      string
		probeErr  error
		wantState State
	}{
		{"successful probe closes", nil, StateClosed},
		{"failed probe reopens", errUpstream, StateOpen},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cb, now := newTestBreaker(1)
			failN(cb, 1)

			*now = now.Add(time.Minute)
			if cb.State() != StateHalfOpen {
				t.Fatalf("expected half-open after timeout, got %s", cb.State())
			}

			_ = cb.Execute(func() error { return tc.probeErr })
			if cb.State() != tc.wantState {
				t.Errorf("expected %s, got %s", tc.wantState, cb.State())
			}
		})
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb, now := newTestBreaker(1)
	failN(cb, 1)
	*now = now.Add(time.Minute)

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = cb.Execute(func() error { <-release; return nil })
		close(done)
	}()

	// Wait for the probe to take the single half-open slot.
	deadline := time.After(time.Second)
	for {
		cb.mu.Lock()
		taken := cb.halfOpenCalls == 1
		cb.mu.Unlock()
		if taken {
			break
		}
		select {
		case <-deadline:
			t.Fatal("probe never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := cb.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("second probe should be rejected, got %v", err)
	}
	close(release)
	<-done
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "scraper",
		MaxFailures: 1,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})
	failN(cb, 1)
	cb.Reset()

	want := []string{"scraper:closed->open", "scraper:open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("expected %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], transitions[i])
		}
	}
}

func TestCircuitBreaker_ConcurrentAccess(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 1000})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = cb.Execute(func() error {
				if i%2 == 0 {
					return errUpstream
				}
				return nil
			})
		}(i)
	}
	wg.Wait()
	if cb.State() != StateClosed {
		t.Errorf("expected closed, got %s", cb.State())
	}
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{
		StateClosed:   "closed",
		StateOpen:     "open",
		StateHalfOpen: "half-open",
		State(42):     "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
