package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/kbukum/mp/errors"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastRetry(3), func(context.Context) (string, error) {
		calls++
		return "Example Domain", nil
	})
	if err != nil || got != "Example Domain" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastRetry(3)
	cfg.OnRetry = func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) }

	got, err := Retry(context.Background(), cfg, func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("connection reset")
		}
		return calls, nil
	})
	if err != nil || got != 3 {
		t.Fatalf("unexpected result %d, %v", got, err)
	}
	if len(retried) != 2 || retried[0] != 1 || retried[1] != 2 {
		t.Errorf("expected OnRetry for attempts 1 and 2, got %v", retried)
	}
}

func TestRetry_ReturnsLastError(t *testing.T) {
	calls := 0
	boom := errors.New("still failing")
	err := RetryFunc(context.Background(), fastRetry(3), func(context.Context) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"permanent", Permanent(errors.New("404 from upstream"))},
		{"non-retryable app error", apperrors.NotFound("Item", "1")},
		{"circuit open", ErrCircuitOpen},
		{"canceled", context.Canceled},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := RetryFunc(context.Background(), fastRetry(5), func(context.Context) error {
				calls++
				return tc.err
			})
			if calls != 1 {
				t.Errorf("expected a single attempt, got %d", calls)
			}
			if err == nil {
				t.Fatal("expected error")
			}
			var perm *permanentError
			if errors.As(err, &perm) {
				t.Error("Permanent wrapper should be removed from the returned error")
			}
		})
	}
}

func TestRetry_RetriesRetryableAppError(t *testing.T) {
	calls := 0
	_ = RetryFunc(context.Background(), fastRetry(2), func(context.Context) error {
		calls++
		return apperrors.ExternalServiceError("example.com", nil)
	})
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 10, InitialBackoff: 100 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	err := RetryFunc(ctx, cfg, func(context.Context) error {
		calls++
		return errors.New("unreachable")
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if calls >= 10 {
		t.Errorf("expected fewer than 10 calls, got %d", calls)
	}
}

func TestBackoffFor(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, BackoffFactor: 2}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{5, time.Second},
	}
	for _, tc := range tests {
		if got := backoffFor(tc.attempt, cfg); got != tc.want {
			t.Errorf("attempt %d: expected %v, got %v", tc.attempt, tc.want, got)
		}
	}
}

func TestRetryConfigApplyDefaults(t *testing.T) {
	var cfg RetryConfig
	cfg.ApplyDefaults()
	if cfg.MaxAttempts != 3 || cfg.BackoffFactor != 2 || cfg.RetryIf == nil {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
