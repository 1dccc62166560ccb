package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBulkhead_LimitsConcurrency(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 2, MaxWait: -1})

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Execute(context.Background(), func() error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	if peak.Load() > 2 {
		t.Errorf("expected at most 2 concurrent, saw %d", peak.Load())
	}
	if b.InUse() != 0 || b.Available() != 2 {
		t.Errorf("expected all slots free, in use %d available %d", b.InUse(), b.Available())
	}
}

func TestBulkhead_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		maxWait time.Duration
		ctx     func() (context.Context, context.CancelFunc)
		want    error
	}{
		{"full fails at once", 0, func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }, ErrBulkheadFull},
		{"wait times out", 10 * time.Millisecond, func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }, ErrBulkheadTimeout},
		{"wait for ctx", -1, func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 10*time.Millisecond)
		}, context.DeadlineExceeded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rejected := 0
			b := NewBulkhead(BulkheadConfig{Name: "worker", MaxConcurrent: 1, MaxWait: tc.maxWait, OnReject: func(string) { rejected++ }})
			if err := b.Acquire(context.Background()); err != nil {
				t.Fatalf("first acquire: %v", err)
			}
			defer b.Release()

			ctx, cancel := tc.ctx()
			defer cancel()
			err := b.Execute(ctx, func() error {
				t.Error("fn should not run")
				return nil
			})
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if rejected != 1 {
				t.Errorf("expected OnReject once, got %d", rejected)
			}
		})
	}
}

func TestBulkhead_WaitsForSlot(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1, MaxWait: time.Second})
	if err := b.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		b.Release()
	}()

	ran := false
	if err := b.Execute(context.Background(), func() error { ran = true; return nil }); err != nil {
		t.Fatalf("expected slot after release, got %v", err)
	}
	if !ran {
		t.Error("fn did not run")
	}
}
