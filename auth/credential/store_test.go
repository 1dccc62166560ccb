package credential

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMemoryStore_PutGetContains(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if s.Contains(ctx, "alice") {
		t.Fatal("empty store should not contain alice")
	}
	if _, ok := s.Get(ctx, "alice"); ok {
		t.Fatal("Get on empty store should report absent")
	}

	s.Put(ctx, "alice", "h1")
	if !s.Contains(ctx, "alice") {
		t.Fatal("expected alice after Put")
	}
	if h, ok := s.Get(ctx, "alice"); !ok || h != "h1" {
		t.Fatalf("expected h1, got %q %v", h, ok)
	}

	s.Put(ctx, "alice", "h2")
	if h, _ := s.Get(ctx, "alice"); h != "h2" {
		t.Fatalf("Put should overwrite, got %q", h)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
}

func TestMemoryStore_PutIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if !s.PutIfAbsent(ctx, "alice", "h1") {
		t.Fatal("first PutIfAbsent should succeed")
	}
	if s.PutIfAbsent(ctx, "alice", "h2") {
		t.Fatal("second PutIfAbsent should fail")
	}
	if h, _ := s.Get(ctx, "alice"); h != "h1" {
		t.Fatalf("original hash must be kept, got %q", h)
	}
}

func TestMemoryStore_ConcurrentPutIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if s.PutIfAbsent(ctx, "alice", fmt.Sprintf("h%d", i)) {
				wins.Add(1)
			}
			s.Contains(ctx, "alice")
		}(i)
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins.Load())
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	a, b := NewMemoryStore(), NewMemoryStore()
	a.Put(ctx, "alice", "h")
	if b.Contains(ctx, "alice") {
		t.Fatal("stores must not share state")
	}
}
