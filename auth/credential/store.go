// Package credential keeps the username to password-hash mapping for
// registered principals.
package credential

import (
	"context"
	"sync"
)

// Store is the lookup contract used by the auth flow.
type Store interface {
	Put(ctx context.Context, username, hash string)
	PutIfAbsent(ctx context.Context, username, hash string) bool
	Get(ctx context.Context, username string) (string, bool)
	Contains(ctx context.Context, username string) bool
}

// MemoryStore is a process-local Store. Contents do not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	hashes map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hashes: make(map[string]string)}
}

// Put inserts or overwrites the hash for username.
func (s *MemoryStore) Put(_ context.Context, username, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[username] = hash
}

// PutIfAbsent stores hash only if username is unknown and reports whether
// it did.
func (s *MemoryStore) PutIfAbsent(_ context.Context, username, hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hashes[username]; ok {
		return false
	}
	s.hashes[username] = hash
	return true
}

func (s *MemoryStore) Get(_ context.Context, username string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.hashes[username]
	return hash, ok
}

func (s *MemoryStore) Contains(_ context.Context, username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hashes[username]
	return ok
}

// Len returns the number of stored principals.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hashes)
}
