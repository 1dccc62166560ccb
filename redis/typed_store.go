package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TypedStore stores JSON-encoded values of type V under keyPrefix.
type TypedStore[V any] struct {
	client    *Client
	keyPrefix string
}

// NewTypedStore creates a store whose keys are "<keyPrefix>:<key>".
func NewTypedStore[V any](client *Client, keyPrefix string) *TypedStore[V] {
	return &TypedStore[V]{client: client, keyPrefix: keyPrefix}
}

func (s *TypedStore[V]) fullKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

// Load returns the value at key, or (nil, nil) if it does not exist.
func (s *TypedStore[V]) Load(ctx context.Context, key string) (*V, error) {
	raw, err := s.client.Get(ctx, s.fullKey(key))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("typed store load %q: %w", key, err)
	}

	var val V
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		return nil, fmt.Errorf("typed store unmarshal %q: %w", key, err)
	}
	return &val, nil
}

// Save stores val at key. A zero ttl means no expiry.
func (s *TypedStore[V]) Save(ctx context.Context, key string, val *V, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("typed store marshal %q: %w", key, err)
	}
	if err := s.client.Set(ctx, s.fullKey(key), data, ttl); err != nil {
		return fmt.Errorf("typed store save %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *TypedStore[V]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)); err != nil {
		return fmt.Errorf("typed store delete %q: %w", key, err)
	}
	return nil
}
