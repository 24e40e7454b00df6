// Package cache memoizes normalized upstream responses for a bounded time.
package cache

import (
	"context"
	"time"
)

// Store is a TTL-aware key/value backend. Values are opaque bytes; Cache
// handles encoding.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent or
	// its TTL has elapsed.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Len(ctx context.Context) (int, error)
}

// Entry is one cached value and the window it is fresh for
type Entry struct {
	Key       string
	Value     []byte
	CreatedAt time.Time
	TTL       time.Duration
}

// ExpiresAt returns the instant after which the entry is absent
func (e Entry) ExpiresAt() time.Time {
	return e.CreatedAt.Add(e.TTL)
}

// Expired reports whether a read at now must treat the entry as absent
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt())
}
