package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// MemoryStore is a process-local Store bounded by entry count. When full,
// the least recently used entry is evicted; expired entries are dropped on
// read.
type MemoryStore struct {
	mu        sync.Mutex
	lru       *simplelru.LRU[string, Entry]
	now       func() time.Time
	evictions int64
}

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates a MemoryStore holding at most maxEntries values
func NewMemoryStore(maxEntries int, opts ...MemoryOption) (*MemoryStore, error) {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	l, err := simplelru.NewLRU[string, Entry](maxEntries, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru: %w", err)
	}
	s.lru = l

	return s, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if entry.Expired(s.now()) {
		s.lru.Remove(key)
		return nil, false, nil
	}

	return entry.Value, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := s.lru.Add(key, Entry{
		Key:       key,
		Value:     value,
		CreatedAt: s.now(),
		TTL:       ttl,
	})
	if evicted {
		s.evictions++
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lru.Remove(key)
	return nil
}

// Len counts stored entries, including expired ones not yet read
func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lru.Len(), nil
}

// Evictions returns how many entries were pushed out by the size bound
func (s *MemoryStore) Evictions() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.evictions
}
