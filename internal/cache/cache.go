package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jjenkins/civiq/internal/logging"
)

// Outcome records how a Compute call was answered
type Outcome string

const (
	Hit    Outcome = "HIT"
	Miss   Outcome = "MISS"
	Bypass Outcome = "BYPASS"
)

// Stats is a snapshot of cache counters
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Shared      int64 `json:"shared"`
	Stores      int64 `json:"stores"`
	StoreErrors int64 `json:"storeErrors"`
	Entries     int   `json:"entries"`
}

// Cache memoizes JSON-encodable values in a Store. Concurrent misses for the
// same key share a single producer call.
type Cache struct {
	store Store
	group singleflight.Group

	hits        atomic.Int64
	misses      atomic.Int64
	shared      atomic.Int64
	stores      atomic.Int64
	storeErrors atomic.Int64
}

// New creates a Cache over store
func New(store Store) *Cache {
	return &Cache{store: store}
}

// Get returns the raw value for key. Store failures read as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logging.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return value, ok
}

// Set stores value under key for ttl. Store failures are logged and dropped.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		c.storeErrors.Add(1)
		logging.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	c.stores.Add(1)
}

// Delete removes key
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// Stats returns the current counters
func (c *Cache) Stats(ctx context.Context) Stats {
	entries, err := c.store.Len(ctx)
	if err != nil {
		logging.Warn("Cache size unavailable", zap.Error(err))
	}

	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Shared:      c.shared.Load(),
		Stores:      c.stores.Load(),
		StoreErrors: c.storeErrors.Load(),
		Entries:     entries,
	}
}

// Request describes one memoized lookup
type Request struct {
	Key string
	TTL time.Duration
	// Bypass skips the read but still stores the fresh value
	Bypass bool
}

// Producer computes a value on a miss. cacheable=false returns the value to
// the caller without storing it.
type Producer[T any] func(ctx context.Context) (value T, cacheable bool, err error)

// GetOrCompute returns the cached value for key or invokes producer and
// stores its result for ttl. A producer error is returned and nothing is
// stored.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, producer func(ctx context.Context) (T, error)) (T, Outcome, error) {
	return Compute(ctx, c, Request{Key: key, TTL: ttl}, func(ctx context.Context) (T, bool, error) {
		v, err := producer(ctx)
		return v, true, err
	})
}

// Compute is GetOrCompute with bypass and non-cacheable results. When the
// producer fails, the value it returned is handed to every caller along
// with the error.
func Compute[T any](ctx context.Context, c *Cache, req Request, produce Producer[T]) (T, Outcome, error) {
	var zero T

	if !req.Bypass {
		if raw, ok := c.Get(ctx, req.Key); ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				c.hits.Add(1)
				return v, Hit, nil
			}
			logging.Warn("Discarding undecodable cache entry", zap.String("key", req.Key))
		}
	}

	c.misses.Add(1)

	raw, err, shared := c.group.Do(req.Key, func() (any, error) {
		v, cacheable, err := produce(ctx)
		if err != nil {
			// The value travels with the error so every caller of the
			// flight sees the same payload.
			encoded, encErr := json.Marshal(v)
			if encErr != nil {
				return nil, err
			}
			return encoded, err
		}

		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value for %s: %w", req.Key, err)
		}

		if cacheable {
			c.Set(ctx, req.Key, encoded, req.TTL)
		}

		return encoded, nil
	})
	if shared {
		c.shared.Add(1)
	}
	if err != nil {
		var v T
		if encoded, ok := raw.([]byte); ok {
			_ = json.Unmarshal(encoded, &v)
		}
		return v, Miss, err
	}

	// Each caller decodes its own copy so shared results never alias.
	var v T
	if err := json.Unmarshal(raw.([]byte), &v); err != nil {
		return zero, Miss, fmt.Errorf("failed to decode value for %s: %w", req.Key, err)
	}

	if req.Bypass {
		return v, Bypass, nil
	}
	return v, Miss, nil
}
