package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store, err := NewMemoryStore(10, WithClock(clock.Now))
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "district:MI-12", []byte(`{"state":"MI"}`), time.Hour))

	value, ok, err := store.Get(ctx, "district:MI-12")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"state":"MI"}`, string(value))

	clock.Advance(time.Hour)
	_, ok, _ = store.Get(ctx, "district:MI-12")
	assert.True(t, ok, "entry is fresh up to and including createdAt+ttl")

	clock.Advance(time.Millisecond)
	_, ok, _ = store.Get(ctx, "district:MI-12")
	assert.False(t, ok)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "expired entry is dropped on read")
}

func TestMemoryStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store, err := NewMemoryStore(10, WithClock(clock.Now))
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "k", []byte("1"), time.Minute))
	clock.Advance(50 * time.Second)
	require.NoError(t, store.Set(ctx, "k", []byte("2"), time.Minute))
	clock.Advance(50 * time.Second)

	value, ok, _ := store.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "2", string(value))
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(2)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "a", []byte("a"), time.Hour))
	require.NoError(t, store.Set(ctx, "b", []byte("b"), time.Hour))
	_, _, _ = store.Get(ctx, "a")
	require.NoError(t, store.Set(ctx, "c", []byte("c"), time.Hour))

	_, ok, _ := store.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "a")
	assert.True(t, ok)
	_, ok, _ = store.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, int64(1), store.Evictions())
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(2)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "a", []byte("a"), time.Hour))
	require.NoError(t, store.Delete(ctx, "a"))

	_, ok, _ := store.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, int64(0), store.Evictions())
}

func TestNewMemoryStore_InvalidSize(t *testing.T) {
	_, err := NewMemoryStore(0)
	assert.Error(t, err)
}
