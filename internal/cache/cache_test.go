package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetThenGet(t *testing.T) {
	c := NewMemoryCache()

	c.Set("k", []string{"a", "b"}, DefaultTTL)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestMemoryCache_ExpiredEntryIsEvictedOnRead(t *testing.T) {
	current := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCacheWithClock(func() time.Time { return current })

	c.Set("k", "value", 15*time.Minute)

	// Still valid just before the TTL boundary.
	current = current.Add(15*time.Minute - time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	// At the boundary the entry is expired and removed.
	current = current.Add(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_GetMissingKey(t *testing.T) {
	c := NewMemoryCache()

	_, ok := c.Get("never-set")
	assert.False(t, ok)
}

func TestMemoryCache_CleanupSweepsOnlyExpired(t *testing.T) {
	current := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCacheWithClock(func() time.Time { return current })

	c.Set("short", 1, 5*time.Minute)
	c.Set("long", 2, 15*time.Minute)

	current = current.Add(10 * time.Minute)
	c.Cleanup()

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("long")
	assert.True(t, ok)
}

func TestMemoryCache_SetOverwritesEntryAndTTL(t *testing.T) {
	current := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCacheWithClock(func() time.Time { return current })

	c.Set("k", "old", 5*time.Minute)
	current = current.Add(4 * time.Minute)
	c.Set("k", "new", 5*time.Minute)

	// The rewrite restarts the TTL window.
	current = current.Add(4 * time.Minute)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}
