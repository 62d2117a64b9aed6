package ttlcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsLiveValue(t *testing.T) {
	m := New[string, int](10)
	m.Set("a", 1, time.Minute)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestGetMissesUnknownKey(t *testing.T) {
	m := New[string, int](10)

	_, ok := m.Get("missing")
	assert.False(t, ok)
}

func TestExpiredEntryIsReclaimedOnRead(t *testing.T) {
	now := time.Now()
	m := New[string, int](10)
	m.nowFunc = func() time.Time { return now }

	m.Set("a", 1, time.Minute)

	now = now.Add(2 * time.Minute)
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestSetReplacesValueAndExpiry(t *testing.T) {
	now := time.Now()
	m := New[string, int](10)
	m.nowFunc = func() time.Time { return now }

	m.Set("a", 1, time.Minute)
	now = now.Add(50 * time.Second)
	m.Set("a", 2, time.Minute)
	now = now.Add(30 * time.Second)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Len())
}

func TestCapacityEvictsOldestInserted(t *testing.T) {
	m := New[string, int](3)
	m.Set("a", 1, time.Minute)
	m.Set("b", 2, time.Minute)
	m.Set("c", 3, time.Minute)
	m.Set("d", 4, time.Minute)

	_, ok := m.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	for _, key := range []string{"b", "c", "d"} {
		_, ok := m.Get(key)
		assert.True(t, ok, "key %q should survive", key)
	}
}

func TestCapacityEvictionSkipsReclaimedKeys(t *testing.T) {
	now := time.Now()
	m := New[string, int](2)
	m.nowFunc = func() time.Time { return now }

	m.Set("a", 1, time.Second)
	m.Set("b", 2, time.Minute)

	// Reclaim "a" lazily, leaving its key stale in the insertion order.
	now = now.Add(time.Minute)
	_, ok := m.Get("a")
	require.False(t, ok)

	m.Set("c", 3, time.Minute)
	m.Set("d", 4, time.Minute)

	_, ok = m.Get("b")
	assert.False(t, ok, "eviction should drop the oldest live entry, not the stale key")
	_, ok = m.Get("c")
	assert.True(t, ok)
	_, ok = m.Get("d")
	assert.True(t, ok)
}

func TestCleanupReportsExpiredCount(t *testing.T) {
	now := time.Now()
	m := New[string, int](10)
	m.nowFunc = func() time.Time { return now }

	m.Set("a", 1, time.Second)
	m.Set("b", 2, time.Second)
	m.Set("c", 3, time.Hour)

	now = now.Add(time.Minute)
	assert.Equal(t, 2, m.Cleanup())
	assert.Equal(t, 1, m.Len())
}

func TestDelete(t *testing.T) {
	m := New[string, int](10)
	m.Set("a", 1, time.Minute)
	m.Delete("a")

	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestZeroCapacityFallsBackToDefault(t *testing.T) {
	m := New[int, int](0)
	for i := 0; i < DefaultCapacity; i++ {
		m.Set(i, i, time.Minute)
	}
	assert.Equal(t, DefaultCapacity, m.Len())

	m.Set(DefaultCapacity, DefaultCapacity, time.Minute)
	assert.Equal(t, DefaultCapacity, m.Len())
}

func TestConcurrentAccess(t *testing.T) {
	m := New[string, int](100)
	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%50)
				m.Set(key, g, time.Minute)
				m.Get(key)
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
