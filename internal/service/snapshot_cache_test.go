package service

import (
	"academic_portal_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCacheTTL(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewSnapshotCache(300 * time.Second)
	cache.now = func() time.Time { return current }

	snapshot := &model.StudentSnapshot{StudentID: 7}
	cache.Set(7, snapshot)

	got, ok := cache.Get(7)
	require.True(t, ok)
	assert.Same(t, snapshot, got)

	// One second before expiry the entry is still served.
	current = current.Add(299 * time.Second)
	_, ok = cache.Get(7)
	assert.True(t, ok)

	// At exactly the TTL the entry is gone.
	current = current.Add(time.Second)
	_, ok = cache.Get(7)
	assert.False(t, ok)
}

func TestSnapshotCacheInvalidate(t *testing.T) {
	cache := NewSnapshotCache(time.Hour)
	cache.Set(1, &model.StudentSnapshot{StudentID: 1})
	cache.Set(2, &model.StudentSnapshot{StudentID: 2})

	cache.Invalidate(1)

	_, ok := cache.Get(1)
	assert.False(t, ok)
	_, ok = cache.Get(2)
	assert.True(t, ok)

	// Invalidating an absent entry is a no-op.
	cache.Invalidate(99)
}

func TestSnapshotCacheSweep(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewSnapshotCache(time.Minute)
	cache.now = func() time.Time { return current }

	cache.Set(1, &model.StudentSnapshot{StudentID: 1})
	current = current.Add(2 * time.Minute)
	cache.Set(2, &model.StudentSnapshot{StudentID: 2})

	cache.Sweep()

	cache.mu.RLock()
	defer cache.mu.RUnlock()
	assert.Len(t, cache.entries, 1)
	_, kept := cache.entries[2]
	assert.True(t, kept)
}
