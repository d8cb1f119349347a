package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/pkg/monitoring"
	"sync"
	"time"
)

// SnapshotCache memoizes per-student analytics snapshots in process memory.
//
// A hit returns the prior snapshot unchanged until the TTL expires, so
// read-your-writes is NOT guaranteed inside the TTL window. Writes that
// change graded state call Invalidate explicitly; everything else rides out
// the TTL. Concurrent misses for the same student may recompute redundantly
// (no single-flight); recomputation is idempotent and cheap.
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[uint]snapshotEntry
	ttl     time.Duration

	now func() time.Time // swapped in tests
}

type snapshotEntry struct {
	snapshot   *model.StudentSnapshot
	computedAt time.Time
}

func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[uint]snapshotEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *SnapshotCache) Get(studentID uint) (*model.StudentSnapshot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[studentID]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.computedAt) >= c.ttl {
		monitoring.SnapshotCacheCounter.WithLabelValues("miss").Inc()
		return nil, false
	}
	monitoring.SnapshotCacheCounter.WithLabelValues("hit").Inc()
	return entry.snapshot, true
}

func (c *SnapshotCache) Set(studentID uint, snapshot *model.StudentSnapshot) {
	c.mu.Lock()
	c.entries[studentID] = snapshotEntry{snapshot: snapshot, computedAt: c.now()}
	c.mu.Unlock()
}

func (c *SnapshotCache) Invalidate(studentID uint) {
	c.mu.Lock()
	delete(c.entries, studentID)
	c.mu.Unlock()
}

// Sweep drops expired entries so the map does not grow with every student
// ever queried. Called from a background ticker.
func (c *SnapshotCache) Sweep() {
	now := c.now()
	c.mu.Lock()
	for id, entry := range c.entries {
		if now.Sub(entry.computedAt) >= c.ttl {
			delete(c.entries, id)
		}
	}
	c.mu.Unlock()
}
