package lowpoly

import (
	"sync"
	"sync/atomic"
)

// faceKey identifies a triangle independently of its vertex order.
type faceKey [3]Point

func newFaceKey(a, b, c Point) faceKey {
	if b.Less(a) {
		a, b = b, a
	}
	if c.Less(b) {
		b, c = c, b
		if b.Less(a) {
			a, b = b, a
		}
	}
	return faceKey{a, b, c}
}

type cacheEntry struct {
	once  sync.Once
	group PixelGroup
}

// FitnessCache memoizes pixel group evaluations by triangle.
//
// It is safe for concurrent use: concurrent callers asking for the same
// triangle share a single evaluation.
type FitnessCache struct {
	mu      sync.Mutex
	entries map[faceKey]*cacheEntry

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewFitnessCache creates an empty cache.
func NewFitnessCache() *FitnessCache {
	return &FitnessCache{entries: make(map[faceKey]*cacheEntry)}
}

// GetOrCompute returns the evaluation stored for the triangle (a, b, c), in any
// vertex order, calling compute only when no evaluation exists yet.
func (c *FitnessCache) GetOrCompute(a, b, d Point, compute func() PixelGroup) PixelGroup {
	key := newFaceKey(a, b, d)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	computed := false
	e.once.Do(func() {
		e.group = compute()
		computed = true
	})
	if computed {
		c.misses.Add(1)
	} else {
		c.hits.Add(1)
	}
	return e.group
}

// Len returns the number of cached triangles.
func (c *FitnessCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CacheStats holds cache access counters.
type CacheStats struct {
	Hits, Misses uint64
}

// Stats returns the access counters.
func (c *FitnessCache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
