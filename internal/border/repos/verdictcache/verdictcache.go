// Package verdictcache provides an LRU-backed inspector.VerdictCache with
// basic hit/miss/eviction metrics. Inspections are pure functions of the
// registry state and the submission, so memoizing between ingests is sound.
package verdictcache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/grestin/checkpoint/internal/border/services/inspector"
)

// verdictCache is the LRU-backed implementation.
type verdictCache struct {
	lru       *lru.Cache[string, string]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache is a no-op VerdictCache used when size <= 0.
type disabledCache struct{}

// New creates a VerdictCache with the given capacity. If size <= 0, a
// disabled no-op cache is returned that always misses and tracks no metrics.
func New(size int) (inspector.VerdictCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	var vc verdictCache
	// NewWithEvict observes evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(string, string) {
		atomic.AddUint64(&vc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	vc.lru = cache
	return &vc, nil
}

// Get looks up a verdict by fingerprint, counting hits and misses.
func (c *verdictCache) Get(key string) (string, bool) {
	if v, ok := c.lru.Get(key); ok {
		atomic.AddUint64(&c.hits, 1)
		return v, true
	}
	atomic.AddUint64(&c.misses, 1)
	return "", false
}

// Put stores a verdict by fingerprint.
func (c *verdictCache) Put(key, verdict string) {
	c.lru.Add(key, verdict)
}

// Len returns the number of cached verdicts.
func (c *verdictCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the callback.
func (c *verdictCache) Purge() { c.lru.Purge() }

// Stats returns cumulative hit/miss/eviction counters.
func (c *verdictCache) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

func (d *disabledCache) Get(string) (string, bool) { return "", false }

func (d *disabledCache) Put(string, string) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ inspector.VerdictCache = (*verdictCache)(nil)
var _ inspector.VerdictCache = (*disabledCache)(nil)
