package lru

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable"
)

// decisionCache is an LRU-backed disposable.DecisionCache with hit, miss and
// eviction counters.
type decisionCache struct {
	lru       *lru.Cache[string, bool]
	capacity  int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// disabledCache always misses.
type disabledCache struct{}

// New creates a DecisionCache holding up to size decisions. A size <= 0
// returns a disabled cache.
func New(size int) (disposable.DecisionCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	dc := &decisionCache{capacity: size}
	// NewWithEvict also observes Purge-induced evictions.
	cache, err := lru.NewWithEvict(size, func(string, bool) {
		dc.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	dc.lru = cache
	return dc, nil
}

func (c *decisionCache) Get(name string) (bool, bool) {
	if v, ok := c.lru.Get(name); ok {
		c.hits.Add(1)
		return v, true
	}
	c.misses.Add(1)
	return false, false
}

func (c *decisionCache) Put(name string, disposable bool) {
	c.lru.Add(name, disposable)
}

func (c *decisionCache) Len() int { return c.lru.Len() }

func (c *decisionCache) Purge() { c.lru.Purge() }

func (c *decisionCache) Stats() disposable.CacheStats {
	return disposable.CacheStats{
		Capacity:  c.capacity,
		Size:      c.lru.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

func (d *disabledCache) Get(string) (bool, bool)      { return false, false }
func (d *disabledCache) Put(string, bool)             {}
func (d *disabledCache) Len() int                     { return 0 }
func (d *disabledCache) Purge()                       {}
func (d *disabledCache) Stats() disposable.CacheStats { return disposable.CacheStats{} }

var _ disposable.DecisionCache = (*decisionCache)(nil)
var _ disposable.DecisionCache = (*disabledCache)(nil)
