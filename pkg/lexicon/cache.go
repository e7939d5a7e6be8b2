package lexicon

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// flushCache memoizes a pure function by key. When it reaches its limit it
// is emptied in one go rather than evicting entries one by one. Concurrent
// misses on the same key share a single computation.
type flushCache[V any] struct {
	name  string
	limit int

	mu    sync.RWMutex
	items map[string]V
	group singleflight.Group

	hits, misses, flushes atomic.Int64
}

func newFlushCache[V any](name string, limit int) *flushCache[V] {
	return &flushCache[V]{name: name, limit: limit, items: make(map[string]V)}
}

func (c *flushCache[V]) get(key string, compute func() V) V {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)

	res, _, _ := c.group.Do(key, func() (any, error) {
		v := compute()
		c.mu.Lock()
		if c.limit > 0 && len(c.items) >= c.limit {
			log.Debugf("%s cache reached %d entries, flushing", c.name, len(c.items))
			c.items = make(map[string]V)
			c.flushes.Add(1)
		}
		c.items[key] = v
		c.mu.Unlock()
		return v, nil
	})
	return res.(V)
}

func (c *flushCache[V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// CacheStats reports cache usage counters.
type CacheStats struct {
	Entries int   `msgpack:"entries"`
	Hits    int64 `msgpack:"hits"`
	Misses  int64 `msgpack:"misses"`
	Flushes int64 `msgpack:"flushes"`
}

func (c *flushCache[V]) stats() CacheStats {
	return CacheStats{
		Entries: c.len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Flushes: c.flushes.Load(),
	}
}
