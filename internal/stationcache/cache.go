// Package stationcache memoizes station resolution by raw station string.
package stationcache

import (
	"sync"

	"github.com/couchcryptid/incident-data-etl/internal/domain"
	"github.com/couchcryptid/incident-data-etl/internal/observability"
)

// CachedResolver wraps a StationResolver with an in-memory LRU cache keyed by
// the raw station string.
type CachedResolver struct {
	inner   domain.StationResolver
	cache   *lruCache
	metrics *observability.Metrics
}

// New creates a cache decorator around a resolver. metrics may be nil.
func New(inner domain.StationResolver, maxEntries int, metrics *observability.Metrics) *CachedResolver {
	return &CachedResolver{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// Resolve implements domain.StationResolver.
func (c *CachedResolver) Resolve(raw string) domain.Resolution {
	if res, ok := c.cache.get(raw); ok {
		c.observe("hit", res)
		return res
	}
	res := c.inner.Resolve(raw)
	c.cache.put(raw, res)
	c.observe("miss", res)
	return res
}

// Len reports the number of cached entries.
func (c *CachedResolver) Len() int {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	return len(c.cache.entries)
}

func (c *CachedResolver) observe(result string, res domain.Resolution) {
	if c.metrics == nil {
		return
	}
	c.metrics.ResolverCache.WithLabelValues(result).Inc()
	c.metrics.StationResolutions.WithLabelValues(string(res.Method)).Inc()
}

// lruCache is a simple thread-safe LRU cache for resolutions.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Resolution
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Resolution, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Resolution{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
