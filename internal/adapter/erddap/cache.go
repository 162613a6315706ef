package erddap

import (
	"context"
	"fmt"
	"sync"

	"github.com/cyclonelab/tc-sst-etl/internal/domain"
	"github.com/cyclonelab/tc-sst-etl/internal/observability"
)

// CachedSource wraps a RasterSource with an in-memory LRU cache.
// Consecutive fixes sit hours apart on overlapping 31-day windows, so a
// track of n fixes repeats most of its n*31 point queries.
type CachedSource struct {
	inner   domain.RasterSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a raster source.
func NewCachedSource(inner domain.RasterSource, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) Sample(ctx context.Context, q domain.RasterQuery) (float64, error) {
	key := fmt.Sprintf("%s|%s|%s|%.4f|%.4f",
		q.Dataset, q.Band, q.Date.UTC().Format("20060102"), q.Lat, q.Lon)

	if v, ok := c.cache.get(key); ok {
		c.metrics.RasterCache.WithLabelValues("hit").Inc()
		return v, nil
	}
	c.metrics.RasterCache.WithLabelValues("miss").Inc()

	v, err := c.inner.Sample(ctx, q)
	if err != nil {
		return v, err
	}
	// Only cache successes so a transient failure is not pinned for the
	// rest of the run.
	c.cache.put(key, v)
	return v, nil
}

// lruCache is a simple thread-safe LRU cache for raw sample values.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value float64
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value float64) {
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
