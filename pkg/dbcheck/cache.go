package dbcheck

import (
	"container/list"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/formhandler/pkg/rules"
)

// DefaultCacheTTL is how long a cached count stays fresh.
const DefaultCacheTTL = time.Minute

type cacheEntry struct {
	key     string
	count   int64
	expires time.Time
}

// CachedCounter memoizes the counts of another Counter. Once capacity is
// reached the least recently used entry is evicted. Failed counts are not cached.
type CachedCounter struct {
	next     Counter
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
}

// CacheOption configures a CachedCounter.
type CacheOption func(*CachedCounter)

// WithCacheTTL sets the lifetime of a cached count. A non-positive ttl
// keeps entries until they are evicted.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *CachedCounter) { c.ttl = ttl }
}

// WithCacheClock replaces the clock used for expiry.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *CachedCounter) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCachedCounter wraps next. It panics if capacity is not positive.
func NewCachedCounter(next Counter, capacity int, opts ...CacheOption) *CachedCounter {
	if capacity <= 0 {
		panic("dbcheck: cache capacity must be positive")
	}
	c := &CachedCounter{
		next:     next,
		capacity: capacity,
		ttl:      DefaultCacheTTL,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Count returns the cached count for model and query, asking the wrapped
// counter on a miss.
func (c *CachedCounter) Count(ctx context.Context, model string, query Query) (int64, error) {
	key := cacheKey(model, query)
	if n, ok := c.get(key); ok {
		return n, nil
	}

	n, err := c.next.Count(ctx, model, query)
	if err != nil {
		return 0, err
	}
	c.put(key, n)
	return n, nil
}

// Invalidate drops every cached count of model.
func (c *CachedCounter) Invalidate(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := model + "\x00"
	for key, elem := range c.items {
		if key == model || strings.HasPrefix(key, prefix) {
			c.remove(elem)
		}
	}
}

// Len returns the number of cached entries, expired ones included.
func (c *CachedCounter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

func (c *CachedCounter) get(key string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return 0, false
	}
	entry := elem.Value.(*cacheEntry)
	if c.ttl > 0 && !c.now().Before(entry.expires) {
		c.remove(elem)
		return 0, false
	}
	c.eviction.MoveToFront(elem)
	return entry.count, true
}

func (c *CachedCounter) put(key string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.count = n
		entry.expires = expires
		c.eviction.MoveToFront(elem)
		return
	}

	c.items[key] = c.eviction.PushFront(&cacheEntry{key: key, count: n, expires: expires})
	if c.eviction.Len() > c.capacity {
		if oldest := c.eviction.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

func (c *CachedCounter) remove(elem *list.Element) {
	c.eviction.Remove(elem)
	delete(c.items, elem.Value.(*cacheEntry).key)
}

// cacheKey renders model and query with sorted keys so equal queries share an entry.
func cacheKey(model string, query Query) string {
	var b strings.Builder
	b.WriteString(model)
	for _, k := range slices.Sorted(maps.Keys(query)) {
		b.WriteByte(0)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(rules.Stringify(query[k]))
	}
	return b.String()
}
