// Package pathcache memoizes traveled routes between quantized endpoint
// pairs. Entries age out after a TTL and the cache is capacity-bounded with
// strict insertion-order eviction: reuse never refreshes an entry's place in
// the eviction queue.
package pathcache

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"mineflow/bot/internal/geo"
)

// Key identifies a (from, to) endpoint pair at whole-unit precision.
type Key string

// KeyFor derives the cache key from the floor-rounded integer coordinates of
// both endpoints. Positions within the same unit cell collide; that coarse
// reuse is the point of the cache.
func KeyFor(from, to geo.Vec3) Key {
	return Key(fmt.Sprintf("%d,%d,%d>%d,%d,%d",
		geo.FloorInt(from.X), geo.FloorInt(from.Y), geo.FloorInt(from.Z),
		geo.FloorInt(to.X), geo.FloorInt(to.Y), geo.FloorInt(to.Z)))
}

// Stats counts cache outcomes since construction.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type entry struct {
	key        Key
	route      []geo.Vec3
	insertedAt time.Time
}

// Cache is a TTL-bounded route memo. The zero value is not usable; call New.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      func() time.Time
	data     map[Key]*list.Element
	order    *list.List // front = newest insertion, back = oldest
	stats    Stats
}

// Option adjusts a Cache at construction time.
type Option func(*Cache)

// WithClock substitutes the time source, letting tests pin TTL boundaries.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a cache holding at most capacity entries, each reusable for ttl
// after insertion.
func New(ttl time.Duration, capacity int, opts ...Option) *Cache {
	c := &Cache{
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		data:     make(map[Key]*list.Element),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the route cached for the endpoint pair, if one exists and is
// younger than the TTL. Expired entries count as misses but stay in place;
// they leave only through capacity eviction or PurgeExpired. The returned
// slice is shared and must not be modified.
func (c *Cache) Get(from, to geo.Vec3) ([]geo.Vec3, bool) {
	key := KeyFor(from, to)
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.data[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.now().Sub(ent.insertedAt) >= c.ttl {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return ent.route, true
}

// Put stores a route for the endpoint pair. An existing entry for the same
// key is replaced and the pair re-enters the eviction queue as the newest
// insertion with a fresh timestamp. When full, the oldest-inserted entry is
// evicted first, expired or not.
func (c *Cache) Put(from, to geo.Vec3, route []geo.Vec3) {
	key := KeyFor(from, to)
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.data[key]; ok {
		c.order.Remove(elem)
		delete(c.data, key)
	}
	if c.capacity > 0 && c.order.Len() >= c.capacity {
		c.evictOldest()
	}

	stored := make([]geo.Vec3, len(route))
	copy(stored, route)
	c.data[key] = c.order.PushFront(&entry{
		key:        key,
		route:      stored,
		insertedAt: c.now(),
	})
}

// evictOldest drops the entry at the back of the insertion queue.
// Callers must hold the lock.
func (c *Cache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	ent := elem.Value.(*entry)
	c.order.Remove(elem)
	delete(c.data, ent.key)
	c.stats.Evictions++
}

// PurgeExpired removes every entry older than the TTL and reports how many
// were dropped. Nothing calls this implicitly; it exists for owners that want
// to bound memory between navigations.
func (c *Cache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		ent := elem.Value.(*entry)
		if c.now().Sub(ent.insertedAt) >= c.ttl {
			c.order.Remove(elem)
			delete(c.data, ent.key)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the outcome counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
