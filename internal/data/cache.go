package data

import (
	"sync"
	"time"

	"battery-arbitrage/internal/model"
)

type cacheEntry struct {
	points    []model.PricePoint
	expiresAt time.Time
}

// SeriesCache keeps loaded price series in memory, keyed by source.
// A nil *SeriesCache is a valid, always-missing cache. A ttl <= 0 keeps
// entries until they are invalidated.
type SeriesCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewSeriesCache(ttl time.Duration) *SeriesCache {
	return &SeriesCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a copy of the cached points when present and not expired.
func (c *SeriesCache) Get(key string) ([]model.PricePoint, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.expired(entry) {
		return nil, false
	}
	return append([]model.PricePoint(nil), entry.points...), true
}

func (c *SeriesCache) Set(key string, points []model.PricePoint) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := cacheEntry{points: append([]model.PricePoint(nil), points...)}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}
	c.store[key] = entry
}

func (c *SeriesCache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}

func (c *SeriesCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}

// Sweep removes expired entries and reports how many were dropped.
func (c *SeriesCache) Sweep() int {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.store {
		if c.expired(entry) {
			delete(c.store, key)
			removed++
		}
	}
	return removed
}

func (c *SeriesCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *SeriesCache) expired(e cacheEntry) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}
