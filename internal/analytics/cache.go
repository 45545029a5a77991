package analytics

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment when the cached view structure changes to auto-invalidate
// old entries.
const CacheSchemaVersion = "1.0"

// cachedDayEntry wraps a global view with version metadata
type cachedDayEntry struct {
	Version  string           `json:"version"`
	View     *GlobalAnalytics `json:"view"`
	CachedAt time.Time        `json:"cached_at"`
}

// dayCache is an in-memory LRU over per-day global analytics views.
// Rollups are immutable once aggregated, so entries expire mostly as a
// guard around manual re-runs.
type dayCache struct {
	lru *expirable.LRU[string, *cachedDayEntry]
}

func newDayCache(size int, ttl time.Duration) *dayCache {
	return &dayCache{
		lru: expirable.NewLRU[string, *cachedDayEntry](size, nil, ttl),
	}
}

func (c *dayCache) Get(dateKey string) (*GlobalAnalytics, bool) {
	entry, found := c.lru.Get(dateKey)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(dateKey)
		return nil, false
	}
	return entry.View, true
}

func (c *dayCache) Set(dateKey string, view *GlobalAnalytics) {
	c.lru.Add(dateKey, &cachedDayEntry{
		Version:  CacheSchemaVersion,
		View:     view,
		CachedAt: time.Now(),
	})
}

func (c *dayCache) Invalidate(dateKey string) {
	c.lru.Remove(dateKey)
}
