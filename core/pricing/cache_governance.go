package pricing

import (
	"strings"
	"sync"
	"time"
)

// CacheEntry is a cached snapshot with its expiry
type CacheEntry struct {
	Key          string
	Table        *Table
	ContentHash  string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	AccessCount  int
	LastAccessed time.Time
}

// IsExpired checks if the entry has passed its TTL
func (e *CacheEntry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// CachePolicy defines cache behavior
type CachePolicy struct {
	// TTL for entries
	TTL time.Duration

	// Max entries before the oldest is evicted
	MaxEntries int
}

// DefaultCachePolicy keeps snapshots for five minutes
func DefaultCachePolicy() *CachePolicy {
	return &CachePolicy{
		TTL:        5 * time.Minute,
		MaxEntries: 256,
	}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Entries int `json:"entries"`
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
}

// Cache is a time-boxed snapshot cache. Writers win: Put replaces any
// entry for the key, and readers may see a stale snapshot until it
// expires or is invalidated.
type Cache struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]*CacheEntry
	hits       int
	misses     int
	now        func() time.Time
}

// NewCache creates a cache with the given policy
func NewCache(policy *CachePolicy) *Cache {
	if policy == nil {
		policy = DefaultCachePolicy()
	}
	return &Cache{
		ttl:        policy.TTL,
		maxEntries: policy.MaxEntries,
		entries:    make(map[string]*CacheEntry),
		now:        time.Now,
	}
}

// Get retrieves an entry if it has not expired
func (c *Cache) Get(key string) (*Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	now := c.now()
	if !exists || entry.IsExpired(now) {
		if exists {
			delete(c.entries, key)
		}
		c.misses++
		return nil, false
	}

	entry.AccessCount++
	entry.LastAccessed = now
	c.hits++
	return entry.Table, true
}

// Put stores a snapshot under key
func (c *Cache) Put(key string, t *Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = &CacheEntry{
		Key:          key,
		Table:        t,
		ContentHash:  t.Hash(),
		CreatedAt:    now,
		ExpiresAt:    now.Add(c.ttl),
		LastAccessed: now,
	}
	c.evictLocked()
}

func (c *Cache) evictLocked() {
	if c.maxEntries <= 0 {
		return
	}
	for len(c.entries) > c.maxEntries {
		var oldest *CacheEntry
		for _, e := range c.entries {
			if oldest == nil || e.CreatedAt.Before(oldest.CreatedAt) ||
				(e.CreatedAt.Equal(oldest.CreatedAt) && e.Key < oldest.Key) {
				oldest = e
			}
		}
		delete(c.entries, oldest.Key)
	}
}

// Invalidate removes an entry
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePrefix removes every entry whose key starts with prefix
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// Stats returns a copy of the counters
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}
