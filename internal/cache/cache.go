// Package cache provides the process-wide TTL cache that shields the
// database from repeated identical reads (provider search, highlight lists,
// avatar catalog).  It is never a source of truth: every value it holds can
// be reproduced by re-querying storage, and a miss simply falls through to
// the database.  One instance is constructed at startup and injected into
// the handlers that need it.
package cache

import (
    "sync"
    "time"
)

type entry struct {
    value     any
    expiresAt time.Time
}

// Cache is a bounded in-memory key/value store with per-entry expiry.  It
// is safe for concurrent use; a single RWMutex around the backing map is
// enough because entries are immutable once set until overwritten or
// evicted.
type Cache struct {
    mu      sync.RWMutex
    store   map[string]entry
    maxSize int
}

// New returns a Cache holding at most maxSize entries.  A non-positive
// maxSize falls back to 1000.
func New(maxSize int) *Cache {
    if maxSize <= 0 {
        maxSize = 1000
    }
    return &Cache{
        store:   make(map[string]entry),
        maxSize: maxSize,
    }
}

// Get returns the value stored under key.  A read past the entry's expiry
// deletes it and reports a miss, so no background sweep is required for
// correctness.
func (c *Cache) Get(key string) (any, bool) {
    c.mu.RLock()
    e, ok := c.store[key]
    c.mu.RUnlock()
    if !ok {
        return nil, false
    }
    if time.Now().After(e.expiresAt) {
        c.mu.Lock()
        // Re-check under the write lock; another goroutine may have
        // overwritten the key with a fresh entry meanwhile.
        if cur, ok := c.store[key]; ok && time.Now().After(cur.expiresAt) {
            delete(c.store, key)
        }
        c.mu.Unlock()
        return nil, false
    }
    return e.value, true
}

// Set stores value under key for the given TTL.  When the cache is at
// capacity one arbitrary existing entry is evicted first; callers must not
// depend on which.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
    c.mu.Lock()
    defer c.mu.Unlock()
    if _, exists := c.store[key]; !exists && len(c.store) >= c.maxSize {
        for k := range c.store {
            delete(c.store, k)
            break
        }
    }
    c.store[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes key from the cache.  Deleting an absent key is a no-op.
func (c *Cache) Delete(key string) {
    c.mu.Lock()
    delete(c.store, key)
    c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
    c.mu.Lock()
    c.store = make(map[string]entry)
    c.mu.Unlock()
}

// Prune removes all expired entries.  Expiry is already enforced lazily on
// Get; Prune only reclaims memory for entries nobody reads anymore and may
// be called opportunistically from a ticker.
func (c *Cache) Prune() {
    now := time.Now()
    c.mu.Lock()
    for k, e := range c.store {
        if now.After(e.expiresAt) {
            delete(c.store, k)
        }
    }
    c.mu.Unlock()
}

// Len reports the current number of entries, expired or not.
func (c *Cache) Len() int {
    c.mu.RLock()
    defer c.mu.RUnlock()
    return len(c.store)
}
