package cache

import (
	"sync"
	"time"
)

type entry struct {
	payload  []byte
	storedAt time.Time
}

// Cache is an in-memory TTL cache for rendered response payloads, keyed by
// request shape. Expiry is lazy: no background eviction runs, but every
// write sweeps entries past their TTL so the map never outgrows one TTL
// window of distinct keys.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	now func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// GetOrCompute returns the live payload for key if present, otherwise runs
// compute, stores its result and returns it. The second return reports a
// cache hit. Concurrent misses on the same key may each run compute; the
// last result wins, which is harmless because compute is read-only.
func (c *Cache) GetOrCompute(key string, compute func() ([]byte, error)) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(e.storedAt) <= c.ttl {
		return e.payload, true, nil
	}

	payload, err := compute()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	now := c.now()
	for k, stored := range c.entries {
		if now.Sub(stored.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{payload: payload, storedAt: now}
	c.mu.Unlock()

	return payload, false, nil
}

// Size returns the number of entries currently held, live or stale.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
