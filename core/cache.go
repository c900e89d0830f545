package core

import "sync"

const defaultCacheEntries = 512

// PageCache keeps rendered responses in memory. Once full, new keys are
// not stored until Clear is called.
type PageCache struct {
	mu      sync.RWMutex
	max     int
	entries map[string][]byte
}

func NewPageCache(max int) *PageCache {
	if max <= 0 {
		max = defaultCacheEntries
	}
	return &PageCache{
		max:     max,
		entries: make(map[string][]byte),
	}
}

func (c *PageCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	body, ok := c.entries[key]
	return body, ok
}

func (c *PageCache) Set(key string, body []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.max {
		return false
	}
	c.entries[key] = body
	return true
}

func (c *PageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string][]byte)
	c.mu.Unlock()
}

func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
