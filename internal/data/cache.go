package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"stock-backtest/internal/model"
)

// CacheEntry represents a cached quote-API response.
type CacheEntry struct {
	Response  *model.PriceSeriesResponse
	ExpiresAt time.Time
}

// ResponseCache is an in-memory TTL cache for quote responses. It is
// explicitly constructed and handed to the client that needs it; there is
// no process-wide instance. A nil *ResponseCache is a valid no-op cache.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResponseCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
	}
}

// Get returns a cached response if present and not expired.
func (c *ResponseCache) Get(key string) (*model.PriceSeriesResponse, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Response, true
}

// Set stores a response under key for the cache TTL.
func (c *ResponseCache) Set(key string, response *model.PriceSeriesResponse) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Response:  response,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Purge drops expired entries. Callers that keep a cache alive for a long
// time should invoke this periodically.
func (c *ResponseCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// CacheKey builds a deterministic key for a daily-bars query.
func CacheKey(q DailyBarsQuery) string {
	keyStr := fmt.Sprintf("%s:%s:%s",
		q.Symbol,
		q.Start.Format("2006-01-02"),
		q.End.Format("2006-01-02"),
	)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
