package registry

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

// Cache stores resolved tenant descriptors keyed by identifier. Entries
// expire at a fixed wall-clock deadline set when they are written; a read
// never extends an entry's lifetime, so registry changes become visible
// within one TTL regardless of traffic.
type Cache interface {
	// Get returns the descriptor stored under key, or false on a miss.
	Get(ctx context.Context, key string) (*tenant.Tenant, bool)

	// Set stores the descriptor under key with the given TTL.
	Set(ctx context.Context, key string, t *tenant.Tenant, ttl time.Duration)

	// Delete removes a single key.
	Delete(ctx context.Context, key string)

	// Clear removes every entry.
	Clear(ctx context.Context)

	// Close releases resources held by the cache.
	Close() error
}

type cacheItem struct {
	tenant    *tenant.Tenant
	expiresAt time.Time
}

// memoryCache is the default in-process cache. Expired entries are dropped
// lazily on read and swept periodically by a janitor goroutine.
type memoryCache struct {
	mu     sync.RWMutex
	items  map[string]cacheItem
	stop   chan struct{}
	done   chan struct{}
	closed bool
}

const janitorInterval = time.Minute

// NewMemoryCache creates an in-process cache with background cleanup of
// expired entries. Call Close to stop the janitor.
func NewMemoryCache() Cache {
	c := &memoryCache{
		items: make(map[string]cacheItem),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string) (*tenant.Tenant, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expiresAt) {
		c.mu.Lock()
		// Another goroutine may have written a fresh entry meanwhile;
		// only drop the one we saw expire.
		if cur, ok := c.items[key]; ok && cur.expiresAt.Equal(item.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return item.tenant, true
}

func (c *memoryCache) Set(ctx context.Context, key string, t *tenant.Tenant, ttl time.Duration) {
	if t == nil || ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.items[key] = cacheItem{tenant: t, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *memoryCache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.items = make(map[string]cacheItem)
	c.mu.Unlock()
}

func (c *memoryCache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) removeExpired() {
	now := time.Now()
	c.mu.Lock()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
	c.mu.Unlock()
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// noopCache never stores anything, effectively disabling resolution caching.
type noopCache struct{}

// NewNoopCache returns a cache that caches nothing. Every resolution goes to
// the source, which keeps tests deterministic and lets deployments opt out
// of caching entirely.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) (*tenant.Tenant, bool) { return nil, false }

func (noopCache) Set(context.Context, string, *tenant.Tenant, time.Duration) {}

func (noopCache) Delete(context.Context, string) {}

func (noopCache) Clear(context.Context) {}

func (noopCache) Close() error { return nil }
