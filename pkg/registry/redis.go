package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

// DefaultRedisPrefix namespaces cache keys in a shared Redis.
const DefaultRedisPrefix = "tenant:"

// RedisCache shares resolved descriptors across processes, so a tenant
// resolved by one instance is warm on all of them. Descriptors are stored as
// JSON under prefixed keys with Redis-side TTL expiry.
//
// Descriptors carry database credentials, so point this cache only at a
// Redis the platform trusts (ACLs, private network).
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache wraps an existing Redis client. An empty prefix falls back
// to DefaultRedisPrefix. The cache takes ownership of the client: Close
// closes it.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

// Get returns the cached descriptor, or a miss. Redis failures and corrupt
// payloads degrade to a miss: the resolver falls through to the source, so a
// broken cache slows resolution down instead of breaking it.
func (c *RedisCache) Get(ctx context.Context, key string) (*tenant.Tenant, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var t tenant.Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (c *RedisCache) Set(ctx context.Context, key string, t *tenant.Tenant, ttl time.Duration) {
	if t == nil || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	_ = c.client.Del(ctx, c.prefix+key).Err()
}

// Clear scans and removes every key under the prefix. SCAN keeps Redis
// responsive on large keyspaces where KEYS would block.
func (c *RedisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
