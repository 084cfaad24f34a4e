package registry

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

// DefaultCacheTTL bounds how long a registry change (suspension, credential
// rotation) can stay invisible to resolution.
const DefaultCacheTTL = 5 * time.Minute

// Resolver answers tenant lookups through a TTL cache in front of a Source.
//
// Every successful resolution is cached under both of the tenant's keys (ID
// and subdomain) with the same TTL, so a request arriving by subdomain warms
// the cache for requests arriving by ID and vice versa. Failed resolutions
// are never cached: a tenant activated a moment after a miss resolves on the
// very next request.
type Resolver struct {
	source Source
	cache  Cache
	ttl    time.Duration
	log    *slog.Logger
}

// NewResolver wires a resolver over the given source. Without options it
// uses a fresh in-process cache and the default TTL.
func NewResolver(source Source, opts ...Option) *Resolver {
	r := &Resolver{
		source: source,
		ttl:    DefaultCacheTTL,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewMemoryCache()
	}
	return r
}

// Resolve returns the active tenant matching the identifier, from cache when
// possible. Concurrent misses for the same identifier may each query the
// source; the extra reads are harmless and the winners all cache the same
// descriptor.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, tenant.ErrInvalidIdentifier
	}

	if t, ok := r.cache.Get(ctx, identifier); ok {
		return t, nil
	}

	t, err := r.source.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			r.log.DebugContext(ctx, "tenant not resolved", "identifier", identifier, "error", err)
		} else {
			r.log.WarnContext(ctx, "tenant lookup failed", "identifier", identifier, "error", err)
		}
		return nil, err
	}

	r.cache.Set(ctx, t.ID.String(), t, r.ttl)
	if t.Subdomain != "" {
		r.cache.Set(ctx, t.Subdomain, t, r.ttl)
	}
	return t, nil
}

// Invalidate drops the cached descriptor reachable through the identifier.
// Both of the tenant's keys are removed, so a suspension invalidated by
// subdomain also stops resolution by ID.
func (r *Resolver) Invalidate(ctx context.Context, identifier string) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return
	}

	if t, ok := r.cache.Get(ctx, identifier); ok {
		r.cache.Delete(ctx, t.ID.String())
		if t.Subdomain != "" {
			r.cache.Delete(ctx, t.Subdomain)
		}
		return
	}
	r.cache.Delete(ctx, identifier)
}

// InvalidateAll empties the cache. Use after bulk registry changes.
func (r *Resolver) InvalidateAll(ctx context.Context) {
	r.cache.Clear(ctx)
}

// TTL reports the configured cache lifetime.
func (r *Resolver) TTL() time.Duration {
	return r.ttl
}

// Close releases the cache.
func (r *Resolver) Close() error {
	return r.cache.Close()
}
