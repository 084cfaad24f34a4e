package registry

import (
	"log/slog"
	"time"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithTTL overrides the cache lifetime for resolved descriptors.
// Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithCache replaces the default in-process cache, e.g. with a RedisCache
// shared across instances or a NoopCache in tests.
func WithCache(c Cache) Option {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithLogger sets the logger for lookup failures.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}
