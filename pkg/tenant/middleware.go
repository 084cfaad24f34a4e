package tenant

import (
	"context"
	"net/http"
	"strings"
)

// LookupFunc resolves a tenant identifier (ID or subdomain) to its
// descriptor. registry.Resolver.Resolve and registry.Client.GetByIdentifier
// both satisfy it.
type LookupFunc func(ctx context.Context, identifier string) (*Tenant, error)

// IdentifierFunc extracts the tenant identifier from an inbound request.
// An empty result means the request carries no tenant identifier.
type IdentifierFunc func(r *http.Request) string

// HeaderIdentifier reads the identifier from the named header.
// Defaults to "X-Tenant-ID" when name is empty.
func HeaderIdentifier(name string) IdentifierFunc {
	if name == "" {
		name = "X-Tenant-ID"
	}
	return func(r *http.Request) string {
		return strings.TrimSpace(r.Header.Get(name))
	}
}

// Middleware resolves the request's tenant and binds it to a fresh request
// scope stored in the request context. The scope is cleared when the request
// finishes, whether the handler returned normally, wrote an error, or
// panicked.
//
// Requests without an identifier proceed with an empty scope; protect routes
// that must have one with RequireTenant. Reserved identifiers (see
// WithReservedIdentifiers) are recognized before any registry work and also
// proceed unbound.
func Middleware(lookup LookupFunc, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			scope := NewScope()
			defer scope.Clear()
			r = r.WithContext(WithScope(r.Context(), scope))

			identifier := cfg.identifier(r)
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Platform-level identifiers bypass resolution and pooling
			// entirely; the request runs against no tenant.
			if _, ok := cfg.reserved[identifier]; ok {
				next.ServeHTTP(w, r)
				return
			}

			t, err := lookup(r.Context(), identifier)
			if err != nil {
				cfg.logger.DebugContext(r.Context(), "tenant resolution failed",
					"identifier", identifier, "error", err)
				cfg.errorHandler(w, r, err)
				return
			}

			if err := scope.Set(t); err != nil {
				cfg.logger.ErrorContext(r.Context(), "tenant scope binding failed",
					"identifier", identifier, "error", err)
				cfg.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenant rejects requests whose scope has no bound tenant. Mount it
// after Middleware on routes that must never run without tenant context.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := FromContext(r.Context()); err != nil {
				errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
