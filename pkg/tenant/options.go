package tenant

import (
	"errors"
	"log/slog"
	"net/http"
)

// ErrorHandler writes the HTTP response for a failed resolution or binding.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	identifier   IdentifierFunc
	reserved     map[string]struct{}
	skipPaths    []string
	errorHandler ErrorHandler
	logger       *slog.Logger
}

func defaultConfig() *config {
	return &config{
		identifier:   HeaderIdentifier(""),
		reserved:     make(map[string]struct{}),
		errorHandler: defaultErrorHandler,
		logger:       slog.Default(),
	}
}

// Option configures the tenant middleware.
type Option func(*config)

// WithIdentifier overrides how the tenant identifier is extracted from the
// request. Use this to resolve from a subdomain, path segment, or JWT claim
// instead of the default header.
func WithIdentifier(fn IdentifierFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.identifier = fn
		}
	}
}

// WithReservedIdentifiers registers platform-level identifiers that skip
// tenant resolution entirely. Requests carrying one proceed with no tenant
// bound and never touch the registry or connection pools.
func WithReservedIdentifiers(ids ...string) Option {
	return func(c *config) {
		for _, id := range ids {
			if id != "" {
				c.reserved[id] = struct{}{}
			}
		}
	}
}

// WithSkipPaths excludes request paths from tenant handling by prefix match.
// Typical candidates are health checks and metrics endpoints.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithErrorHandler replaces the default error responder.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *config) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

// WithLogger sets the logger used for resolution failures.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.logger = log
		}
	}
}

// defaultErrorHandler maps resolution errors to HTTP status codes. Unknown
// tenants produce 403 rather than 404 so responses never reveal whether an
// identifier exists, and unexpected failures stay a generic 500 with the
// cause kept server-side.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "tenant not found", http.StatusForbidden)
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "invalid tenant identifier", http.StatusBadRequest)
	case errors.Is(err, ErrTenantNotBound):
		http.Error(w, "tenant required", http.StatusForbidden)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
