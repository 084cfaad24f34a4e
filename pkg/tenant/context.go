package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// scopeKey prevents collisions with other packages using context values.
type scopeKey struct{}

// WithScope attaches a request scope to the context.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFromContext retrieves the request scope from the context.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok && s != nil
}

// FromContext returns the tenant bound to the context's scope. It fails with
// ErrTenantNotBound when no scope is attached or the scope is empty.
func FromContext(ctx context.Context) (*Tenant, error) {
	s, ok := ScopeFromContext(ctx)
	if !ok {
		return nil, ErrTenantNotBound
	}
	return s.Get()
}

// IDFromContext provides fast access to the bound tenant's ID without
// exposing the full descriptor. It never fails; absent context yields false.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	s, ok := ScopeFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return s.ID()
}

// SubdomainFromContext mirrors IDFromContext for the subdomain key.
func SubdomainFromContext(ctx context.Context) (string, bool) {
	s, ok := ScopeFromContext(ctx)
	if !ok {
		return "", false
	}
	return s.Subdomain()
}

// LoggerExtractor returns a context extractor that enriches log records with
// the bound tenant's ID. It uses the non-failing accessor, so logging from
// unbound paths stays silent instead of erroring.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
