// Package tenant defines the tenant descriptor model and request-scoped
// tenant propagation for multi-tenant applications.
//
// The package is the shared vocabulary of the tenancy layer: registry sources
// return *Tenant descriptors, the connection manager consumes them to route
// database access, and HTTP handlers read the active tenant from the request
// context. It deliberately contains no storage or pooling logic so that both
// sides can depend on it without cycles.
//
// # Tenancy Modes
//
// Every tenant runs in exactly one isolation mode:
//
//   - ModeShared: the tenant lives in the shared cluster database and owns a
//     schema there. Its descriptor carries SchemaName and no DatabaseConfig.
//   - ModeDedicated: the tenant owns a full database. Its descriptor carries
//     DatabaseConfig and no SchemaName.
//
// Validate enforces this exactly-one-of shape. Descriptors loaded from a
// registry may still violate it when provisioning is incomplete; the
// connection layer rejects such tenants at connection time rather than at
// lookup time.
//
// # Request Scope
//
// A Scope holds the tenant bound to a single request. It is set exactly once:
// a second Set fails with ErrTenantAlreadyBound, and reading before Set fails
// with ErrTenantNotBound. Both conditions indicate wiring bugs (middleware
// mounted twice, or a handler reached without the middleware) and surface
// immediately instead of silently serving the wrong tenant's data.
//
// # Usage
//
//	import "github.com/dmitrymomot/tenantrouter/pkg/tenant"
//
//	// Resolve via a registry resolver and bind to the request scope.
//	mw := tenant.Middleware(resolver.Resolve,
//		tenant.WithReservedIdentifiers("admin", "platform"),
//		tenant.WithSkipPaths("/health", "/metrics"),
//	)
//	router.Use(mw)
//
//	// Guard routes that must have a tenant.
//	router.Use(tenant.RequireTenant(nil))
//
//	// Access the tenant in handlers.
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t, err := tenant.FromContext(r.Context())
//		if err != nil {
//			http.Error(w, "tenant required", http.StatusForbidden)
//			return
//		}
//		_ = t.SchemaName
//	}
//
// # Reserved Identifiers
//
// Platform-level identifiers registered with WithReservedIdentifiers bypass
// resolution: such requests run with no tenant bound and never reach the
// registry or the tenant connection pools. Use them for operator tooling
// that works across tenants.
//
// # Error Handling
//
// Resolution failures map to HTTP responses in the default error handler:
//
//   - ErrTenantNotFound: 403, without revealing whether the tenant exists
//   - ErrInvalidIdentifier: 400
//   - ErrTenantNotBound: 403
//   - anything else: 500 with a generic body, details stay server-side
//
// Inactive tenants are reported as ErrTenantNotFound by registry sources, so
// callers cannot distinguish a suspended tenant from a missing one.
package tenant
