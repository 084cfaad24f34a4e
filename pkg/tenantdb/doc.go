// Package tenantdb routes resolved tenants to PostgreSQL connection pools.
//
// The Manager keeps one pgx pool per physical database target. Targets are
// keyed by mode, host and database name: every shared tenant maps to the
// shared cluster's key and therefore shares a single pool behind a
// per-tenant schema, while each dedicated tenant gets a pool for its own
// database using the credentials carried by its descriptor. Pools are
// created lazily on first request and deduplicated, so a burst of first
// requests for one tenant builds exactly one pool.
//
// # Pool Lifecycle
//
// Every Get stamps the pool's last-used time. A background sweeper runs on
// SweepInterval and closes pools that have gone unused for IdleTTL, which
// keeps connection counts proportional to the set of recently active
// tenants rather than the whole fleet. Pool closure drains gracefully;
// connections checked out by in-flight requests are released, not killed.
//
// Close stops the sweeper and then drains all remaining pools concurrently,
// blocking until every connection is released. A closed manager refuses
// further routing with ErrManagerClosed.
//
// # Usage
//
//	var cfg tenantdb.Config
//	config.MustLoad(&cfg)
//
//	manager, err := tenantdb.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Close()
//
//	// Inside a request, after tenant resolution:
//	t, err := tenant.FromContext(ctx)
//	if err != nil {
//	    return err
//	}
//	pool, err := manager.Get(ctx, t)
//	if err != nil {
//	    return err
//	}
//	rows, err := pool.Query(ctx, "SELECT ...")
//
// Shared-mode callers must additionally qualify queries with the tenant's
// SchemaName (or set search_path per acquired connection); the manager
// hands out the pool and leaves schema scoping to the data layer.
//
// # Error Handling
//
// Connection failures surface as ErrConnectionFailed with the driver error
// joined for server-side logs; the sentinel's message is safe to show a
// tenant. Dedicated tenants without usable coordinates are rejected with
// ErrMissingDatabaseConfig, and shared tenants are rejected with
// ErrSharedDSNNotConfigured when no shared DSN was configured. Errors are
// never masked by internal retries; the caller's context is the only
// cancellation mechanism.
package tenantdb
