// Package registry resolves tenant identifiers to descriptors through a
// TTL cache backed by a pluggable catalog source.
//
// The resolver is the read path of the tenancy layer: given an identifier
// that may be a tenant ID or a subdomain, it returns the full descriptor
// (mode, schema, database coordinates) needed to route the request. Lookups
// for inactive tenants fail exactly like lookups for unknown ones, so the
// registry never discloses whether a suspended tenant exists.
//
// # Sources
//
// A Source answers a single question: which active tenant matches this
// identifier. Three implementations ship with the package:
//
//   - Client: Postgres catalog via pgx, one query joining the tenants table
//     with the per-tenant database config table
//   - MongoSource: document catalog via the official driver
//   - Static: YAML file loaded and validated up front, for development and
//     single-box installs
//
// All sources require status ACTIVE; the Static source additionally rejects
// malformed files at load time (duplicate keys, invalid modes, descriptors
// violating the mode shape).
//
// # Caching
//
// Successful resolutions are cached under both the tenant's ID and its
// subdomain for the same TTL (default 5 minutes). Entries expire at the
// deadline fixed when they were written; reads never extend them, which
// bounds how long a registry change stays invisible. Failures, including
// not-found, are never cached.
//
// The default cache is in-process. RedisCache shares descriptors across
// instances; NewNoopCache disables caching.
//
// # Usage
//
//	var cfg registry.Config
//	config.MustLoad(&cfg)
//
//	dec, err := cfg.Decrypter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	source := registry.NewClient(catalogPool, registry.WithDecrypter(dec))
//	resolver := registry.NewResolver(source, registry.WithTTL(cfg.CacheTTL))
//	defer resolver.Close()
//
//	t, err := resolver.Resolve(ctx, "acme")
//
// resolver.Resolve satisfies tenant.LookupFunc, so it plugs straight into
// tenant.Middleware.
//
// # Invalidation
//
// Invalidate removes a tenant's cached descriptor under both keys; call it
// from provisioning flows that suspend tenants or rotate credentials so the
// change takes effect before the TTL would surface it. InvalidateAll clears
// the cache wholesale.
//
// # Credentials
//
// Dedicated tenants' database passwords are stored encrypted. Sources
// decrypt them through the Decrypter interface at resolution time;
// secrets.Box is the provided implementation and Config.Decrypter builds it
// from the environment. A failed decryption surfaces as ErrDecryptFailed
// rather than a connect error later.
package registry
