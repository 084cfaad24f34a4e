// Package config loads typed configuration structs from environment
// variables, with optional .env file support and per-type caching.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 behind a
// small generic API: declare a struct with `env` tags, call Load, and the
// parsed copy is cached so every later Load of the same type is free. Each
// subsystem in this module (registry, tenantdb) ships its own Config struct
// and loads it through this package.
//
// # Usage
//
//	type Config struct {
//	    SharedDSN     string        `env:"TENANT_DB_SHARED_DSN"`
//	    MaxConns      int32         `env:"TENANT_DB_MAX_CONNS" envDefault:"10"`
//	    SweepInterval time.Duration `env:"TENANT_DB_SWEEP_INTERVAL" envDefault:"5m"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// The default ./.env file is loaded once, lazily, and silently skipped when
// absent. Name files explicitly when they must exist:
//
//	config.MustLoadEnv(".env.production", ".env.local")
//
// # Prefixes
//
// WithPrefix namespaces a struct's env tags, letting two instances of the
// same subsystem run in one process:
//
//	var analytics tenantdb.Config
//	config.MustLoad(&analytics, config.WithPrefix("ANALYTICS_"))
//
// Prefixed loads are cached separately from unprefixed ones.
//
// # Testing
//
// The cache is process-global. Tests that mutate the environment should use
// ForceReload to re-parse, or ResetCache between cases.
package config
