package tenantdb

import "time"

type Config struct {
	SharedDSN     string        `env:"TENANT_DB_SHARED_DSN"`                     // SharedDSN is the connection string of the shared cluster; empty restricts routing to dedicated tenants.
	MaxConns      int32         `env:"TENANT_DB_MAX_CONNS" envDefault:"10"`      // MaxConns caps connections per pool unless a tenant overrides it with a pool size.
	IdleTTL       time.Duration `env:"TENANT_DB_IDLE_TTL" envDefault:"5m"`       // IdleTTL is how long a pool may go unused before the sweeper closes it.
	SweepInterval time.Duration `env:"TENANT_DB_SWEEP_INTERVAL" envDefault:"5m"` // SweepInterval is the period between idle pool sweeps.
}
