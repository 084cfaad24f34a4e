package tenantdb_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantrouter/pkg/config"
	"github.com/dmitrymomot/tenantrouter/pkg/tenantdb"
)

func TestConfig_Load(t *testing.T) {
	t.Run("empty environment loads a dedicated-only config", func(t *testing.T) {
		for _, name := range []string{
			"TENANT_DB_SHARED_DSN",
			"TENANT_DB_MAX_CONNS",
			"TENANT_DB_IDLE_TTL",
			"TENANT_DB_SWEEP_INTERVAL",
		} {
			os.Unsetenv(name)
		}

		// No shared DSN in the environment must still parse; dedicated-only
		// fleets set nothing and rely on ErrSharedDSNNotConfigured at
		// routing time.
		var cfg tenantdb.Config
		require.NoError(t, config.ForceReload(&cfg))

		assert.Empty(t, cfg.SharedDSN)
		assert.Equal(t, int32(10), cfg.MaxConns)
		assert.Equal(t, 5*time.Minute, cfg.IdleTTL)
		assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	})

	t.Run("environment values override defaults", func(t *testing.T) {
		t.Setenv("TENANT_DB_SHARED_DSN", sharedDSN)
		t.Setenv("TENANT_DB_MAX_CONNS", "25")
		t.Setenv("TENANT_DB_IDLE_TTL", "90s")

		var cfg tenantdb.Config
		require.NoError(t, config.ForceReload(&cfg))

		assert.Equal(t, sharedDSN, cfg.SharedDSN)
		assert.Equal(t, int32(25), cfg.MaxConns)
		assert.Equal(t, 90*time.Second, cfg.IdleTTL)
	})
}
