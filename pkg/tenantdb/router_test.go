package tenantdb_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantrouter/pkg/tenantdb"
)

func TestRouter(t *testing.T) {
	t.Parallel()

	m := newManager(t, tenantdb.Config{SharedDSN: sharedDSN, SweepInterval: time.Hour})

	_, err := m.Get(context.Background(), sharedTenant("acme"))
	require.NoError(t, err)
	_, err = m.Get(context.Background(), dedicatedTenant("globex", "db-2.internal", "globex_prod"))
	require.NoError(t, err)

	srv := httptest.NewServer(tenantdb.Router(m))
	t.Cleanup(srv.Close)

	t.Run("pools lists open pool keys", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/pools")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

		var snap tenantdb.Snapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
		assert.Zero(t, snap.ActiveConnections)
		assert.Equal(t, []string{"DEDICATED|db-2.internal|globex_prod", sharedPoolKey}, snap.TenantKeys)
	})

	t.Run("stats reports per-pool usage", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/pools/stats")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stats []tenantdb.PoolStat
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		require.Len(t, stats, 2)
		assert.Equal(t, "DEDICATED|db-2.internal|globex_prod", stats[0].Key)
		assert.Equal(t, sharedPoolKey, stats[1].Key)
		assert.False(t, stats[0].LastUsed.IsZero())
	})

	t.Run("unknown path is not found", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/nope")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
