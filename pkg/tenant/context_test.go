package tenant_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

func TestWithScope(t *testing.T) {
	t.Parallel()

	t.Run("attaches scope to context", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope()
		ctx := tenant.WithScope(context.Background(), scope)

		got, ok := tenant.ScopeFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, scope, got)
	})

	t.Run("nil scope reads as absent", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithScope(context.Background(), nil)

		_, ok := tenant.ScopeFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestScopeFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns false for empty context", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.ScopeFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("scope is shared, not copied", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope()
		ctx := tenant.WithScope(context.Background(), scope)

		// Binding after attachment must be visible through the context.
		tn := newSharedTenant("acme")
		require.NoError(t, scope.Set(tn))

		got, err := tenant.FromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, tn, got)
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns bound tenant", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope()
		tn := newDedicatedTenant("globex")
		require.NoError(t, scope.Set(tn))

		ctx := tenant.WithScope(context.Background(), scope)

		got, err := tenant.FromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, tn, got)
	})

	t.Run("fails without scope", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.FromContext(context.Background())
		assert.ErrorIs(t, err, tenant.ErrTenantNotBound)
	})

	t.Run("fails with empty scope", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithScope(context.Background(), tenant.NewScope())

		_, err := tenant.FromContext(ctx)
		assert.ErrorIs(t, err, tenant.ErrTenantNotBound)
	})

	t.Run("survives context chaining and cancellation", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope()
		tn := newSharedTenant("acme")
		require.NoError(t, scope.Set(tn))

		ctx, cancel := context.WithCancel(context.Background())
		ctx = tenant.WithScope(ctx, scope)
		cancel()

		got, err := tenant.FromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, tn, got)
	})
}

func TestIDFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns bound tenant ID", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope()
		tn := newSharedTenant("acme")
		require.NoError(t, scope.Set(tn))

		ctx := tenant.WithScope(context.Background(), scope)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, tn.ID, id)
	})

	t.Run("returns zero UUID without scope", func(t *testing.T) {
		t.Parallel()

		id, ok := tenant.IDFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("returns zero UUID for empty scope", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithScope(context.Background(), tenant.NewScope())

		id, ok := tenant.IDFromContext(ctx)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, id)
	})
}

func TestSubdomainFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns bound subdomain", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope()
		require.NoError(t, scope.Set(newSharedTenant("acme")))

		ctx := tenant.WithScope(context.Background(), scope)

		sub, ok := tenant.SubdomainFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "acme", sub)
	})

	t.Run("returns empty without scope", func(t *testing.T) {
		t.Parallel()

		sub, ok := tenant.SubdomainFromContext(context.Background())
		assert.False(t, ok)
		assert.Empty(t, sub)
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	t.Run("extracts tenant ID attribute", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope()
		tn := newSharedTenant("acme")
		require.NoError(t, scope.Set(tn))

		ctx := tenant.WithScope(context.Background(), scope)

		attr, ok := tenant.LoggerExtractor()(ctx)
		require.True(t, ok)
		assert.Equal(t, "tenant_id", attr.Key)
		assert.Equal(t, tn.ID.String(), attr.Value.String())
	})

	t.Run("stays silent without tenant", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.LoggerExtractor()(context.Background())
		assert.False(t, ok)
	})
}
