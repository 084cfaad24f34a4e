package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantrouter/pkg/config"
)

type RouterConfig struct {
	SharedDSN     string        `env:"ROUTER_SHARED_DSN" envDefault:"postgres://localhost:5432/app"`
	MaxConns      int32         `env:"ROUTER_MAX_CONNS" envDefault:"10"`
	SweepInterval time.Duration `env:"ROUTER_SWEEP_INTERVAL" envDefault:"5m"`
	Debug         bool          `env:"ROUTER_DEBUG" envDefault:"false"`
}

type CacheConfig struct {
	TTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

type SingletonConfig struct {
	Value string `env:"SINGLETON_VALUE" envDefault:"initial"`
}

type PrefixedConfig struct {
	DSN string `env:"DSN" envDefault:"unset"`
}

type RequiredConfig struct {
	Token string `env:"REQUIRED_TOKEN,required"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("ROUTER_SHARED_DSN", "postgres://db.internal:5432/platform")
	t.Setenv("ROUTER_MAX_CONNS", "25")
	t.Setenv("ROUTER_SWEEP_INTERVAL", "90s")
	t.Setenv("ROUTER_DEBUG", "true")

	var cfg RouterConfig
	require.NoError(t, config.ForceReload(&cfg))

	assert.Equal(t, "postgres://db.internal:5432/platform", cfg.SharedDSN)
	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Equal(t, 90*time.Second, cfg.SweepInterval)
	assert.True(t, cfg.Debug)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("CACHE_TTL")

	var cfg CacheConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 5*time.Minute, cfg.TTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REQUIRED_TOKEN")
	config.ResetCache()

	var cfg RequiredConfig
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[RouterConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_CachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("SINGLETON_VALUE", "first")

	var first SingletonConfig
	require.NoError(t, config.Load(&first))
	require.Equal(t, "first", first.Value)

	// A changed environment is invisible to cached loads.
	t.Setenv("SINGLETON_VALUE", "second")

	var second SingletonConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestForceReload_RefreshesCache(t *testing.T) {
	config.ResetCache()
	t.Setenv("SINGLETON_VALUE", "stale")

	var cfg SingletonConfig
	require.NoError(t, config.Load(&cfg))
	require.Equal(t, "stale", cfg.Value)

	t.Setenv("SINGLETON_VALUE", "fresh")

	var reloaded SingletonConfig
	require.NoError(t, config.ForceReload(&reloaded))
	assert.Equal(t, "fresh", reloaded.Value)

	// The refreshed value replaces the cached copy.
	var cached SingletonConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, "fresh", cached.Value)
}

func TestLoad_WithPrefix(t *testing.T) {
	config.ResetCache()
	t.Setenv("DSN", "postgres://primary")
	t.Setenv("ANALYTICS_DSN", "postgres://analytics")

	var primary PrefixedConfig
	require.NoError(t, config.Load(&primary))
	assert.Equal(t, "postgres://primary", primary.DSN)

	var analytics PrefixedConfig
	require.NoError(t, config.Load(&analytics, config.WithPrefix("ANALYTICS_")))
	assert.Equal(t, "postgres://analytics", analytics.DSN)

	// Prefixed and unprefixed loads are cached independently.
	var again PrefixedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "postgres://primary", again.DSN)
}

func TestLoad_WithEnvFiles(t *testing.T) {
	config.ResetCache()
	os.Unsetenv("CACHE_TTL")

	envFile := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(envFile, []byte("CACHE_TTL=42s\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CACHE_TTL") })

	var cfg CacheConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(envFile)))
	assert.Equal(t, 42*time.Second, cfg.TTL)
}

func TestLoad_WithEnvFiles_Missing(t *testing.T) {
	var cfg CacheConfig
	err := config.Load(&cfg, config.WithEnvFiles("testdata/does-not-exist.env"))

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrEnvFileLoad)
}

func TestLoadEnv(t *testing.T) {
	t.Run("loads named file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env.named")
		require.NoError(t, os.WriteFile(envFile, []byte("LOADENV_MARKER=present\n"), 0o644))
		t.Cleanup(func() { os.Unsetenv("LOADENV_MARKER") })

		require.NoError(t, config.LoadEnv(envFile))
		assert.Equal(t, "present", os.Getenv("LOADENV_MARKER"))
	})

	t.Run("missing named file is an error", func(t *testing.T) {
		err := config.LoadEnv("testdata/nope.env")
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrEnvFileLoad)
	})

	t.Run("does not override existing variables", func(t *testing.T) {
		t.Setenv("LOADENV_KEEP", "from_process")

		envFile := filepath.Join(t.TempDir(), ".env.keep")
		require.NoError(t, os.WriteFile(envFile, []byte("LOADENV_KEEP=from_file\n"), 0o644))

		require.NoError(t, config.LoadEnv(envFile))
		assert.Equal(t, "from_process", os.Getenv("LOADENV_KEEP"))
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		os.Unsetenv("REQUIRED_TOKEN")
		config.ResetCache()

		assert.Panics(t, func() {
			var cfg RequiredConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("returns loaded config", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("REQUIRED_TOKEN", "tok_123")

		assert.NotPanics(t, func() {
			var cfg RequiredConfig
			config.MustLoad(&cfg)
			assert.Equal(t, "tok_123", cfg.Token)
		})
	})
}

func TestMustLoadEnv(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoadEnv("testdata/absent.env")
	})
}
