package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration copies keyed by type name plus
// prefix, so each configuration is parsed at most once per process.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	defaultEnvLoaded sync.Once
)

type options struct {
	prefix   string
	envFiles []string
}

// Option adjusts how a configuration struct is loaded.
type Option func(*options)

// WithPrefix prepends a prefix to every env tag during parsing. Configs
// loaded with different prefixes are cached independently, which is how two
// instances of the same subsystem coexist in one process.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the named .env files before parsing. Unlike the default
// .env lookup, a missing named file is an error.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.envFiles = append(o.envFiles, files...)
	}
}

// LoadEnv loads .env files into the process environment. With no arguments
// it loads the default ./.env. Existing environment variables are never
// overridden.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrEnvFileLoad, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// Load populates v from the environment based on its `env` field tags.
//
// The default .env file is loaded on first use (silently skipped when
// absent), then env.Parse fills the struct. Each configuration type is
// parsed once per process and served from cache afterwards, so packages can
// call Load for their own Config without coordinating.
//
// Example:
//
//	type Config struct {
//		SharedDSN string `env:"TENANT_DB_SHARED_DSN"`
//		MaxConns  int32  `env:"TENANT_DB_MAX_CONNS" envDefault:"10"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := buildOptions(opts)
	if err := o.applyEnvFiles(); err != nil {
		return err
	}

	key := cacheKey[T](o.prefix)

	globalCache.mu.RLock()
	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		globalCache.mu.RUnlock()
		return nil
	}
	globalCache.mu.RUnlock()

	globalCache.mu.Lock()
	once, exists := globalCache.onces[key]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[key] = once
	}
	globalCache.mu.Unlock()

	var err error
	once.Do(func() {
		if parseErr := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			return
		}

		globalCache.mu.Lock()
		// Store a copy so later mutations of v do not leak into the cache.
		globalCache.values[key] = *v
		globalCache.mu.Unlock()
	})
	if err != nil {
		return err
	}

	globalCache.mu.RLock()
	defer globalCache.mu.RUnlock()
	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	// The once fired earlier with a parse error; nothing was cached.
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics when loading fails. Use for
// configuration the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ForceReload parses v from the current environment, bypassing and
// refreshing the cache. Intended for tests that mutate the environment
// between loads.
func ForceReload[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := buildOptions(opts)
	if err := o.applyEnvFiles(); err != nil {
		return err
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	key := cacheKey[T](o.prefix)
	globalCache.mu.Lock()
	globalCache.values[key] = *v
	globalCache.mu.Unlock()
	return nil
}

// ResetCache drops all cached configurations. Intended for tests.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
	globalCache.mu.Unlock()
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) applyEnvFiles() error {
	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrEnvFileLoad, err)
		}
		return nil
	}
	defaultEnvLoaded.Do(func() {
		// The default .env is optional.
		_ = godotenv.Load()
	})
	return nil
}

// cacheKey identifies a configuration by its concrete type and prefix, so
// the same struct loaded under two prefixes stays distinct.
func cacheKey[T any](prefix string) string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T|%s", *new(T), prefix)
	}
	return t.String() + "|" + prefix
}
