package tenantdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

const (
	defaultMaxConns      = 10
	defaultIdleTTL       = 5 * time.Minute
	defaultSweepInterval = 5 * time.Minute
)

// entry tracks a live pool and the last time a request touched it.
type entry struct {
	pool     *pgxpool.Pool
	key      string
	lastUsed atomic.Int64 // unix nanoseconds
}

func (e *entry) touch() {
	e.lastUsed.Store(time.Now().UnixNano())
}

func (e *entry) lastUsedTime() time.Time {
	return time.Unix(0, e.lastUsed.Load())
}

// Manager owns every tenant-facing connection pool. Pools are created
// lazily on first use, deduplicated by physical target, swept when idle
// and drained together on shutdown.
type Manager struct {
	cfg        Config
	sharedHost string
	sharedDB   string
	log        *slog.Logger
	verify     bool

	mu     sync.RWMutex
	pools  map[string]*entry
	closed bool

	sf   singleflight.Group
	stop chan struct{}
	done chan struct{}
}

// New builds a Manager and starts its idle sweeper. The shared DSN is
// parsed once so shared tenants can be keyed without re-parsing per
// request. An empty shared DSN is allowed for dedicated-only fleets and
// only fails when a shared tenant is actually routed.
func New(cfg Config, opts ...Option) (*Manager, error) {
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultMaxConns
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	m := &Manager{
		cfg:    cfg,
		log:    slog.Default(),
		verify: true,
		pools:  make(map[string]*entry),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if cfg.SharedDSN != "" {
		pc, err := pgxpool.ParseConfig(cfg.SharedDSN)
		if err != nil {
			return nil, errors.Join(ErrInvalidDSN, err)
		}
		m.sharedHost = pc.ConnConfig.Host
		m.sharedDB = pc.ConnConfig.Database
	}

	go m.sweep()
	return m, nil
}

// Get returns the pool serving the given tenant, creating it on first use.
// Shared tenants collapse onto the single shared cluster pool; dedicated
// tenants get a pool keyed on their own host and database. Concurrent
// first requests for the same target build exactly one pool.
//
// The caller's context governs connection establishment. No internal
// timeout or retry is applied; cancel the context to abort.
func (m *Manager) Get(ctx context.Context, t *tenant.Tenant) (*pgxpool.Pool, error) {
	if t == nil {
		return nil, tenant.ErrNilTenant
	}
	key, err := m.keyFor(t)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil, ErrManagerClosed
	}
	if e, ok := m.pools[key]; ok {
		e.touch()
		m.mu.RUnlock()
		return e.pool, nil
	}
	m.mu.RUnlock()

	v, err, _ := m.sf.Do(key, func() (any, error) {
		m.mu.RLock()
		e, ok := m.pools[key]
		closed := m.closed
		m.mu.RUnlock()
		if closed {
			return nil, ErrManagerClosed
		}
		if ok {
			return e, nil
		}

		pool, err := m.buildPool(ctx, t, key)
		if err != nil {
			return nil, err
		}

		// Stamp before publishing; a sweep between registration and the
		// first use must not see the fresh entry as idle since the epoch.
		e = &entry{pool: pool, key: key}
		e.touch()
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			pool.Close()
			return nil, ErrManagerClosed
		}
		m.pools[key] = e
		m.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return nil, err
	}

	e := v.(*entry)
	e.touch()
	return e.pool, nil
}

// keyFor validates the tenant's routing shape and derives its pool key.
func (m *Manager) keyFor(t *tenant.Tenant) (string, error) {
	switch t.Mode {
	case tenant.ModeShared:
		if m.cfg.SharedDSN == "" {
			return "", ErrSharedDSNNotConfigured
		}
		return poolKey(tenant.ModeShared, m.sharedHost, m.sharedDB), nil
	case tenant.ModeDedicated:
		db := t.Database
		if db == nil || db.Host == "" || db.Name == "" || db.Username == "" {
			return "", fmt.Errorf("%w: tenant %s", ErrMissingDatabaseConfig, t.ID)
		}
		return poolKey(tenant.ModeDedicated, db.Host, db.Name), nil
	default:
		return "", fmt.Errorf("%w: %q", tenant.ErrInvalidMode, t.Mode)
	}
}

func (m *Manager) buildPool(ctx context.Context, t *tenant.Tenant, key string) (*pgxpool.Pool, error) {
	dsn := m.cfg.SharedDSN
	maxConns := m.cfg.MaxConns
	if t.Mode == tenant.ModeDedicated {
		dsn = buildDSN(t.Database)
		if t.Database.PoolSize > 0 {
			maxConns = t.Database.PoolSize
		}
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrInvalidDSN, err)
	}
	pc.MaxConns = maxConns
	pc.MaxConnIdleTime = m.cfg.IdleTTL

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	if m.verify {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			m.log.ErrorContext(ctx, "tenant pool connection failed",
				slog.String("pool_key", key),
				slog.Any("error", err),
			)
			return nil, errors.Join(ErrConnectionFailed, err)
		}
	}

	m.log.InfoContext(ctx, "tenant pool created",
		slog.String("pool_key", key),
		slog.Int("max_conns", int(maxConns)),
	)
	return pool, nil
}

// EvictIdle closes every pool that has not served a request within IdleTTL
// and reports how many were closed. Victims are collected under the lock
// and closed after it is released, so a slow drain never blocks routing.
func (m *Manager) EvictIdle() int {
	cutoff := time.Now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var victims []*entry
	for key, e := range m.pools {
		if e.lastUsedTime().Before(cutoff) {
			delete(m.pools, key)
			victims = append(victims, e)
		}
	}
	m.mu.Unlock()

	for _, e := range victims {
		e.pool.Close()
		m.log.Info("idle tenant pool evicted", slog.String("pool_key", e.key))
	}
	return len(victims)
}

// sweep runs EvictIdle on a fixed interval until Close stops it.
func (m *Manager) sweep() {
	defer close(m.done)

	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.EvictIdle()
		case <-m.stop:
			return
		}
	}
}

// Close stops the sweeper, waits for it to exit, then drains every pool
// concurrently. It blocks until in-flight connections are released. Close
// is idempotent; only the first call performs the drain.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	// The sweeper must be fully stopped before draining so an eviction
	// pass never races shutdown.
	close(m.stop)
	<-m.done

	m.mu.Lock()
	entries := make([]*entry, 0, len(m.pools))
	for key, e := range m.pools {
		delete(m.pools, key)
		entries = append(entries, e)
	}
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, e := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.pool.Close()
		}()
	}
	wg.Wait()

	m.log.Info("tenant pools drained", slog.Int("count", len(entries)))
	return nil
}

// PoolCount reports how many pools are currently open.
func (m *Manager) PoolCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pools)
}

// Snapshot is a point-in-time view of the open pools: how many connections
// are checked out across all of them and which targets they serve.
type Snapshot struct {
	ActiveConnections int      `json:"active_connections"`
	TenantKeys        []string `json:"tenant_keys"`
}

// Snapshot reports checked-out connections and the open pool keys, sorted
// for stable output. Pure read; it never creates or touches pools.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	keys := make([]string, 0, len(m.pools))
	var active int
	for key, e := range m.pools {
		keys = append(keys, key)
		active += int(e.pool.Stat().AcquiredConns())
	}
	m.mu.RUnlock()

	slices.Sort(keys)
	return Snapshot{ActiveConnections: active, TenantKeys: keys}
}

// PoolStat reports per-pool connection usage.
type PoolStat struct {
	Key      string    `json:"key"`
	Acquired int32     `json:"acquired_conns"`
	Idle     int32     `json:"idle_conns"`
	Total    int32     `json:"total_conns"`
	LastUsed time.Time `json:"last_used"`
}

// Stats returns connection statistics for every open pool, sorted by key.
func (m *Manager) Stats() []PoolStat {
	m.mu.RLock()
	out := make([]PoolStat, 0, len(m.pools))
	for key, e := range m.pools {
		st := e.pool.Stat()
		out = append(out, PoolStat{
			Key:      key,
			Acquired: st.AcquiredConns(),
			Idle:     st.IdleConns(),
			Total:    st.TotalConns(),
			LastUsed: e.lastUsedTime(),
		})
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b PoolStat) int {
		return strings.Compare(a.Key, b.Key)
	})
	return out
}
