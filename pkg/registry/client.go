package registry

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

const (
	tenantsTable = "tenants"
	configsTable = "tenant_database_configs"
)

// Client is the Postgres-backed registry source. It reads from the platform
// catalog database, never from tenant databases.
type Client struct {
	pool *pgxpool.Pool
	dec  Decrypter
}

// NewClient creates a source over the platform catalog pool.
func NewClient(pool *pgxpool.Pool, opts ...SourceOption) *Client {
	cfg := newSourceConfig(opts)
	return &Client{pool: pool, dec: cfg.dec}
}

// GetByIdentifier looks up an active tenant by ID or subdomain in a single
// query. The database config row is joined in when present; its absence is
// not an error here because shared tenants never have one, and a dedicated
// tenant's missing row only matters when a connection is requested.
func (c *Client) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, tenant.ErrInvalidIdentifier
	}

	query := `SELECT t.id, t.subdomain, t.name, t.mode, t.status, t.schema_name, t.created_at,
		d.database_host, d.database_port, d.database_name, d.username, d.password_encrypted, d.ssl_mode, d.pool_size
		FROM ` + tenantsTable + ` t
		LEFT JOIN ` + configsTable + ` d ON d.tenant_id = t.id
		WHERE t.id::text = $1 OR t.subdomain = $1
		LIMIT 1`

	row := c.pool.QueryRow(ctx, query, identifier)

	var (
		t        tenant.Tenant
		modeRaw  string
		schema   *string
		host     *string
		port     *int
		dbName   *string
		username *string
		password *string
		sslMode  *string
		poolSize *int32
	)
	err := row.Scan(&t.ID, &t.Subdomain, &t.Name, &modeRaw, &t.Status, &schema, &t.CreatedAt,
		&host, &port, &dbName, &username, &password, &sslMode, &poolSize)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, errors.Join(ErrSourceUnavailable, err)
	}

	if !t.Active() {
		return nil, errInactive(&t)
	}

	mode, err := tenant.ParseMode(modeRaw)
	if err != nil {
		return nil, err
	}
	t.Mode = mode
	if schema != nil {
		t.SchemaName = *schema
	}

	if host != nil {
		cfg := &tenant.DatabaseConfig{Host: *host, Port: 5432}
		if port != nil {
			cfg.Port = *port
		}
		if dbName != nil {
			cfg.Name = *dbName
		}
		if username != nil {
			cfg.Username = *username
		}
		if sslMode != nil {
			cfg.SSLMode = *sslMode
		}
		if poolSize != nil {
			cfg.PoolSize = *poolSize
		}
		if password != nil && *password != "" {
			plain, err := c.dec.DecryptString(*password)
			if err != nil {
				return nil, errors.Join(ErrDecryptFailed, err)
			}
			cfg.Password = plain
		}
		t.Database = cfg
	}

	return &t, nil
}

// Healthcheck verifies the catalog database is reachable. Wire it into the
// readiness probe alongside the pool manager's.
func (c *Client) Healthcheck(ctx context.Context) error {
	if err := c.pool.Ping(ctx); err != nil {
		return errors.Join(ErrSourceUnavailable, err)
	}
	return nil
}
