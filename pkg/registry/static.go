package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

// Static is a file-backed source for fixed tenant sets: local development,
// integration tests, single-box deployments without a catalog database. The
// whole set is loaded and validated up front; lookups never touch the disk
// again.
type Static struct {
	byID        map[string]*tenant.Tenant
	bySubdomain map[string]*tenant.Tenant
}

// staticFile is the YAML document shape.
type staticFile struct {
	Tenants []staticTenant `yaml:"tenants"`
}

type staticTenant struct {
	ID         string          `yaml:"id"`
	Subdomain  string          `yaml:"subdomain"`
	Name       string          `yaml:"name"`
	Mode       string          `yaml:"mode"`
	Status     string          `yaml:"status"`
	SchemaName string          `yaml:"schema_name"`
	Database   *staticDatabase `yaml:"database"`
	CreatedAt  time.Time       `yaml:"created_at"`
}

type staticDatabase struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	PoolSize int32  `yaml:"pool_size"`
}

// LoadStatic reads a YAML tenant file and builds the source.
func LoadStatic(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrSourceUnavailable, err)
	}

	var file staticFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	tenants := make([]*tenant.Tenant, 0, len(file.Tenants))
	for i, entry := range file.Tenants {
		t, err := entry.toTenant()
		if err != nil {
			return nil, fmt.Errorf("tenant entry %d: %w", i, err)
		}
		tenants = append(tenants, t)
	}
	return NewStatic(tenants)
}

// NewStatic builds the source from already-constructed descriptors. Every
// descriptor must pass Validate and carry unique ID and subdomain keys.
func NewStatic(tenants []*tenant.Tenant) (*Static, error) {
	s := &Static{
		byID:        make(map[string]*tenant.Tenant, len(tenants)),
		bySubdomain: make(map[string]*tenant.Tenant, len(tenants)),
	}
	for _, t := range tenants {
		if t == nil {
			return nil, fmt.Errorf("%w: nil tenant", ErrInvalidEntry)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}
		id := t.ID.String()
		if _, exists := s.byID[id]; exists {
			return nil, fmt.Errorf("%w: id %s", ErrDuplicateTenant, id)
		}
		if _, exists := s.bySubdomain[t.Subdomain]; exists {
			return nil, fmt.Errorf("%w: subdomain %s", ErrDuplicateTenant, t.Subdomain)
		}
		s.byID[id] = t
		s.bySubdomain[t.Subdomain] = t
	}
	return s, nil
}

// GetByIdentifier checks the ID index first, then subdomains. Descriptors
// are cloned so callers cannot mutate the loaded set.
func (s *Static) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, tenant.ErrInvalidIdentifier
	}

	t, ok := s.byID[identifier]
	if !ok {
		t, ok = s.bySubdomain[identifier]
	}
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	if !t.Active() {
		return nil, errInactive(t)
	}
	return cloneTenant(t), nil
}

// Len reports how many tenants the source holds.
func (s *Static) Len() int {
	return len(s.byID)
}

func (entry staticTenant) toTenant() (*tenant.Tenant, error) {
	id, err := parseTenantID(entry.ID)
	if err != nil {
		return nil, err
	}
	mode, err := tenant.ParseMode(entry.Mode)
	if err != nil {
		return nil, err
	}

	t := &tenant.Tenant{
		ID:         id,
		Subdomain:  entry.Subdomain,
		Name:       entry.Name,
		Mode:       mode,
		Status:     entry.Status,
		SchemaName: entry.SchemaName,
		CreatedAt:  entry.CreatedAt,
	}
	if entry.Database != nil {
		t.Database = &tenant.DatabaseConfig{
			Host:     entry.Database.Host,
			Port:     entry.Database.Port,
			Name:     entry.Database.Name,
			Username: entry.Database.Username,
			Password: entry.Database.Password,
			SSLMode:  entry.Database.SSLMode,
			PoolSize: entry.Database.PoolSize,
		}
		if t.Database.Port == 0 {
			t.Database.Port = 5432
		}
	}
	return t, nil
}

func cloneTenant(t *tenant.Tenant) *tenant.Tenant {
	out := *t
	if t.Database != nil {
		db := *t.Database
		out.Database = &db
	}
	return &out
}
