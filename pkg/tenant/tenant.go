package tenant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode determines how a tenant's data is physically isolated.
type Mode string

const (
	// ModeShared places the tenant in the platform's shared database,
	// isolated from its neighbors by schema.
	ModeShared Mode = "SHARED"

	// ModeDedicated gives the tenant its own database instance with its
	// own host, credentials and connection pool.
	ModeDedicated Mode = "DEDICATED"
)

// StatusActive is the only status that permits routing. Status is free-form
// in the registry; anything else (SUSPENDED, PENDING, ...) resolves as
// "not found".
const StatusActive = "ACTIVE"

// ParseMode converts a stored mode value to a Mode. Matching is
// case-insensitive because registry backends disagree on casing.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ModeShared):
		return ModeShared, nil
	case string(ModeDedicated):
		return ModeDedicated, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// DatabaseConfig holds the connection coordinates of a dedicated tenant
// database. Password is plaintext only after resolution; registries store
// it encrypted.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode,omitempty"`
	PoolSize int32  `json:"pool_size,omitempty"`
}

// Tenant is the resolved identity of a tenant: who it is and where its data
// lives. ID and Subdomain are both unique lookup keys.
type Tenant struct {
	ID         uuid.UUID       `json:"id"`
	Subdomain  string          `json:"subdomain"`
	Name       string          `json:"name"`
	Mode       Mode            `json:"mode"`
	Status     string          `json:"status"`
	SchemaName string          `json:"schema_name,omitempty"`
	Database   *DatabaseConfig `json:"database,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Active reports whether the tenant may be routed to.
func (t *Tenant) Active() bool {
	return t.Status == StatusActive
}

// Validate checks the mode-governed shape invariant: a shared tenant carries
// a schema name and no database coordinates, a dedicated tenant carries full
// coordinates and no schema name. Registry rows are allowed to violate this
// (a dedicated tenant without a config row still resolves); the pool layer
// rejects such descriptors when a connection is actually requested.
func (t *Tenant) Validate() error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("%w: id is required", ErrInvalidDescriptor)
	}
	if t.Subdomain == "" {
		return fmt.Errorf("%w: subdomain is required", ErrInvalidDescriptor)
	}
	switch t.Mode {
	case ModeShared:
		if t.SchemaName == "" {
			return fmt.Errorf("%w: shared tenant %q has no schema name", ErrInvalidDescriptor, t.Subdomain)
		}
		if t.Database != nil {
			return fmt.Errorf("%w: shared tenant %q carries database coordinates", ErrInvalidDescriptor, t.Subdomain)
		}
	case ModeDedicated:
		if t.SchemaName != "" {
			return fmt.Errorf("%w: dedicated tenant %q carries a schema name", ErrInvalidDescriptor, t.Subdomain)
		}
		if t.Database == nil || t.Database.Host == "" || t.Database.Name == "" || t.Database.Username == "" {
			return fmt.Errorf("%w: dedicated tenant %q lacks database coordinates", ErrInvalidDescriptor, t.Subdomain)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, t.Mode)
	}
	return nil
}
