package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

// Source loads tenant descriptors from a backing registry. Implementations
// answer a single identifier that may be either the tenant's ID or its
// subdomain, and report inactive tenants as not found.
type Source interface {
	GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error)
}

// Decrypter recovers stored tenant credentials. secrets.Box implements it;
// PassthroughDecrypter covers registries that store plaintext.
type Decrypter interface {
	DecryptString(ciphertext string) (string, error)
}

// PassthroughDecrypter returns stored values unchanged. It is the default
// for sources constructed without WithDecrypter, suitable for development
// registries that never held encrypted credentials.
type PassthroughDecrypter struct{}

func (PassthroughDecrypter) DecryptString(s string) (string, error) { return s, nil }

// errInactive collapses a non-ACTIVE tenant into the not-found sentinel.
// The wrapped text records the real status for server-side logs; clients
// only ever see the sentinel's generic mapping.
func errInactive(t *tenant.Tenant) error {
	return fmt.Errorf("%w: tenant %s has status %s", tenant.ErrTenantNotFound, t.ID, t.Status)
}

func parseTenantID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad tenant id %q", ErrInvalidEntry, raw)
	}
	return id, nil
}

// sourceConfig carries options shared by the registry-backed sources.
type sourceConfig struct {
	dec Decrypter
}

// SourceOption configures a registry-backed source.
type SourceOption func(*sourceConfig)

// WithDecrypter sets the decrypter used to recover stored database
// passwords.
func WithDecrypter(d Decrypter) SourceOption {
	return func(c *sourceConfig) {
		if d != nil {
			c.dec = d
		}
	}
}

func newSourceConfig(opts []SourceOption) *sourceConfig {
	cfg := &sourceConfig{dec: PassthroughDecrypter{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
