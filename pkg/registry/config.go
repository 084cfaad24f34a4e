package registry

import (
	"time"

	"github.com/dmitrymomot/tenantrouter/pkg/secrets"
)

// Config holds the environment-driven registry settings.
type Config struct {
	// CacheTTL is the resolution cache lifetime; it bounds how stale a
	// routed tenant can be.
	CacheTTL time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`

	// EncryptionKey decrypts stored tenant database passwords (base64 or
	// hex, 32 bytes decoded). Empty means the registry stores plaintext.
	EncryptionKey string `env:"TENANT_ENCRYPTION_KEY"`
}

// Decrypter builds the credential decrypter the config describes: a
// secrets.Box when a key is set, passthrough otherwise.
func (c Config) Decrypter() (Decrypter, error) {
	if c.EncryptionKey == "" {
		return PassthroughDecrypter{}, nil
	}
	key, err := secrets.ParseKey(c.EncryptionKey)
	if err != nil {
		return nil, err
	}
	box, err := secrets.NewBox(key)
	if err != nil {
		return nil, err
	}
	return box, nil
}
