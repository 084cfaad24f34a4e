package registry

import "errors"

var (
	// ErrSourceUnavailable wraps operational failures of the backing
	// registry (network, query, decode). Distinct from "tenant not found":
	// callers must not treat an unreachable registry as a missing tenant.
	ErrSourceUnavailable = errors.New("tenant registry unavailable")

	// ErrDecryptFailed is returned when stored credentials cannot be
	// decrypted, typically because the encryption key rotated without
	// re-encrypting the registry.
	ErrDecryptFailed = errors.New("failed to decrypt tenant credentials")

	// ErrDuplicateTenant is returned by the static source when two entries
	// share an ID or subdomain.
	ErrDuplicateTenant = errors.New("duplicate tenant entry")

	// ErrInvalidEntry is returned by the static source when an entry cannot
	// be converted to a tenant descriptor.
	ErrInvalidEntry = errors.New("invalid tenant entry")
)
