// Package secrets protects tenant credentials at rest with AES-256-GCM.
//
// The registry stores dedicated tenants' database passwords encrypted; this
// package provides the Box that seals them at provisioning time and opens
// them at resolution time. A Box derives its AES key once from a 32-byte
// master key using HKDF-SHA-256 with a package-specific info string, so the
// same master key used by other subsystems never yields the same AES key
// here.
//
// On encryption the random nonce is prepended to the ciphertext, making the
// stored value self-contained. String helpers add base64 framing for text
// columns.
//
// # Usage
//
//	import "github.com/dmitrymomot/tenantrouter/pkg/secrets"
//
//	key, err := secrets.ParseKey(os.Getenv("TENANT_ENCRYPTION_KEY"))
//	if err != nil {
//	    // handle error
//	}
//	box, err := secrets.NewBox(key)
//	if err != nil {
//	    // handle error
//	}
//
//	ct, err := box.EncryptString("db-password")
//	plain, err := box.DecryptString(ct)
//
// *Box satisfies the registry's Decrypter interface, so it plugs directly
// into registry clients:
//
//	client := registry.NewClient(pool, registry.WithDecrypter(box))
//
// # Error Handling
//
// All failures wrap a package sentinel (ErrInvalidKey, ErrInvalidCiphertext,
// ErrEncryptionFailed, ErrDecryptionFailed, ErrKeyDerivationFailed); match
// them with errors.Is. A tampered or truncated ciphertext surfaces as
// ErrDecryptionFailed from GCM authentication, never as garbage plaintext.
package secrets
