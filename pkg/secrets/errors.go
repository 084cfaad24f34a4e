package secrets

import "errors"

var (
	// ErrInvalidKey is returned when the provided key is not 32 bytes, or
	// when a string key cannot be decoded as base64 or hex.
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes")

	// Encryption/decryption errors
	ErrEncryptionFailed  = errors.New("encryption failed")
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// ErrKeyDerivationFailed is returned when HKDF expansion fails.
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
