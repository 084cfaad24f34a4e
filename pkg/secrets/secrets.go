package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required master key size: 256 bits for AES-256.
	KeySize = 32

	// saltInfo provides HKDF domain separation so the same master key used
	// elsewhere never yields the same AES key here.
	saltInfo = "tenantrouter-secrets-v1"
)

// Box encrypts and decrypts short secrets (tenant database passwords,
// API credentials) with AES-256-GCM. The AES key is derived once from the
// master key via HKDF-SHA-256, so a Box is cheap to reuse and safe for
// concurrent use.
type Box struct {
	aead cipher.AEAD
}

// NewBox derives the AES key from master and prepares the AEAD. The master
// key must be exactly KeySize bytes.
func NewBox(master []byte) (*Box, error) {
	if len(master) != KeySize {
		return nil, ErrInvalidKey
	}

	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(saltInfo)), derived); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return &Box{aead: aead}, nil
}

// Encrypt seals data and returns nonce + ciphertext + tag as one slice, so
// the result is self-contained for storage.
func (b *Box) Encrypt(data []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return b.aead.Seal(nonce, nonce, data, nil), nil
}

// Decrypt opens a slice produced by Encrypt.
func (b *Box) Decrypt(ciphertext []byte) ([]byte, error) {
	nonceSize := b.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrInvalidCiphertext
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := b.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// EncryptString seals a string and returns base64-encoded ciphertext.
func (b *Box) EncryptString(plaintext string) (string, error) {
	ciphertext, err := b.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString reverses EncryptString. It satisfies the registry's
// Decrypter interface, which is how stored tenant database passwords are
// recovered at resolution time.
func (b *Box) DecryptString(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}
	plaintext, err := b.Decrypt(raw)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// GenerateKey creates a new random master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// ParseKey decodes a master key from its environment representation: std or
// URL-safe base64, or hex. The decoded key must be KeySize bytes.
func ParseKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrInvalidKey
	}

	// A 32-byte key encodes to 64 hex characters, which also decode as
	// base64 (to the wrong length), so every decoder gets a chance and
	// only a KeySize result wins.
	for _, decode := range []func(string) ([]byte, error){
		base64.StdEncoding.DecodeString,
		base64.URLEncoding.DecodeString,
		hex.DecodeString,
	} {
		if key, err := decode(encoded); err == nil && len(key) == KeySize {
			return key, nil
		}
	}
	return nil, ErrInvalidKey
}
