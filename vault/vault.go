// Package vault encrypts and decrypts tax identification numbers with a
// process-wide key. Every other package treats TIN plaintext as radioactive:
// it exists only inside this boundary and in the return value of Decrypt.
package vault

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"taxledger/types"
)

// Vault performs authenticated symmetric encryption of TIN strings.
// Construct one per process at startup and thread it through explicitly;
// there is no package-level instance.
type Vault struct {
	aead cipher.AEAD
}

// New builds a Vault from a 32-byte key. A key of any other length is a
// configuration error and the caller must refuse to serve.
func New(key []byte) (*Vault, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("vault key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &Vault{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce. Encrypting the same
// value twice yields different ciphertext, so identical TINs on two records
// are not linkable through the stored column.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := v.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens ciphertext produced by Encrypt under the same key. Malformed
// input, tampered data or a wrong key all surface as types.ErrDecryption.
func (v *Vault) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: malformed ciphertext", types.ErrDecryption)
	}
	if len(raw) < chacha20poly1305.NonceSizeX {
		return "", fmt.Errorf("%w: ciphertext too short", types.ErrDecryption)
	}
	nonce, sealed := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]
	plaintext, err := v.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: unreadable with current key", types.ErrDecryption)
	}
	return string(plaintext), nil
}

// GenerateKey returns a fresh random vault key, base64-encoded for use as
// TIN_ENCRYPTION_KEY.
func GenerateKey() (string, error) {
	buf := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
