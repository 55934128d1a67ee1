package storage

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"vaultspace/internal/domain"
)

// envelopeV1 is the first byte of every sealed blob: version || nonce || ciphertext+tag
const envelopeV1 byte = 0x01

// Cipher seals file contents with XChaCha20-Poly1305 under one process-wide key.
// The key is never exposed after construction.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a cipher from a 32-byte key
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("file encryption key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// ParseKey decodes a base64 (standard or URL alphabet) file encryption key
func ParseKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, errors.New("file encryption key is empty")
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if key, err := enc.DecodeString(encoded); err == nil {
			if len(key) != chacha20poly1305.KeySize {
				return nil, fmt.Errorf("file encryption key must decode to %d bytes, got %d", chacha20poly1305.KeySize, len(key))
			}
			return key, nil
		}
	}
	return nil, errors.New("file encryption key is not valid base64")
}

// GenerateKey returns a fresh random key, base64 encoded
func GenerateKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Seal encrypts plaintext into a versioned envelope
func (c *Cipher) Seal(plaintext []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	out := make([]byte, 1+nonceSize, 1+nonceSize+len(plaintext)+c.aead.Overhead())
	out[0] = envelopeV1
	if _, err := rand.Read(out[1:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return c.aead.Seal(out, out[1:], plaintext, []byte{envelopeV1}), nil
}

// Open decrypts an envelope produced by Seal. Any tampering, truncation or
// key mismatch returns domain.ErrDecryptionFailed.
func (c *Cipher) Open(envelope []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(envelope) < 1+nonceSize+c.aead.Overhead() {
		return nil, fmt.Errorf("%w: envelope too short", domain.ErrDecryptionFailed)
	}
	if envelope[0] != envelopeV1 {
		return nil, fmt.Errorf("%w: unknown envelope version %d", domain.ErrDecryptionFailed, envelope[0])
	}
	nonce := envelope[1 : 1+nonceSize]
	plaintext, err := c.aead.Open(nil, nonce, envelope[1+nonceSize:], []byte{envelopeV1})
	if err != nil {
		return nil, domain.ErrDecryptionFailed
	}
	return plaintext, nil
}
