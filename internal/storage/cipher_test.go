package storage

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vaultspace/internal/domain"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	encoded, err := GenerateKey()
	require.NoError(t, err)
	key, err := ParseKey(encoded)
	require.NoError(t, err)
	c, err := NewCipher(key)
	require.NoError(t, err)
	return c
}

func TestCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	big := make([]byte, 10<<20)
	_, err := rand.Read(big)
	require.NoError(t, err)

	tests := map[string][]byte{
		"one byte": {0x42},
		"text":     []byte("hello vault"),
		"10MB":     big,
	}
	for name, plaintext := range tests {
		t.Run(name, func(t *testing.T) {
			sealed, err := c.Seal(plaintext)
			require.NoError(t, err)
			assert.False(t, bytes.Contains(sealed, plaintext), "ciphertext must not contain the plaintext")
			assert.Greater(t, len(sealed), len(plaintext))

			opened, err := c.Open(sealed)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(plaintext, opened))
		})
	}
}

func TestCipher_NonceIsFresh(t *testing.T) {
	c := newTestCipher(t)
	a, err := c.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := c.Seal([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCipher_OpenFailures(t *testing.T) {
	c := newTestCipher(t)
	other := newTestCipher(t)

	sealed, err := c.Seal([]byte("secret payload"))
	require.NoError(t, err)

	tampered := bytes.Clone(sealed)
	tampered[len(tampered)-1] ^= 0xff

	badVersion := bytes.Clone(sealed)
	badVersion[0] = 0x09

	tests := map[string]struct {
		cipher *Cipher
		input  []byte
	}{
		"tampered":    {c, tampered},
		"truncated":   {c, sealed[:10]},
		"bad version": {c, badVersion},
		"wrong key":   {other, sealed},
		"empty":       {c, nil},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tt.cipher.Open(tt.input)
			assert.ErrorIs(t, err, domain.ErrDecryptionFailed)
			assert.ErrorIs(t, err, domain.ErrStorage)
		})
	}
}

func TestParseKey(t *testing.T) {
	_, err := ParseKey("")
	assert.Error(t, err)

	_, err = ParseKey("c2hvcnQ=") // "short"
	assert.Error(t, err)

	_, err = ParseKey("!!!not base64!!!")
	assert.Error(t, err)

	encoded, err := GenerateKey()
	require.NoError(t, err)
	key, err := ParseKey("  " + encoded + "\n")
	require.NoError(t, err)
	assert.Len(t, key, 32)
}
