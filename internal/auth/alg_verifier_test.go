package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
)

// stubVerifier accepts every token and remembers it
type stubVerifier struct {
	seen   []string
	closed bool
}

func (s *stubVerifier) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	s.seen = append(s.seen, tokenString)
	return &models.AccessClaims{UserID: 7}, nil
}

func (s *stubVerifier) Close() error {
	s.closed = true
	return nil
}

func TestAlgVerifier_RoutesByAlg(t *testing.T) {
	codec, err := NewHS256Codec(testSecret, time.Hour)
	require.NoError(t, err)
	external := &stubVerifier{}
	verifier := NewAlgVerifier(codec, external)

	local, err := codec.IssueToken(&models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(local)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Empty(t, external.seen)

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"sub": "7", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(key)
	require.NoError(t, err)

	claims, err = verifier.VerifyToken(foreign)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, []string{foreign}, external.seen)

	require.NoError(t, verifier.Close())
	assert.True(t, external.closed)
}

func TestAlgVerifier_Malformed(t *testing.T) {
	codec, err := NewHS256Codec(testSecret, time.Hour)
	require.NoError(t, err)
	external := &stubVerifier{}
	verifier := NewAlgVerifier(codec, external)

	_, err = verifier.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.Empty(t, external.seen)
}
