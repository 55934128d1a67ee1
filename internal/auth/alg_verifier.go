package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
)

// AlgVerifier routes each token by its header alg: HS256 tokens go to the
// local codec, everything else to the external (JWKS) verifier. Each side
// still enforces its own allowed methods.
type AlgVerifier struct {
	local    TokenVerifier
	external TokenVerifier
}

// NewAlgVerifier combines the local HS256 verifier with an external one
func NewAlgVerifier(local, external TokenVerifier) *AlgVerifier {
	return &AlgVerifier{local: local, external: external}
}

// VerifyToken implements TokenVerifier
func (v *AlgVerifier) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &models.AccessClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if token.Method.Alg() == jwt.SigningMethodHS256.Alg() {
		return v.local.VerifyToken(tokenString)
	}
	return v.external.VerifyToken(tokenString)
}

// Close closes both verifiers
func (v *AlgVerifier) Close() error {
	return errors.Join(v.local.Close(), v.external.Close())
}
