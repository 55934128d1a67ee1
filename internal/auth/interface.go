package auth

import "vaultspace/internal/domain/models"

// TokenVerifier validates bearer tokens.
// Implementations return domain.ErrTokenExpired for expired tokens and
// domain.ErrInvalidToken for anything else that fails validation.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns its claims
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier (e.g. JWKS refresh).
	Close() error
}

// TokenIssuer mints access tokens for authenticated users
type TokenIssuer interface {
	IssueToken(user *models.User) (string, error)
}

// PasswordHasher hashes and checks passwords. Compare returns nil on a match.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
