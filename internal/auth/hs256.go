package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
)

// HS256Codec issues and verifies locally signed access tokens
type HS256Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHS256Codec creates a codec signing with secret. Tokens live for ttl.
func NewHS256Codec(secret string, ttl time.Duration) (*HS256Codec, error) {
	if len(secret) < 32 {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &HS256Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// IssueToken creates a signed token with sub=username and the user's id
func (c *HS256Codec) IssueToken(user *models.User) (string, error) {
	now := c.now()
	claims := models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token issued by this codec
func (c *HS256Codec) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	claims := &models.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return checkClaims(claims)
}

// Close implements TokenVerifier
func (c *HS256Codec) Close() error {
	return nil
}

func classifyTokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return domain.ErrTokenExpired
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
}

// checkClaims requires a subject and a positive user id. Tokens from an
// external issuer may carry the id only in sub.
func checkClaims(claims *models.AccessClaims) (*models.AccessClaims, error) {
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	if claims.UserID == 0 {
		id, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: missing user id", domain.ErrInvalidToken)
		}
		claims.UserID = id
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidToken)
	}
	return claims, nil
}
