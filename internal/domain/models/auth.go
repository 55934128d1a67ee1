package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the claim set carried by access tokens.
type AccessClaims struct {
	jwt.RegisteredClaims        // sub = username, exp, iat
	UserID               int64  `json:"user_id"`
	Email                string `json:"email,omitempty"`
}

// AccessToken is returned by a successful login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
