package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenRequest holds the identity to be signed into an access token.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse returns the issued token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// JWTClaims represents the JWT payload for access tokens. Email is the identity.
type JWTClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
