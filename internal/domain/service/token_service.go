package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by the marketplace JWTs.
type Claims struct {
	UserID uuid.UUID
	Role   string
	Type   string // "access" or "refresh".
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID, role string) (accessToken string, refreshToken string, err error)

	// ValidateToken checks the validity of a token string, access or refresh.
	ValidateToken(tokenString string) (*Claims, error)

	// HashToken returns the SHA-256 hex digest used to store refresh tokens.
	HashToken(token string) string

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
