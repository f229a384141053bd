package repository

import (
	"context"
	"errors"

	"carspares/internal/domain/entity"
)

// ErrRefreshTokenNotFound is returned when no stored token matches the hash.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// ErrRefreshTokenExpired is returned when a matching token exists but is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// RefreshTokenRepository defines the operations for session persistence.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a user session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its stored hash.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash removes the session matching the hash, if any.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error
}
