package auth

import (
	"testing"

	"carspares/config"
	"carspares/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	// Generate tokens
	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, entity.RoleSeller.String())
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessClaims, err := jwtService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, accessClaims)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, entity.RoleSeller.String(), accessClaims.Role)
	assert.Equal(t, "access", accessClaims.Type)

	// Validate refresh token
	refreshClaims, err := jwtService.ValidateToken(refreshToken)
	assert.NoError(t, err)
	assert.NotNil(t, refreshClaims)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Role) // Refresh tokens don't carry a role
	assert.Equal(t, "refresh", refreshClaims.Type)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	// Test invalid token - using clearly non-JWT format
	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_TamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	accessToken, _, err := jwtService.GenerateTokens(uuid.New(), entity.RoleBuyer.String())
	assert.NoError(t, err)

	// Flip the last character of the signature
	tampered := accessToken[:len(accessToken)-1] + "x"
	if tampered == accessToken {
		tampered = accessToken[:len(accessToken)-1] + "y"
	}

	claims, err := jwtService.ValidateToken(tampered)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}
	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
}

func TestJWTService_HashToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	hash1 := jwtService.HashToken("some-refresh-token")
	hash2 := jwtService.HashToken("some-refresh-token")
	hash3 := jwtService.HashToken("another-token")

	// Deterministic hex digest
	assert.Len(t, hash1, 64)
	assert.Equal(t, hash1, hash2)
	assert.NotEqual(t, hash1, hash3)
}

func TestJWTService_RefreshTokenDuration(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)
	assert.Positive(t, jwtService.GetRefreshTokenDuration())
}
