package auth

import (
	"testing"
	"time"

	"storefront/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

// newTestJWTService returns the concrete type so tests can mint tokens;
// issuance is not part of the TokenService contract.
func newTestJWTService(t *testing.T, cfg *config.Config) *jwtService {
	t.Helper()

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	concrete, ok := svc.(*jwtService)
	require.True(t, ok)

	return concrete
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	cfg := testConfig("test_access_secret_key_very_long_for_testing")
	jwtService := newTestJWTService(t, cfg)

	// Test data
	userID := uuid.New()
	roles := []string{"user", "admin"}

	// Generate token
	accessToken, err := jwtService.GenerateToken(userID, roles)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	// Validate access token
	parsed, err := jwtService.ValidateToken(accessToken, cfg.SecretKey.Access)
	assert.NoError(t, err)
	assert.NotNil(t, parsed)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])

	gotRoles, ok := claims["roles"].([]any)
	assert.True(t, ok)
	assert.Len(t, gotRoles, 2)
	assert.Equal(t, "user", gotRoles[0])
	assert.Equal(t, "admin", gotRoles[1])
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := testConfig("test_access_secret_key_very_long_for_testing")
	jwtService := newTestJWTService(t, cfg)

	// Test invalid token - using clearly non-JWT format
	invalidToken := "clearly-not-a-jwt-token-format"
	parsed, err := jwtService.ValidateToken(invalidToken, cfg.SecretKey.Access)
	assert.Error(t, err)
	assert.False(t, parsed != nil && parsed.Valid)
}

func TestJWTService_WrongSecret(t *testing.T) {
	cfg := testConfig("test_access_secret_key_very_long_for_testing")
	jwtService := newTestJWTService(t, cfg)

	token, err := jwtService.GenerateToken(uuid.New(), nil)
	assert.NoError(t, err)

	// Validation against a different secret must fail
	parsed, err := jwtService.ValidateToken(token, "some_other_secret")
	assert.Error(t, err)
	assert.False(t, parsed != nil && parsed.Valid)
}

func TestJWTService_EmptySecret(t *testing.T) {
	// Test with empty secret
	cfg := testConfig("")

	// Should fail to create service
	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt access secret must be provided")
}

func TestJWTService_AccessTokenDuration(t *testing.T) {
	cfg := testConfig("test_access_secret_key_very_long_for_testing")
	jwtService := newTestJWTService(t, cfg)

	// Check access token duration
	duration := jwtService.AccessTokenDuration()
	expectedDuration := time.Hour
	assert.Equal(t, expectedDuration, duration)
}
