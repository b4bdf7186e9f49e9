package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testJWTService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(42, "user@example.com", "STUDENT")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "STUDENT", claims.Role)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := testJWTService(-time.Minute)

	access, _, _, _, err := svc.GenerateTokenPair(1, "a@b.com", "STUDENT")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	access, _, _, _, err := testJWTService(time.Hour).GenerateTokenPair(1, "a@b.com", "STUDENT")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "other-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateAndExtractClaimsRejectsEmpty(t *testing.T) {
	_, err := testJWTService(time.Hour).ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := testJWTService(time.Hour)

	_, first, _, _, err := svc.GenerateTokenPair(1, "a@b.com", "STUDENT")
	require.NoError(t, err)
	_, second, _, _, err := svc.GenerateTokenPair(1, "a@b.com", "STUDENT")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
