package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("catalog-client", "secret", time.Hour, "invoice-form-app")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "catalog-client", claims.Subject)
	assert.Equal(t, "invoice-form-app", claims.Issuer)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestGenerateJWT_NoExpiry(t *testing.T) {
	token, err := GenerateJWT("catalog-client", "secret", 0, "")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	past := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "x",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	pastToken, err := past.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(pastToken, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other, err := GenerateJWT("x", "other", time.Hour, "")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(other, "secret")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}
