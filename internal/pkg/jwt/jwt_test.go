package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "eight hours")
	assert.Error(t, err)
}

func TestJWTService_GenerateAccessToken(t *testing.T) {
	// Setup
	svc, err := NewJWTService("test-secret", "8h")
	require.NoError(t, err)

	// Act
	token, expiresAt, err := svc.GenerateAccessToken("admin", true)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(8*time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc, err := NewJWTService("secret-a", "1h")
	require.NoError(t, err)
	other, err := NewJWTService("secret-b", "1h")
	require.NoError(t, err)

	token, _, err := other.GenerateAccessToken("admin", true)
	require.NoError(t, err)

	_, err = svc.JWTAuth().Decode(token)
	assert.Error(t, err)
}
