package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenCarriesClaims(t *testing.T) {
	at, err := NewAccessToken("test-secret", "user-1", "jo@example.com", "owner", 168)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "jo@example.com", claims["email"])
	assert.Equal(t, "owner", claims["role"])
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret-a", "user-1", "jo@example.com", "user", 1)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)

	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, rt.Raw, h1)

	other, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.NotEqual(t, HashRefreshRaw(other.Raw), h1)
}
