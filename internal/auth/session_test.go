package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	Init(time.Hour)

	token, err := CreateJWT("user-1")
	require.NoError(t, err)

	sub, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Contains(t, claims, "exp")
}

func TestSessionTokenWithoutExpiry(t *testing.T) {
	Init(0)

	token, err := CreateJWT("user-2")
	require.NoError(t, err)

	sub, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", sub)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.NotContains(t, claims, "exp")
}

func TestAuthenticateJWTRejectsForeignKey(t *testing.T) {
	Init(time.Hour)
	token, err := CreateJWT("user-3")
	require.NoError(t, err)

	// Rotating the key pair invalidates previously issued tokens.
	Init(time.Hour)
	_, err = AuthenticateJWT(token)
	assert.Error(t, err)
}
