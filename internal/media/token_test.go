// internal/media/token_test.go
package media

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *TokenIssuer {
	ti := NewTokenIssuer("api-key", "api-secret")
	ti.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return ti
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("api-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestIssuePlayerToken(t *testing.T) {
	ti := newTestIssuer()
	token, err := ti.Issue("r1", "u1", "Ana", false)
	require.NoError(t, err)

	claims := parseClaims(t, token)
	assert.Equal(t, "api-key", claims["iss"])
	assert.Equal(t, "u1", claims["sub"])

	video := claims["video"].(map[string]interface{})
	assert.Equal(t, true, video["roomJoin"])
	assert.Equal(t, "r1", video["room"])
	assert.Equal(t, true, video["canPublish"])
	assert.Equal(t, true, video["canSubscribe"])
	assert.Equal(t, true, video["canPublishData"])

	// One hour validity.
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	assert.Equal(t, int64(3600), exp-iat)
}

func TestIssueSpectatorTokenDeniesPublish(t *testing.T) {
	ti := newTestIssuer()
	token, err := ti.Issue("r1", "u2", "Berta", true)
	require.NoError(t, err)

	claims := parseClaims(t, token)
	video := claims["video"].(map[string]interface{})
	assert.Equal(t, false, video["canPublish"])
	assert.Equal(t, true, video["canSubscribe"])
	assert.Contains(t, claims["metadata"], `"isSpectator":true`)
}

func TestIssueWithoutCredentials(t *testing.T) {
	ti := NewTokenIssuer("", "")
	_, err := ti.Issue("r1", "u1", "Ana", false)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
