package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestSignAndParseToken(t *testing.T) {
	token, expiresAt, err := SignToken("admin", "admin", time.Hour, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Sub)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := SignToken("admin", "admin", time.Hour, testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, "a-different-secret-of-sufficient-size")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, _, err := SignToken("admin", "admin", -time.Minute, testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestExtractClaimsFromCookie(t *testing.T) {
	token, _, err := SignToken("admin", "admin", time.Hour, testSecret)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})

	claims, err := ExtractClaims(r, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Sub)
}

func TestExtractClaimsMissingCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/auth/me", nil)

	_, err := ExtractClaims(r, testSecret)
	assert.Error(t, err)
}
