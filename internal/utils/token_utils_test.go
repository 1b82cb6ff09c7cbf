package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sarnathbank/banking_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := utils.GenerateSessionToken("SAR0000000001", "user", "test-secret", "banking-app-test", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := utils.ParseSessionToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "SAR0000000001", claims.Subject)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "banking-app-test", claims.Issuer)
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token, _, err := utils.GenerateSessionToken("SAR0000000001", "user", "test-secret", "banking-app-test", time.Hour)
	require.NoError(t, err)

	_, err = utils.ParseSessionToken(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, _, err := utils.GenerateSessionToken("SAR0000000001", "user", "test-secret", "banking-app-test", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseSessionToken(token, "test-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseSessionToken_Garbage(t *testing.T) {
	_, err := utils.ParseSessionToken("not.a.token", "test-secret")
	assert.Error(t, err)
}
