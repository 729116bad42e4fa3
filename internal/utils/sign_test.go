package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestIssueAccessToken_RoundTrip(t *testing.T) {
	key := testKey(t)

	token, err := IssueAccessToken("user-1", "alice", "user", key)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAndVerifySign(token, &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, claims.Iat+int64(AccessTokenTTL.Seconds()), claims.Exp)
}

func TestParseAndVerifySign_WrongKey(t *testing.T) {
	key := testKey(t)
	otherKey := testKey(t)

	token, err := IssueAccessToken("user-1", "alice", "user", key)
	require.NoError(t, err)

	_, err = ParseAndVerifySign(token, &otherKey.PublicKey)
	assert.Error(t, err)
}

func TestParseAndVerifySign_Expired(t *testing.T) {
	key := testKey(t)

	issueAt := time.Now().Add(-time.Hour).Unix()
	token, err := GenerateSign(&Claims{
		Sub:      "user-1",
		Username: "alice",
		Role:     "user",
		Iat:      issueAt,
		Exp:      issueAt + 60,
	}, key)
	require.NoError(t, err)

	_, err = ParseAndVerifySign(token, &key.PublicKey)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseAndVerifySign_Garbage(t *testing.T) {
	key := testKey(t)

	_, err := ParseAndVerifySign("not.a.token", &key.PublicKey)
	assert.Error(t, err)
}

func TestGenerateRefreshToken(t *testing.T) {
	first, err := GenerateRefreshToken()
	require.NoError(t, err)
	second, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.Len(t, first, 128)
	assert.NotEqual(t, first, second)
}
