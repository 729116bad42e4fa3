package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHash_VerifyRoundTrip(t *testing.T) {
	hashed, err := GenerateHash("s3cretpass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"))

	ok, err := VerifyHash(hashed, "s3cretpass")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyHash_WrongPassword(t *testing.T) {
	hashed, err := GenerateHash("s3cretpass")
	require.NoError(t, err)

	ok, err := VerifyHash(hashed, "wrongpass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateHash_SaltedPerCall(t *testing.T) {
	first, err := GenerateHash("s3cretpass")
	require.NoError(t, err)
	second, err := GenerateHash("s3cretpass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyHash_MalformedHash(t *testing.T) {
	_, err := VerifyHash("not-a-hash", "whatever")
	assert.Error(t, err)

	_, err = VerifyHash("$argon2id$v=19$bad", "whatever")
	assert.Error(t, err)
}
