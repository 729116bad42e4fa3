package message_repo

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatKeyPattern_AnchoredToPairBoundaries(t *testing.T) {
	re, err := regexp.Compile(chatKeyPattern("alice"))
	require.NoError(t, err)

	assert.True(t, re.MatchString("alice:bob"))
	assert.True(t, re.MatchString("bob:alice"))
	assert.True(t, re.MatchString("alice:alice"))

	// Substrings of other ids must not match.
	assert.False(t, re.MatchString("malice:bob"))
	assert.False(t, re.MatchString("bob:malice"))
	assert.False(t, re.MatchString("bob:alicea"))
}

func TestChatKeyPattern_EscapesMetaCharacters(t *testing.T) {
	re, err := regexp.Compile(chatKeyPattern("a.c"))
	require.NoError(t, err)

	assert.True(t, re.MatchString("a.c:bob"))
	assert.False(t, re.MatchString("abc:bob"))
}
