package message_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatIDFor_OrderIndependent(t *testing.T) {
	assert.Equal(t, "alice:bob", ChatIDFor("alice", "bob"))
	assert.Equal(t, "alice:bob", ChatIDFor("bob", "alice"))
}

func TestChatIDFor_Lexicographic(t *testing.T) {
	// Sorted by byte order, not by who initiated.
	assert.Equal(t, "user-1:user-2", ChatIDFor("user-2", "user-1"))
	assert.Equal(t, "alice:alice", ChatIDFor("alice", "alice"))
}
