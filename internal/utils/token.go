package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRefreshToken returns an opaque 128-char hex token.
func GenerateRefreshToken() (string, error) {
	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
