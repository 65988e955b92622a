package session

import (
	"crypto/rand"
	"encoding/base64"
)

const tokenBytes = 32

// GenerateToken returns 256 random bits, URL-safe and unpadded.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
