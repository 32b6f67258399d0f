package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecureToken returns n random bytes as a URL-safe base64 string.
// Used for the session secret fallback when none is configured.
func GenerateSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
