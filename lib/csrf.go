package lib

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateCSRFToken returns a random token for the double-submit CSRF
// cookie. The value is opaque; only cookie/header equality matters.
func GenerateCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
