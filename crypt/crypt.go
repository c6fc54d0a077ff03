package crypt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateState returns a hex-encoded random nonce of n bytes, used to bind
// one in-flight authorization attempt to its callback.
func GenerateState(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
