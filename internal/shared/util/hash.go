package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short, log-safe identifier for uploaded content.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
