package cardcheck

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short hex HMAC-SHA256 of the normalized number under key.
// Log the fingerprint instead of the number; never log the input itself.
func Fingerprint(raw string, key []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(Normalize(raw)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
