// Package checksum hashes catalog documents for change detection and ETags.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ETag returns the strong entity tag for a document checksum.
func ETag(sum string) string {
	if sum == "" {
		return ""
	}
	return `"` + sum + `"`
}

// MatchETag reports whether an If-None-Match header value matches sum.
// Weak validators compare equal to their strong form.
func MatchETag(header, sum string) bool {
	if header == "" || sum == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}
	want := ETag(sum)
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "W/")
		if tag == want {
			return true
		}
	}
	return false
}
