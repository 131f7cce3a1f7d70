package services

import (
	"crypto/sha256"
	"encoding/base64"
)

// DefaultCodeLength is the number of characters kept from the encoded digest.
const DefaultCodeLength = 8

// maxCodeLength is the length of an unpadded base64url SHA-256 digest.
const maxCodeLength = 43

// GenerateShortCode derives a short code from longURL and salt.
// The code is base64url(sha256(longURL + salt)) truncated to length, so the
// same inputs always give the same code. length is clamped to [1, 43];
// anything below 1 uses DefaultCodeLength.
func GenerateShortCode(longURL, salt string, length int) string {
	if length < 1 {
		length = DefaultCodeLength
	}
	if length > maxCodeLength {
		length = maxCodeLength
	}

	sum := sha256.Sum256([]byte(longURL + salt))
	encoded := base64.URLEncoding.EncodeToString(sum[:])
	return encoded[:length]
}
