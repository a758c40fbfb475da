package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))

	return hex.EncodeToString(h.Sum(nil))
}

// HashPhone hashes only the digits of a phone number, so "(801) 555-0100"
// and "8015550100" produce the same log key.
func HashPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return HashString(digits)
}
