package utils

import (
	"regexp"
	"strings"
)

// Accepts E.164-style numbers ("+" optional, 2-15 digits, first digit 1-9)
// or a bare 10-digit domestic number.
var phoneRegex = regexp.MustCompile(`^(\+?[1-9]\d{1,14}|\d{10})$`)

// IsValidPhone reports whether raw looks like a phone number. Whitespace
// is stripped before validation.
func IsValidPhone(raw string) bool {
	if raw == "" {
		return false
	}
	normalized := strings.Join(strings.Fields(raw), "")
	if normalized == "" {
		return false
	}
	return phoneRegex.MatchString(normalized)
}

// NormalizePhone strips all whitespace from a phone number.
func NormalizePhone(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

// ConstantTimeEquals compares two strings without short-circuiting on the
// first mismatched byte, so the running time does not reveal where they
// differ. A length mismatch returns false immediately; leaking the length
// of a fixed-length numeric code is acceptable.
func ConstantTimeEquals(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}
	return result == 0
}
