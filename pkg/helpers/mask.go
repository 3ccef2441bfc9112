package helpers

import "strings"

// MaskNumber hides the middle of a phone or account number, keeping the
// first five and last three characters ("01711***890"). Short values are
// fully masked.
func MaskNumber(number string) string {
	n := []rune(strings.TrimSpace(number))
	if len(n) <= 8 {
		return strings.Repeat("*", len(n))
	}
	return string(n[:5]) + "***" + string(n[len(n)-3:])
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
