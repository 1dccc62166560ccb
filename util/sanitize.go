package util

import (
	"strings"
	"unicode"
)

// SanitizeString trims whitespace and removes control characters from s.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// CollapseWhitespace replaces every run of whitespace with one space and
// trims the ends. "  Example\n\tDomain " becomes "Example Domain".
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
