package utils

import "strings"

// NormalizeWhitespace replaces runs of whitespace with a single space and trims the ends.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// Between returns the text between the first open and the following close
// delimiter. The bool is false when either delimiter is missing.
func Between(str, open, closing string) (string, bool) {
	_, rest, ok := strings.Cut(str, open)
	if !ok {
		return "", false
	}

	inner, _, ok := strings.Cut(rest, closing)
	if !ok {
		return "", false
	}

	return inner, true
}
