package grading

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes free text for comparison: it lower-cases the input,
// drops every rune that is not a letter, digit or whitespace, and trims the
// result. Normalize is total and idempotent.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
