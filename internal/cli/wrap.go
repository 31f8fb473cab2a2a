package cli

import (
	"strings"
	"unicode/utf8"
)

// wrapText breaks s into lines no wider than width runes, splitting on
// whitespace. Words longer than width stay whole on their own line.
func wrapText(s string, width int) []string {
	if width <= 0 {
		width = defaultWidth
	}

	var (
		lines   []string
		current strings.Builder
		length  int
	)
	for _, word := range strings.Fields(s) {
		n := utf8.RuneCountInString(word)
		if length > 0 && length+1+n > width {
			lines = append(lines, current.String())
			current.Reset()
			length = 0
		}
		if length > 0 {
			current.WriteByte(' ')
			length++
		}
		current.WriteString(word)
		length += n
	}
	if length > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
