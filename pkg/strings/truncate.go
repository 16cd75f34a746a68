package strings

import (
	"strings"
)

const (
	// DefaultDescriptionMaxLen bounds tool descriptions in table output.
	DefaultDescriptionMaxLen = 60

	// DefaultDetailMaxLen bounds remote response bodies quoted in error results.
	DefaultDetailMaxLen = 200
)

// MinTruncateLen is the smallest maxLen accepted by SingleLine. Smaller values
// are raised to it so the result can hold one character plus "...".
const MinTruncateLen = 4

// SingleLine collapses all whitespace runs in s (including newlines) into
// single spaces and truncates the result to maxLen runes, ending in "..."
// when anything was cut.
func SingleLine(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
