package utils

import (
	"fmt"
	"unicode/utf8"
)

// TruncateRunes returns the first maxRunes characters of s, never splitting a
// multi-byte character. A non-positive maxRunes returns "".
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i]
		}
		count++
	}
	return s
}

// TruncateForLog shortens s to maxRunes characters and appends the original
// length, so log readers know data was omitted.
func TruncateForLog(s string, maxRunes int) string {
	total := utf8.RuneCountInString(s)
	if total <= maxRunes {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", TruncateRunes(s, maxRunes), total)
}
