package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxQueryLength is the upper bound, in characters, of a normalized query.
const MaxQueryLength = 1000

// SanitizeQuery replaces control characters with spaces, collapses runs of
// whitespace and trims the result.
func SanitizeQuery(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
	return strings.Join(strings.Fields(cleaned), " ")
}

// Query sanitizes text and checks that the result is non-empty and at most
// MaxQueryLength characters long.
func Query(text string) (string, error) {
	normalized := SanitizeQuery(text)
	if normalized == "" {
		return "", Errorf("query", "must not be empty")
	}

	if n := utf8.RuneCountInString(normalized); n > MaxQueryLength {
		return "", Errorf("query", "is %d characters long, the maximum is %d", n, MaxQueryLength)
	}

	return normalized, nil
}
