package parse

import (
	"regexp"
	"strings"
)

// Strategy locates one candidate JSON span inside a text. Locate must be pure
// and report false when the strategy does not apply to the text.
type Strategy struct {
	Name   string
	Locate func(text string) (string, bool)
}

// Extraction is the successful outcome of [Extract].
type Extraction struct {
	Object map[string]any
	// Strategy is the name of the strategy whose span was parsed.
	Strategy string
}

// Strategy names.
const (
	StrategyFirstObject  = "first_object"
	StrategyFencedBlock  = "fenced_block"
	StrategyMarker       = "marker"
	StrategyTrimToBraces = "trim_to_braces"
)

var (
	fencePattern  = regexp.MustCompile("(?s)```[A-Za-z0-9_-]+[ \t]*\r?\n?(.*?)```")
	markerPattern = regexp.MustCompile(`(?i)\b(?:json|response)\s*:`)
)

// DefaultStrategies returns the extraction order used for live-search
// answers.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: StrategyFirstObject, Locate: FirstObject},
		{Name: StrategyFencedBlock, Locate: FencedBlock},
		{Name: StrategyMarker, Locate: AfterMarker},
		{Name: StrategyTrimToBraces, Locate: TrimToBraces},
	}
}

// Extract tries each strategy in order and returns the first span that
// parses as a JSON object. Every located span is first decoded strictly; JSON
// repair is only attempted once no strategy produced valid JSON, so repaired
// prose never shadows a valid object found by a later strategy. With no
// strategies given, DefaultStrategies is used. The boolean is false when
// every strategy was exhausted.
func Extract(text string, strategies ...Strategy) (Extraction, bool) {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}

	type candidate struct {
		strategy string
		span     string
	}
	var candidates []candidate

	for _, strategy := range strategies {
		span, ok := strategy.Locate(text)
		if !ok {
			continue
		}
		if object, err := decodeObject(strings.TrimSpace(span)); err == nil {
			return Extraction{Object: object, Strategy: strategy.Name}, true
		}
		candidates = append(candidates, candidate{strategy: strategy.Name, span: span})
	}

	for _, c := range candidates {
		if object, err := ParseObject(c.span); err == nil {
			return Extraction{Object: object, Strategy: c.strategy}, true
		}
	}

	return Extraction{}, false
}

// FirstObject returns the first balanced {...} span. Braces inside JSON
// string literals are ignored.
func FirstObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// FencedBlock returns the body of the first language-tagged code fence, such
// as ```json ... ```.
func FencedBlock(text string) (string, bool) {
	match := fencePattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	body := strings.TrimSpace(match[1])
	return body, body != ""
}

// AfterMarker returns everything after the first "json:" or "response:"
// marker, case-insensitively.
func AfterMarker(text string) (string, bool) {
	loc := markerPattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := strings.TrimSpace(text[loc[1]:])
	return rest, rest != ""
}

// TrimToBraces drops everything before the first '{' and after the last '}'.
func TrimToBraces(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
