package validate

import (
	"regexp"
	"time"
)

// DateLayout is the only accepted date format (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Range is a validated pair of optional date bounds. Empty strings mean the
// bound is absent.
type Range struct {
	From string
	To   string
}

// IsZero reports whether neither bound is set.
func (r Range) IsZero() bool {
	return r.From == "" && r.To == ""
}

// Date validates an optional YYYY-MM-DD string. An empty value is absent and
// passes through unchanged. The value must denote a real calendar date and
// survive a parse/format round trip byte for byte, which rejects overflow such
// as "2023-02-29".
func Date(value, param string) (string, error) {
	if value == "" {
		return "", nil
	}

	if !datePattern.MatchString(value) {
		return "", Errorf(param, "%q must use the YYYY-MM-DD format", value)
	}

	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", Errorf(param, "%q is not a valid calendar date", value)
	}

	if parsed.Format(DateLayout) != value {
		return "", Errorf(param, "%q is not a valid calendar date", value)
	}

	return value, nil
}

// DateRange validates both bounds and, when both are present, requires
// from <= to.
func DateRange(from, to string) (Range, error) {
	validFrom, err := Date(from, "from_date")
	if err != nil {
		return Range{}, err
	}

	validTo, err := Date(to, "to_date")
	if err != nil {
		return Range{}, err
	}

	// Same fixed-width layout, so lexical order is chronological order.
	if validFrom != "" && validTo != "" && validFrom > validTo {
		return Range{}, &ValidationError{
			Param:   "date_range",
			Message: "from_date (" + validFrom + ") must be on or before to_date (" + validTo + ")",
		}
	}

	return Range{From: validFrom, To: validTo}, nil
}
