// Package citation turns the bare source URLs returned alongside a
// live-search answer into structured records.
package citation

import (
	"errors"
	"net/url"
	"strings"
)

var errNotAbsolute = errors.New("not an absolute URL: missing scheme or host")

// Record describes one citation URL. Domain, Scheme and Path are nil when the
// URL could not be parsed, in which case ParseError explains why.
type Record struct {
	// Index is the 1-based position of the citation, matching the [n]
	// markers used in provider answers.
	Index      int     `json:"index"`
	URL        string  `json:"url"`
	Domain     *string `json:"domain"`
	Scheme     *string `json:"scheme"`
	IsSecure   bool    `json:"is_secure"`
	Path       *string `json:"path"`
	ParseError string  `json:"parse_error,omitempty"`
}

// Enrich converts each citation into a Record. The output has the same length
// and order as the input; a malformed entry yields a record with a parse
// error instead of failing the batch.
func Enrich(citations []string) []Record {
	records := make([]Record, 0, len(citations))
	for i, raw := range citations {
		records = append(records, enrichOne(i+1, raw))
	}
	return records
}

func enrichOne(index int, raw string) Record {
	record := Record{Index: index, URL: raw}

	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		record.ParseError = err.Error()
		return record
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		record.ParseError = errNotAbsolute.Error()
		return record
	}

	domain := parsed.Hostname()
	scheme := strings.ToLower(parsed.Scheme)
	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}

	record.Domain = &domain
	record.Scheme = &scheme
	record.Path = &path
	record.IsSecure = scheme == "https"
	return record
}
