package record

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter returns the records whose content contains query after both are
// lower cased. Lower casing never expands letters, so "ss" does not match
// "ß". An empty query returns records as given.
func Filter(records []Record, query string) []Record {
	if query == "" {
		return records
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(lower.String(r.Content), needle) {
			out = append(out, r)
		}
	}
	return out
}
