package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSpace converts value to NFC and collapses every run of Unicode
// whitespace into a single ASCII space. Leading and trailing whitespace is
// dropped.
func NormalizeSpace(value string) string {
	value = norm.NFC.String(value)
	var b strings.Builder
	b.Grow(len(value))
	pending := false
	for _, r := range value {
		if unicode.IsSpace(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SearchQuery joins a title and an optional year into a search string.
// An empty year leaves the title alone.
func SearchQuery(title, year string) string {
	title = NormalizeSpace(title)
	year = NormalizeSpace(year)
	if year == "" {
		return title
	}
	if title == "" {
		return year
	}
	return title + " " + year
}
