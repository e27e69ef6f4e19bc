package wikitext

import (
	"regexp"
	"strings"
)

var (
	templatePattern = regexp.MustCompile(`\{\{[^}]*\}\}`)
	linkPattern     = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	refPattern      = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>`)
	tagPattern      = regexp.MustCompile(`<[^>]+>`)
	newlinePattern  = regexp.MustCompile(`[\r\n]+`)
	commaPattern    = regexp.MustCompile(`\s*,\s*`)
)

// Clean reduces a raw wikitext field value to display text.
//
// Steps run in a fixed order: templates are dropped, links are replaced by
// their label (the segment after the last pipe), <ref> blocks and any other
// tags are removed, line breaks become ", " separators, and leading or
// trailing whitespace, commas and semicolons are trimmed.
func Clean(raw string) string {
	s := templatePattern.ReplaceAllString(raw, "")
	s = linkPattern.ReplaceAllStringFunc(s, linkLabel)
	s = refPattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = newlinePattern.ReplaceAllString(s, ", ")
	s = commaPattern.ReplaceAllString(s, ", ")
	return strings.Trim(s, " \t\n,;")
}

func linkLabel(link string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(link, "[["), "]]")
	if idx := strings.LastIndexByte(inner, '|'); idx >= 0 {
		return inner[idx+1:]
	}
	return inner
}
