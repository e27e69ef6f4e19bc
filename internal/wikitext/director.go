package wikitext

import (
	"regexp"
	"strings"
)

var (
	// infoboxDirectorPattern matches the first director field line of an
	// infobox, e.g. "| director = [[Ridley Scott]]". The pipe and any
	// indentation around it are optional.
	infoboxDirectorPattern = regexp.MustCompile(`(?im)^[ \t]*\|?[ \t]*(?:director|directed by|directors?)[ \t]*=[ \t]*(.+)$`)
	extractDirectorPattern = regexp.MustCompile(`(?i)Directed by\s*[:\-]?\s*(.+)`)
)

// InfoboxDirector returns the cleaned value of the first director field found
// in the page markup. The boolean is false when no field line exists or the
// value cleans to nothing.
func InfoboxDirector(content string) (string, bool) {
	if content == "" {
		return "", false
	}
	m := infoboxDirectorPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	director := Clean(strings.TrimSpace(m[1]))
	return director, director != ""
}

// ExtractDirector finds "Directed by" in a plain-text article intro and
// returns the text after it, cut at the first newline or period.
func ExtractDirector(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	m := extractDirectorPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	candidate := m[1]
	if idx := strings.IndexByte(candidate, '\n'); idx >= 0 {
		candidate = candidate[:idx]
	}
	if idx := strings.IndexByte(candidate, '.'); idx >= 0 {
		candidate = candidate[:idx]
	}
	candidate = strings.TrimSpace(candidate)
	return candidate, candidate != ""
}
