package ingest

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9\s.,;:?!\-]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// NormalizeText keeps letters, digits and basic punctuation, collapses whitespace and trims.
func NormalizeText(text string) string {
	text = disallowedChars.ReplaceAllString(text, " ")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
