package parser

import (
	"regexp"
	"strings"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
)

// CleanText trims s and collapses every whitespace run to a single space.
// Empty input yields models.Unknown.
func CleanText(s string) string {
	cleaned := strings.Join(strings.Fields(s), " ")
	if cleaned == "" {
		return models.Unknown
	}
	return cleaned
}

// RunRegexes returns the cleaned first non-empty capture group of the first
// pattern that matches text, or the whole match when every group is empty.
// No match yields models.Unknown.
func RunRegexes(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if group != "" {
				return CleanText(group)
			}
		}
		return CleanText(m[0])
	}
	return models.Unknown
}
