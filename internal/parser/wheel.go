package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
)

// WheelParser infers wheel specifications from a listing's title and
// description. Each field has an ordered pattern table; the first pattern
// that matches anywhere in the text wins.
type WheelParser struct {
	brandPatterns  []*regexp.Regexp
	modelPatterns  []*regexp.Regexp
	inchPatterns   []*regexp.Regexp
	widthPatterns  []*regexp.Regexp
	holePatterns   []*regexp.Regexp
	pcdPatterns    []*regexp.Regexp
	offsetPatterns []*regexp.Regexp
}

func NewWheelParser() *WheelParser {
	return &WheelParser{
		brandPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:メーカー|brand)[:：\s]*([A-Za-z0-9\- ]{2,})`),
			regexp.MustCompile(`(?i)\b(ENKEI|BBS|RAYS|WORK|WEDS)\b`),
		},
		modelPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:モデル|model)[:：\s]*([A-Za-z0-9\- ]{2,})`),
			regexp.MustCompile(`(?i)\b(TE37|CE28|G25|LM|VS-?XX)\b`),
		},
		inchPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(1[4-9]|2[0-4])\s?インチ`),
			regexp.MustCompile(`(?i)(1[4-9]|2[0-4])\s?inch`),
			regexp.MustCompile(`(?i)(1[4-9]|2[0-4])\s?"`),
		},
		widthPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d{1,2}\.\d)J`),
			regexp.MustCompile(`(?i)(\d{1,2})J`),
		},
		holePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d{1,2})H`),
			regexp.MustCompile(`(?i)(\d{1,2})穴`),
		},
		pcdPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)PCD[:：\s]*(\d{2,3}\.\d)`),
			regexp.MustCompile(`(?i)PCD[:：\s]*(\d{2,3})`),
			regexp.MustCompile(`(?i)(\d{3}\.\d)\s?PCD`),
		},
		offsetPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ET[:：\s]*([+-]?\d{1,2})`),
			regexp.MustCompile(`(?i)オフセット[:：\s]*([+-]?\d{1,2})`),
			regexp.MustCompile(`(?i)(?:OFFSET|オフセット)[^\d]*([+-]?\d{1,2})`),
		},
	}
}

// Parse runs every pattern table over the cleaned title and description
// markup. Full-width digits, letters and signs are folded to ASCII first,
// so "１５インチ" reads as 15. Fields without a match are models.Unknown.
func (p *WheelParser) Parse(listing models.Listing) models.Specs {
	text := width.Fold.String(combineText(CleanText(listing.Title), CleanText(listing.DescriptionHTML)))

	return models.Specs{
		Brand:  RunRegexes(text, p.brandPatterns),
		Model:  RunRegexes(text, p.modelPatterns),
		Inch:   RunRegexes(text, p.inchPatterns),
		Width:  RunRegexes(text, p.widthPatterns),
		Holes:  RunRegexes(text, p.holePatterns),
		PCD:    RunRegexes(text, p.pcdPatterns),
		Offset: RunRegexes(text, p.offsetPatterns),
	}
}

// combineText joins the non-empty parts with a newline. A placeholder counts
// as content, matching what CleanText hands back for missing values.
func combineText(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "\n")
}
