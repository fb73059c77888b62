package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
)

func TestWheelParserParse(t *testing.T) {
	parser := NewWheelParser()

	tests := []struct {
		name     string
		listing  models.Listing
		expected models.Specs
	}{
		{
			name: "listing with labelled description",
			listing: models.Listing{
				Title:           "RAYS TE37 Sonic 15インチ",
				DescriptionHTML: "\n<p>メーカー：RAYS モデル：TE37 リム幅7J PCD100 OFFSET+35</p>\n",
			},
			expected: models.Specs{
				Brand:  "RAYS",
				Model:  "TE37",
				Inch:   "15",
				Width:  "7",
				Holes:  models.Unknown,
				PCD:    "100",
				Offset: "+35",
			},
		},
		{
			name: "compact title notation",
			listing: models.Listing{
				Title:           "BBS LM 18inch 8.5J 5H PCD114.3 ET+38",
				DescriptionHTML: models.Unknown,
			},
			expected: models.Specs{
				Brand:  "BBS",
				Model:  "LM",
				Inch:   "18",
				Width:  "8.5",
				Holes:  "5",
				PCD:    "114.3",
				Offset: "+38",
			},
		},
		{
			name: "japanese units",
			listing: models.Listing{
				Title:           "WORK エモーション 17インチ 4穴",
				DescriptionHTML: "<div>オフセット：-10 ホイール4本セット</div>",
			},
			expected: models.Specs{
				Brand:  "WORK",
				Model:  models.Unknown,
				Inch:   "17",
				Width:  models.Unknown,
				Holes:  "4",
				PCD:    models.Unknown,
				Offset: "-10",
			},
		},
		{
			name: "full-width numerals",
			listing: models.Listing{
				Title: "RAYS TE37 １５インチ ７J ４穴 PCD１００ オフセット＋３５",
			},
			expected: models.Specs{
				Brand:  "RAYS",
				Model:  "TE37",
				Inch:   "15",
				Width:  "7",
				Holes:  "4",
				PCD:    "100",
				Offset: "+35",
			},
		},
		{
			name: "full-width labels and letters",
			listing: models.Listing{
				Title:           "ＥＮＫＥＩ １８インチ",
				DescriptionHTML: "<p>ＰＣＤ：１１４．３　ＥＴ：４８　８．５Ｊ　５Ｈ</p>",
			},
			expected: models.Specs{
				Brand:  "ENKEI",
				Model:  models.Unknown,
				Inch:   "18",
				Width:  "8.5",
				Holes:  "5",
				PCD:    "114.3",
				Offset: "48",
			},
		},
		{
			name:     "empty listing",
			listing:  models.Listing{},
			expected: models.NewUnknownSpecs(),
		},
		{
			name:     "placeholder listing",
			listing:  models.NewUnknownListing(""),
			expected: models.NewUnknownSpecs(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.Parse(tt.listing))
		})
	}
}

func TestWheelParserSatisfiesParser(t *testing.T) {
	var p Parser = NewWheelParser()
	assert.NotNil(t, p)
}
