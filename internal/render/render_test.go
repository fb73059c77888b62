package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
	"github.com/maltedev/wheel-listing-scraper/internal/soup"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		specs    models.Specs
		expected string
	}{
		{
			name:     "all parts",
			specs:    models.Specs{Brand: "BBS", Model: "LM", Inch: "18", Width: "8.5", Holes: "5", PCD: "114.3", Offset: "+38"},
			expected: "BBS LM 18 8.5J 5H PCD114.3 OFFSET+38",
		},
		{
			name:     "unknown parts are skipped",
			specs:    models.Specs{Brand: "RAYS", Model: "TE37", Inch: "15", Width: "7", Holes: models.Unknown, PCD: "100", Offset: "+35"},
			expected: "RAYS TE37 15 7J PCD100 OFFSET+35",
		},
		{
			name:     "unknown brand",
			specs:    models.Specs{Brand: models.Unknown, Model: "CE28", Inch: models.Unknown, Width: models.Unknown, Holes: "4", PCD: models.Unknown, Offset: models.Unknown},
			expected: "CE28 4H",
		},
		{
			name:     "values are cleaned",
			specs:    models.Specs{Brand: "  WORK  ", Model: "Emotion \n CR"},
			expected: "WORK Emotion CR",
		},
		{
			name:     "nothing known",
			specs:    models.NewUnknownSpecs(),
			expected: models.Unknown,
		},
		{
			name:     "zero value",
			specs:    models.Specs{},
			expected: models.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Title(tt.specs))
		})
	}
}

func TestDescription(t *testing.T) {
	specs := models.Specs{Brand: "RAYS", Model: "TE37", Inch: "15", Width: "7", Holes: models.Unknown, PCD: "100", Offset: "+35"}

	got := Description(specs, "\n  <p>メーカー：RAYS</p>\n  <p>美品</p>\n")

	expected := `<section class="kpi-description">
  <h2>商品仕様</h2>
  <table class="kpi-specs">
    <tbody>
      <tr><th>ブランド</th><td>RAYS</td></tr><tr><th>モデル</th><td>TE37</td></tr><tr><th>リム径</th><td>15</td></tr><tr><th>リム幅</th><td>7</td></tr><tr><th>穴数</th><td>不明</td></tr><tr><th>PCD</th><td>100</td></tr><tr><th>オフセット</th><td>+35</td></tr>
    </tbody>
  </table>
  <h2>商品説明</h2>
  <div class="kpi-raw-description"><p>メーカー：RAYS</p> <p>美品</p></div>
</section>`
	assert.Equal(t, expected, got)
}

func TestDescriptionEmbedsMarkupUnescaped(t *testing.T) {
	got := Description(models.Specs{Brand: "A&B"}, `<b class="x">bold</b> & more`)

	assert.Contains(t, got, `<td>A&B</td>`)
	assert.Contains(t, got, `<b class="x">bold</b> & more`)
	assert.True(t, strings.HasPrefix(got, `<section class="kpi-description">`))

	doc := soup.Parse(got)
	raw, ok := doc.SelectOne(".kpi-raw-description")
	if assert.True(t, ok) {
		b, ok := raw.Find(soup.ByName("b"), nil)
		assert.True(t, ok)
		assert.Equal(t, "bold", b.GetText(true))
	}
	assert.Len(t, doc.FindAll(soup.ByName("tr"), nil), 7)
}

func TestDescriptionWithoutRawDescription(t *testing.T) {
	got := Description(models.NewUnknownSpecs(), "")

	doc := soup.Parse(got)
	cells := doc.FindAll(soup.ByName("td"), nil)
	assert.Len(t, cells, 7)
	for _, c := range cells {
		assert.Equal(t, models.Unknown, c.GetText(true))
	}
	raw, ok := doc.SelectOne(".kpi-raw-description")
	if assert.True(t, ok) {
		assert.Equal(t, models.Unknown, raw.GetText(true))
	}
}
