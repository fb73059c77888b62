// Package render turns parsed wheel specifications back into a listing
// title and an HTML description block.
package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
	"github.com/maltedev/wheel-listing-scraper/internal/parser"
)

// Title joins the known specification parts with single spaces:
// brand, model, inch, width+"J", holes+"H", "PCD"+pcd and "OFFSET"+offset.
// When nothing is known the result is models.Unknown.
func Title(specs models.Specs) string {
	parts := []struct {
		value  string
		format string
	}{
		{specs.Brand, "%s"},
		{specs.Model, "%s"},
		{specs.Inch, "%s"},
		{specs.Width, "%sJ"},
		{specs.Holes, "%sH"},
		{specs.PCD, "PCD%s"},
		{specs.Offset, "OFFSET%s"},
	}

	var kept []string
	for _, p := range parts {
		v := parser.CleanText(p.value)
		if models.IsUnknown(v) {
			continue
		}
		kept = append(kept, fmt.Sprintf(p.format, v))
	}
	if len(kept) == 0 {
		return models.Unknown
	}
	return strings.Join(kept, " ")
}

type specRow struct {
	Label string
	Value string
}

// Values are embedded verbatim. The raw description is listing markup and
// must survive as HTML.
var descriptionTemplate = template.Must(template.New("description").Parse(
	`<section class="kpi-description">
  <h2>商品仕様</h2>
  <table class="kpi-specs">
    <tbody>
      {{range .Rows}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}
    </tbody>
  </table>
  <h2>商品説明</h2>
  <div class="kpi-raw-description">{{.Description}}</div>
</section>`))

// Description renders the specification table followed by the cleaned raw
// description. Unknown values are shown as models.Unknown.
func Description(specs models.Specs, rawDescription string) string {
	data := struct {
		Rows        []specRow
		Description string
	}{
		Rows: []specRow{
			{"ブランド", parser.CleanText(specs.Brand)},
			{"モデル", parser.CleanText(specs.Model)},
			{"リム径", parser.CleanText(specs.Inch)},
			{"リム幅", parser.CleanText(specs.Width)},
			{"穴数", parser.CleanText(specs.Holes)},
			{"PCD", parser.CleanText(specs.PCD)},
			{"オフセット", parser.CleanText(specs.Offset)},
		},
		Description: parser.CleanText(rawDescription),
	}

	var sb strings.Builder
	if err := descriptionTemplate.Execute(&sb, data); err != nil {
		// The template only reads string fields of data.
		panic(fmt.Sprintf("render description: %v", err))
	}
	return sb.String()
}
