package soup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Selector
	}{
		{"tag", "div", Selector{Tag: "div"}},
		{"id", "#ProductPhoto", Selector{ID: "ProductPhoto"}},
		{"class", ".ProductImage", Selector{Classes: []string{"ProductImage"}}},
		{"compound", "div#main.item.active", Selector{Tag: "div", ID: "main", Classes: []string{"item", "active"}}},
		{"attribute exists", "[href]", Selector{Attr: &AttrTest{Name: "href", Op: OpExists}}},
		{"attribute equals single quotes", "section[itemprop='description']",
			Selector{Tag: "section", Attr: &AttrTest{Name: "itemprop", Op: OpEquals, Value: "description"}}},
		{"attribute equals double quotes", `span[itemprop="price"]`,
			Selector{Tag: "span", Attr: &AttrTest{Name: "itemprop", Op: OpEquals, Value: "price"}}},
		{"attribute equals bare", "input[type=text]",
			Selector{Tag: "input", Attr: &AttrTest{Name: "type", Op: OpEquals, Value: "text"}}},
		{"attribute contains", "div[class*='Description']",
			Selector{Tag: "div", Attr: &AttrTest{Name: "class", Op: OpContains, Value: "Description"}}},
		{"last attribute wins", "[a=1][b=2]", Selector{Attr: &AttrTest{Name: "b", Op: OpEquals, Value: "2"}}},
		{"surrounding whitespace", "  .shipping  ", Selector{Classes: []string{"shipping"}}},
		{"underscores and dashes", ".ProductDetail__shipping-v2", Selector{Classes: []string{"ProductDetail__shipping-v2"}}},
		{"unicode class", ".商品", Selector{Classes: []string{"商品"}}},
		{"combinator stops parsing", "div > p", Selector{Tag: "div"}},
		{"descendant stops parsing", "ul li", Selector{Tag: "ul"}},
		{"universal is empty", "*", Selector{}},
		{"empty", "", Selector{}},
		{"broken id", "#", Selector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSelector(tt.input))
		})
	}
}

func TestParseSelectorList(t *testing.T) {
	sels := ParseSelectorList(".ProductDetail__shipping, , .Shipping__value,")

	require.Len(t, sels, 2)
	assert.Equal(t, []string{"ProductDetail__shipping"}, sels[0].Classes)
	assert.Equal(t, []string{"Shipping__value"}, sels[1].Classes)
}

func TestSelectorMatches(t *testing.T) {
	doc := Parse(`<DIV id="main" class="item  active" data-id="3" title="Wheel Set">x</DIV>`)
	div, ok := doc.Find(ByName("div"), nil)
	require.True(t, ok)

	tests := []struct {
		selector string
		expected bool
	}{
		{"div", true},
		{"DIV", true},
		{"span", false},
		{"#main", true},
		{"#Main", false},
		{".item", true},
		{".active.item", true},
		{".item.missing", false},
		{".Item", false},
		{"[data-id]", true},
		{"[data-id=3]", true},
		{"[data-id='4']", false},
		{"[title*='Wheel']", true},
		{"[title*='wheel']", false},
		{"[title*='']", true},
		{"[missing*='x']", false},
		{"[missing]", false},
		{"div#main.item[data-id=\"3\"]", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSelector(tt.selector).Matches(div))
		})
	}
}

func TestSelectorNeverMatchesRoot(t *testing.T) {
	doc := Parse(`<p>x</p>`)

	assert.False(t, Selector{}.match(doc.n))
	assert.False(t, Selector{}.Matches(nil))
}
