package soup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<div id="main" class="page">
<h1 class="ProductTitle__text">RAYS TE37 Sonic 15インチ</h1>
<div class="Price"><span itemprop="price">120000</span></div>
<p class="lead">Forged <b>wheel</b> set</p>
<p class="lead muted">Used, good condition</p>
<div id="ProductPhoto" data-role="gallery">
<img class="ProductImage" src="https://example.com/image1.jpg" alt="logo">
<img class="ProductImage" data-src="https://example.com/image2.jpg" alt="side">
</div>
<a href="https://example.com/seller">seller</a>
<a href="/help">help</a>
<div class="card featured">Featured</div>
<div class="card">Plain</div>
</div>`

// The selector subset shared with goquery must agree on well-formed markup.
func TestSelectAgreesWithGoquery(t *testing.T) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	require.NoError(t, err)
	doc := Parse(listingHTML)

	selectors := []string{
		"div",
		"p",
		"p.lead",
		".lead.muted",
		"#main",
		"#ProductPhoto",
		"[data-role]",
		"[itemprop='price']",
		"a[href*='example']",
		"img[alt=logo]",
		".card.featured",
		"img.ProductImage",
		"h1.ProductTitle__text",
		"section",
	}

	for _, sel := range selectors {
		t.Run(sel, func(t *testing.T) {
			var want []string
			gq.Find(sel).Each(func(_ int, s *goquery.Selection) {
				want = append(want, s.Text())
			})

			var got []string
			for _, tag := range doc.Select(sel) {
				got = append(got, tag.GetText(false))
			}
			assert.Equal(t, want, got)
		})
	}
}
