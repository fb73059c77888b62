package scraper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
	"github.com/maltedev/wheel-listing-scraper/internal/parser"
	"github.com/maltedev/wheel-listing-scraper/internal/soup"
)

const maxFallbackPhotos = 3

var (
	shippingLabels    = []string{"送料", "Shipping"}
	shippingSelectors = ".ProductDetail__shipping, .Shipping__value"

	descriptionSelectors = []string{
		"#ProductExplanation",
		"#ProductDescription",
		".ProductExplanation",
		"section[itemprop='description']",
		"div[class*='Description']",
	}

	gallerySelectors = []string{
		"#ProductPhoto",
		"#ProductImage",
		".ProductImage",
		"div[class*='Image']",
	}

	imageSourceAttrs = []string{"src", "data-src", "data-lazy"}
)

// Extractor pulls the listing fields out of an auction page.
type Extractor struct {
	fetcher Fetcher
	logger  *slog.Logger
}

func NewExtractor(fetcher Fetcher, logger *slog.Logger) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		logger:  logger.With("component", "listing_extractor"),
	}
}

// Extract fetches url and extracts its listing. A page that cannot be
// fetched yields a listing of placeholders, never an error.
func (e *Extractor) Extract(ctx context.Context, url string) models.Listing {
	e.logger.Info("extracting listing", "url", url)

	doc, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		e.logger.Warn("failed to fetch listing", "url", url, "error", err)
		return models.NewUnknownListing(url)
	}

	listing := e.ExtractDocument(doc)
	listing.URL = url
	return listing
}

// ExtractDocument extracts a listing from an already parsed page.
func (e *Extractor) ExtractDocument(doc *soup.Document) models.Listing {
	return models.Listing{
		Title:           extractTitle(doc),
		Price:           extractPrice(doc),
		Shipping:        extractShipping(doc),
		Photos:          extractPhotos(doc),
		DescriptionHTML: extractDescription(doc),
	}
}

func extractTitle(doc *soup.Document) string {
	title, ok := doc.Find(soup.ByName("h1"), nil)
	if !ok {
		title, ok = doc.Find(soup.ByName("title"), nil)
	}
	if !ok {
		return models.Unknown
	}
	return parser.CleanText(title.GetText(false))
}

func extractPrice(doc *soup.Document) string {
	candidates := []struct {
		name  soup.ByName
		attrs soup.Attrs
	}{
		{"span", soup.Attrs{"itemprop": soup.AttrEquals("price")}},
		{"span", soup.Attrs{"class": soup.AttrContains("Price")}},
		{"div", soup.Attrs{"class": soup.AttrContains("Price")}},
	}

	for _, c := range candidates {
		if node, ok := doc.Find(c.name, c.attrs); ok {
			return parser.CleanText(node.GetText(false))
		}
	}
	return models.Unknown
}

// extractShipping looks for a label cell such as <th>送料</th> and reads
// whatever follows it. Only the first cell carrying a label is considered.
func extractShipping(doc *soup.Document) string {
	for _, label := range shippingLabels {
		cell, ok := doc.Find(soup.ByFunc(func(t *soup.Tag) bool {
			return t.GetText(true) == label
		}), nil)
		if !ok {
			continue
		}
		if next, ok := cell.NextSibling(); ok {
			return parser.CleanText(next.GetText(false))
		}
	}

	for _, node := range doc.Select(shippingSelectors) {
		if text := parser.CleanText(node.GetText(false)); text != models.Unknown {
			return text
		}
	}
	return models.Unknown
}

func extractDescription(doc *soup.Document) string {
	for _, sel := range descriptionSelectors {
		if node, ok := doc.SelectOne(sel); ok {
			return node.DecodeContents()
		}
	}
	return models.Unknown
}

// extractPhotos takes the images of the first gallery container that has
// any, falling back to the first few <img src> of the page.
func extractPhotos(doc *soup.Document) []string {
	base := baseHref(doc)
	photos := make([]string, 0)

	for _, sel := range gallerySelectors {
		container, ok := doc.SelectOne(sel)
		if !ok {
			continue
		}
		for _, img := range container.FindAll(soup.ByName("img"), nil) {
			if src := imageSource(img); src != "" {
				photos = append(photos, absoluteURL(src, base))
			}
		}
		if len(photos) > 0 {
			return photos
		}
	}

	for _, img := range doc.FindAll(soup.ByName("img"), nil) {
		if src := img.Get("src", ""); src != "" {
			photos = append(photos, absoluteURL(src, base))
		}
		if len(photos) >= maxFallbackPhotos {
			break
		}
	}
	return photos
}

func imageSource(img *soup.Tag) string {
	for _, attr := range imageSourceAttrs {
		if v := img.Get(attr, ""); v != "" {
			return v
		}
	}
	return ""
}

func baseHref(doc *soup.Document) string {
	base, ok := doc.Find(soup.ByName("base"), nil)
	if !ok {
		return ""
	}
	href := base.Get("href", "")
	if href != "" && !strings.HasSuffix(href, "/") {
		href += "/"
	}
	return href
}

// absoluteURL joins a relative src onto base. Leading '.' and '/' characters
// of src are dropped first.
func absoluteURL(src, base string) string {
	if strings.HasPrefix(src, "http") || base == "" {
		return src
	}
	return base + strings.TrimLeft(src, "./")
}
