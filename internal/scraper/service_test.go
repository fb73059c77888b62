package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
	"github.com/maltedev/wheel-listing-scraper/internal/parser"
	"github.com/maltedev/wheel-listing-scraper/internal/soup"
)

func newTestService(pages map[string]string) *Service {
	return NewService(
		NewExtractor(&fakeFetcher{pages: pages}, testLogger()),
		parser.NewWheelParser(),
		testLogger(),
	)
}

func TestServiceRun(t *testing.T) {
	url := "https://auctions.yahoo.co.jp/sample"
	s := newTestService(map[string]string{url: sampleListing})

	result := s.Run(context.Background(), url)

	_, err := uuid.Parse(result.RunID)
	require.NoError(t, err)
	assert.False(t, result.StartedAt.IsZero())

	assert.Equal(t, models.Specs{
		Brand:  "RAYS",
		Model:  "TE37",
		Inch:   "15",
		Width:  "7",
		Holes:  models.Unknown,
		PCD:    "100",
		Offset: "+35",
	}, result.Specs)
	assert.Equal(t, "RAYS TE37 15 7J PCD100 OFFSET+35", result.Title)
	assert.Equal(t, []string{"https://example.com/image1.jpg", "https://example.com/image2.jpg"}, result.Listing.Photos)

	doc := soup.Parse(result.DescriptionHTML)
	raw, ok := doc.SelectOne(".kpi-raw-description")
	require.True(t, ok)
	assert.Contains(t, raw.GetText(true), "メーカー：RAYS")
}

func TestServiceRunIDsAreUnique(t *testing.T) {
	s := newTestService(nil)

	a := s.RunHTML(context.Background(), sampleListing)
	b := s.RunHTML(context.Background(), sampleListing)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Title, b.Title)
	assert.Empty(t, a.Listing.URL)
}

func TestServiceRunUnreachablePage(t *testing.T) {
	s := newTestService(nil)

	result := s.Run(context.Background(), "https://auctions.yahoo.co.jp/gone")

	assert.Equal(t, models.NewUnknownListing("https://auctions.yahoo.co.jp/gone"), result.Listing)
	assert.Equal(t, models.NewUnknownSpecs(), result.Specs)
	assert.Equal(t, models.Unknown, result.Title)
	assert.Contains(t, result.DescriptionHTML, `<div class="kpi-raw-description">不明</div>`)
}

func TestServiceStages(t *testing.T) {
	s := newTestService(nil)

	listing := s.ExtractHTML(sampleListing)
	specs := s.ParseSpecs(listing)

	assert.Equal(t, "RAYS", specs.Brand)
	assert.Equal(t, "RAYS TE37 15 7J PCD100 OFFSET+35", s.Title(specs))
	assert.Contains(t, s.Description(specs, listing.DescriptionHTML), "<tr><th>PCD</th><td>100</td></tr>")
}

type recordingPublisher struct {
	results []models.Result
	err     error
}

func (p *recordingPublisher) PublishListingProcessed(_ context.Context, result models.Result) error {
	p.results = append(p.results, result)
	return p.err
}

func TestServicePublishesFinishedRuns(t *testing.T) {
	pub := &recordingPublisher{}
	s := newTestService(nil).WithPublisher(pub)

	result := s.RunHTML(context.Background(), sampleListing)

	require.Len(t, pub.results, 1)
	assert.Equal(t, result, pub.results[0])
}

func TestServicePublishFailureKeepsResult(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("stream unavailable")}
	s := newTestService(nil).WithPublisher(pub)

	result := s.RunHTML(context.Background(), sampleListing)

	assert.Len(t, pub.results, 1)
	assert.Equal(t, "RAYS TE37 15 7J PCD100 OFFSET+35", result.Title)
}
