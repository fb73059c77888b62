package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maltedev/wheel-listing-scraper/internal/events"
	"github.com/maltedev/wheel-listing-scraper/internal/models"
	"github.com/maltedev/wheel-listing-scraper/internal/parser"
	"github.com/maltedev/wheel-listing-scraper/internal/render"
	"github.com/maltedev/wheel-listing-scraper/internal/soup"
)

// Service runs the listing pipeline: extract, parse specs, then render a
// title and description.
type Service struct {
	extractor *Extractor
	parser    parser.Parser
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(extractor *Extractor, parser parser.Parser, logger *slog.Logger) *Service {
	return &Service{
		extractor: extractor,
		parser:    parser,
		publisher: events.Nop{},
		logger:    logger.With("component", "scraper"),
	}
}

// WithPublisher announces every finished run through p.
func (s *Service) WithPublisher(p events.Publisher) *Service {
	s.publisher = p
	return s
}

// Run fetches url and runs every stage over it.
func (s *Service) Run(ctx context.Context, url string) models.Result {
	start := time.Now()
	listing := s.extractor.Extract(ctx, url)
	return s.finish(ctx, start, listing)
}

// RunHTML runs every stage over markup supplied by the caller.
func (s *Service) RunHTML(ctx context.Context, html string) models.Result {
	start := time.Now()
	listing := s.extractor.ExtractDocument(soup.Parse(html))
	return s.finish(ctx, start, listing)
}

func (s *Service) finish(ctx context.Context, start time.Time, listing models.Listing) models.Result {
	specs := s.ParseSpecs(listing)
	result := models.Result{
		RunID:           uuid.NewString(),
		Listing:         listing,
		Specs:           specs,
		Title:           s.Title(specs),
		DescriptionHTML: s.Description(specs, listing.DescriptionHTML),
		StartedAt:       start,
		Duration:        time.Since(start),
	}

	s.logger.Info("listing processed",
		"run_id", result.RunID,
		"url", listing.URL,
		"title", result.Title,
		"missing_specs", specs.Missing(),
		"duration", result.Duration)

	// A failed publish never fails the run.
	if err := s.publisher.PublishListingProcessed(ctx, result); err != nil {
		s.logger.Warn("failed to publish listing event", "run_id", result.RunID, "error", err)
	}

	return result
}

func (s *Service) Extract(ctx context.Context, url string) models.Listing {
	return s.extractor.Extract(ctx, url)
}

func (s *Service) ExtractHTML(html string) models.Listing {
	return s.extractor.ExtractDocument(soup.Parse(html))
}

func (s *Service) ParseSpecs(listing models.Listing) models.Specs {
	return s.parser.Parse(listing)
}

func (s *Service) Title(specs models.Specs) string {
	return render.Title(specs)
}

func (s *Service) Description(specs models.Specs, rawDescription string) string {
	return render.Description(specs, rawDescription)
}
