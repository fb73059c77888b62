package parser

import (
	"github.com/maltedev/wheel-listing-scraper/internal/models"
)

type Parser interface {
	Parse(listing models.Listing) models.Specs
}
