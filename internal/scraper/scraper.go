package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/maltedev/wheel-listing-scraper/internal/soup"
)

var (
	ErrInvalidURL = errors.New("invalid listing URL")
)

// Fetcher loads a listing page. *fetcher.HTTPFetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*soup.Document, error)
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
