package models

import (
	"time"
)

// Unknown is the placeholder for every field that could not be determined.
const Unknown = "不明"

type Listing struct {
	URL             string   `json:"url,omitempty"`
	Title           string   `json:"title"`
	Price           string   `json:"price"`
	Shipping        string   `json:"shipping"`
	Photos          []string `json:"photos"`
	DescriptionHTML string   `json:"description_html"`
}

type Specs struct {
	Brand  string `json:"brand"`
	Model  string `json:"model"`
	Inch   string `json:"inch"`
	Width  string `json:"width"`
	Holes  string `json:"holes"`
	PCD    string `json:"pcd"`
	Offset string `json:"offset"`
}

// Result is the output of one full pipeline run.
type Result struct {
	RunID           string        `json:"run_id"`
	Listing         Listing       `json:"listing"`
	Specs           Specs         `json:"specs"`
	Title           string        `json:"title"`
	DescriptionHTML string        `json:"description_html"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration_ns"`
}

// NewUnknownListing returns a listing with every text field set to Unknown
// and no photos.
func NewUnknownListing(url string) Listing {
	return Listing{
		URL:             url,
		Title:           Unknown,
		Price:           Unknown,
		Shipping:        Unknown,
		Photos:          make([]string, 0),
		DescriptionHTML: Unknown,
	}
}

func NewUnknownSpecs() Specs {
	return Specs{
		Brand:  Unknown,
		Model:  Unknown,
		Inch:   Unknown,
		Width:  Unknown,
		Holes:  Unknown,
		PCD:    Unknown,
		Offset: Unknown,
	}
}

func IsUnknown(s string) bool {
	return s == "" || s == Unknown
}

// Missing lists the spec fields that are still unknown, in display order.
func (s Specs) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"brand", s.Brand},
		{"model", s.Model},
		{"inch", s.Inch},
		{"width", s.Width},
		{"holes", s.Holes},
		{"pcd", s.PCD},
		{"offset", s.Offset},
	} {
		if IsUnknown(f.value) {
			missing = append(missing, f.name)
		}
	}
	return missing
}
