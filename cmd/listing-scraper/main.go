package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/maltedev/wheel-listing-scraper/internal/app"
	"github.com/maltedev/wheel-listing-scraper/internal/config"
	"github.com/maltedev/wheel-listing-scraper/internal/logger"
	"github.com/maltedev/wheel-listing-scraper/internal/models"
	"github.com/maltedev/wheel-listing-scraper/internal/scraper"
)

func main() {
	var (
		url   = flag.String("url", "", "Listing URL to fetch")
		file  = flag.String("file", "", "Read listing HTML from a file instead of fetching (- for stdin)")
		stage = flag.String("stage", "all", "Stage to run: all, extract, specs, title, description")
	)
	flag.Parse()

	if (*url == "") == (*file == "") {
		fmt.Fprintln(os.Stderr, "Please provide exactly one of -url or -file")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(os.Stderr, cfg.Logging.Level, "text")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize scraper", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	var listing models.Listing
	if *url != "" {
		if err := scraper.ValidateURL(*url); err != nil {
			log.Error("Invalid URL", "error", err)
			os.Exit(2)
		}
		listing = a.Service.Extract(ctx, *url)
	} else {
		html, err := readFile(*file)
		if err != nil {
			log.Error("Failed to read HTML", "file", *file, "error", err)
			os.Exit(1)
		}
		listing = a.Service.ExtractHTML(html)
	}

	out, err := runStage(a.Service, *stage, listing)
	if err != nil {
		log.Error("Failed to run stage", "error", err)
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error("Failed to write output", "error", err)
		os.Exit(1)
	}
}

func runStage(s *scraper.Service, stage string, listing models.Listing) (interface{}, error) {
	switch stage {
	case "extract":
		return listing, nil
	case "specs":
		return s.ParseSpecs(listing), nil
	case "title":
		return map[string]string{"title": s.Title(s.ParseSpecs(listing))}, nil
	case "description":
		specs := s.ParseSpecs(listing)
		return map[string]string{"description_html": s.Description(specs, listing.DescriptionHTML)}, nil
	case "all":
		specs := s.ParseSpecs(listing)
		return map[string]interface{}{
			"listing":          listing,
			"specs":            specs,
			"title":            s.Title(specs),
			"description_html": s.Description(specs, listing.DescriptionHTML),
		}, nil
	default:
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
}

func readFile(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
