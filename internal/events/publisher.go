package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
)

// EventType represents the type of event
type EventType string

const (
	// EventTypeListingProcessed is published after every pipeline run
	EventTypeListingProcessed EventType = "LISTING_PROCESSED"

	DefaultStream = "stream:listing_processed"
)

// ListingProcessedPayload carries the generated output of one run.
type ListingProcessedPayload struct {
	EventID     string       `json:"event_id"`
	EventType   string       `json:"event_type"`
	Timestamp   time.Time    `json:"timestamp"`
	RunID       string       `json:"run_id"`
	URL         string       `json:"url,omitempty"`
	Title       string       `json:"title"`
	Price       string       `json:"price"`
	Shipping    string       `json:"shipping"`
	Photos      []string     `json:"photos"`
	Specs       models.Specs `json:"specs"`
	Missing     []string     `json:"missing_specs,omitempty"`
	Description string       `json:"description_html"`
	Source      string       `json:"source"`
}

// NewListingProcessedPayload builds the event payload for a finished run.
func NewListingProcessedPayload(result models.Result) *ListingProcessedPayload {
	return &ListingProcessedPayload{
		RunID:       result.RunID,
		URL:         result.Listing.URL,
		Title:       result.Title,
		Price:       result.Listing.Price,
		Shipping:    result.Listing.Shipping,
		Photos:      result.Listing.Photos,
		Specs:       result.Specs,
		Missing:     result.Specs.Missing(),
		Description: result.DescriptionHTML,
	}
}

type Publisher interface {
	PublishListingProcessed(ctx context.Context, result models.Result) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) PublishListingProcessed(context.Context, models.Result) error { return nil }

// RedisClient interface for Redis operations (for testing)
type RedisClient interface {
	XAdd(ctx context.Context, args *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher appends events to a Redis stream.
type StreamPublisher struct {
	redis  RedisClient
	stream string
	maxLen int64
	logger *slog.Logger
}

type StreamConfig struct {
	Stream string
	// MaxLen trims the stream approximately; zero keeps every entry.
	MaxLen int64
}

func NewStreamPublisher(client RedisClient, logger *slog.Logger, config StreamConfig) *StreamPublisher {
	if config.Stream == "" {
		config.Stream = DefaultStream
	}

	return &StreamPublisher{
		redis:  client,
		stream: config.Stream,
		maxLen: config.MaxLen,
		logger: logger.With("component", "event_publisher"),
	}
}

// PublishListingProcessed publishes a LISTING_PROCESSED event for result.
func (p *StreamPublisher) PublishListingProcessed(ctx context.Context, result models.Result) error {
	payload := NewListingProcessedPayload(result)
	payload.EventID = uuid.New().String()
	payload.EventType = string(EventTypeListingProcessed)
	payload.Timestamp = time.Now()
	payload.Source = "wheel-listing-scraper"

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data":       string(data),
			"type":       payload.EventType,
			"event_type": payload.EventType,
			"event_id":   payload.EventID,
			"run_id":     payload.RunID,
			"timestamp":  fmt.Sprintf("%d", payload.Timestamp.UnixNano()),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	id, err := p.redis.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}

	p.logger.Debug("event published",
		"type", payload.EventType,
		"event_id", payload.EventID,
		"run_id", payload.RunID,
		"stream", p.stream,
		"stream_id", id)

	return nil
}
