package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/maltedev/wheel-listing-scraper/internal/cache"
	"github.com/maltedev/wheel-listing-scraper/internal/ratelimit"
	"github.com/maltedev/wheel-listing-scraper/internal/soup"
)

// DesktopUserAgent is sent with every request unless Options.UserAgent
// overrides it.
const DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// ErrFetchFailed is matched by every error Fetch and FetchHTML return.
var ErrFetchFailed = errors.New("fetch failed")

// FetchError reports a URL that could not be loaded after all attempts.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch HTML from %q after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

type Options struct {
	Timeout      time.Duration
	Attempts     int
	Backoff      float64
	InitialDelay time.Duration
	MaxDelay     time.Duration
	UserAgent    string
	MaxBodyBytes int64

	// Limiter is waited on once per Fetch, before the first attempt.
	Limiter ratelimit.RateLimiter
	// Cache is consulted before the network and filled after a success.
	Cache cache.PageCache
}

func DefaultOptions() Options {
	return Options{
		Timeout:      10 * time.Second,
		Attempts:     3,
		Backoff:      1.5,
		InitialDelay: 1500 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		UserAgent:    DesktopUserAgent,
		MaxBodyBytes: 5 << 20,
	}
}

// HTTPFetcher loads listing pages over HTTP with retry and backoff.
type HTTPFetcher struct {
	client *retryablehttp.Client
	opts   Options
	logger *slog.Logger
}

type attemptsKey struct{}

func New(opts Options, logger *slog.Logger) *HTTPFetcher {
	defaults := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.Attempts < 1 {
		opts.Attempts = defaults.Attempts
	}
	if opts.Backoff < 1 {
		opts.Backoff = defaults.Backoff
	}
	if opts.InitialDelay < 0 {
		opts.InitialDelay = 0
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = defaults.MaxDelay
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}

	logger = logger.With("component", "fetcher")

	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = opts.Timeout
	client.RetryMax = opts.Attempts - 1
	client.RetryWaitMin = opts.InitialDelay
	client.RetryWaitMax = opts.MaxDelay
	client.Logger = logger
	client.CheckRetry = checkRetry
	client.Backoff = multiplicativeBackoff(opts.Backoff)
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if n, ok := req.Context().Value(attemptsKey{}).(*atomic.Int32); ok {
			n.Store(int32(attempt + 1))
		}
	}
	client.ErrorHandler = func(resp *http.Response, err error, numTries int) (*http.Response, error) {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, &FetchError{Attempts: numTries, Err: err}
	}

	return &HTTPFetcher{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// checkRetry retries transport errors and every non-2xx status. A done
// context stops the loop.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return true, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return false, nil
}

// multiplicativeBackoff waits min*factor^n before retry n (0-based), capped
// at max.
func multiplicativeBackoff(factor float64) retryablehttp.Backoff {
	return func(min, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
		wait := float64(min) * math.Pow(factor, float64(attemptNum))
		if wait > float64(max) {
			return max
		}
		return time.Duration(wait)
	}
}

// Fetch loads url and parses it into a Document.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*soup.Document, error) {
	html, err := f.FetchHTML(ctx, url)
	if err != nil {
		return nil, err
	}
	return soup.Parse(html), nil
}

// FetchHTML loads url and returns the body decoded to UTF-8.
func (f *HTTPFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if html, err := f.opts.Cache.Get(ctx, url); err == nil {
		return html, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		f.logger.Warn("page cache unavailable", "url", url, "error", err)
	}

	if f.opts.Limiter != nil {
		if err := f.opts.Limiter.Wait(ctx); err != nil {
			return "", &FetchError{URL: url, Err: err}
		}
	}

	start := time.Now()
	html, err := f.get(ctx, url)
	f.recordOutcome(err)
	if err != nil {
		f.logger.Warn("fetch failed", "url", url, "error", err)
		return "", err
	}

	f.logger.Debug("fetched page", "url", url, "bytes", len(html), "duration", time.Since(start))

	if err := f.opts.Cache.Set(ctx, url, html); err != nil {
		f.logger.Warn("failed to cache page", "url", url, "error", err)
	}
	return html, nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (string, error) {
	attempts := new(atomic.Int32)
	ctx = context.WithValue(ctx, attemptsKey{}, attempts)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			fe = &FetchError{Attempts: int(attempts.Load()), Err: err}
		}
		fe.URL = url
		return "", fe
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes))
	if err != nil {
		return "", &FetchError{URL: url, Attempts: int(attempts.Load()), Err: fmt.Errorf("failed to read body: %w", err)}
	}

	html, err := decodeBody(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &FetchError{URL: url, Attempts: int(attempts.Load()), Err: err}
	}
	return html, nil
}

func (f *HTTPFetcher) recordOutcome(err error) {
	fb, ok := f.opts.Limiter.(ratelimit.Feedback)
	if !ok {
		return
	}
	if err != nil {
		fb.RecordError()
		return
	}
	fb.RecordSuccess()
}
