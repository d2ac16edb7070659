package omdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/mmcdole/cinesearch/internal/domain"
)

const (
	defaultBaseURL = "https://www.omdbapi.com/"
	defaultTimeout = 10 * time.Second
	userAgent      = "cinesearch/1.0"
	maxBodyBytes   = 1 << 20
)

// OMDb error messages with a specific meaning
const (
	msgInvalidKey   = "Invalid API key!"
	msgNoKey        = "No API key provided."
	msgRequestLimit = "Request limit reached!"
)

// Options tunes the client transport. Zero values select defaults.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables rate limiting
	Retries           uint    // Attempts per request, including the first
	RetryDelay        time.Duration
	HTTPClient        *http.Client
}

// Client implements domain.CatalogRepository for the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	attempts   uint
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewClient creates a new OMDb API client
func NewClient(apiKey string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:    opts.BaseURL,
		apiKey:     apiKey,
		httpClient: opts.HTTPClient,
		attempts:   opts.Retries,
		retryDelay: opts.RetryDelay,
		logger:     logger,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.attempts == 0 {
		c.attempts = 1
	}
	if c.retryDelay <= 0 {
		c.retryDelay = 200 * time.Millisecond
	}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c
}

// transientError marks a failure worth retrying
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// doRequest performs a GET against the API root with the key in the query string.
// Transport failures and 5xx responses are retried; anything else is returned as is.
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	query.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "?" + query.Encode()

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.attempt(ctx, reqURL)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var t *transientError
			return errors.As(err, &t)
		}),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying omdb request", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		var t *transientError
		if errors.As(err, &t) || errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error("omdb request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) attempt(ctx context.Context, reqURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("omdb request", "query", redact(req.URL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &transientError{err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &transientError{fmt.Errorf("failed to read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// OMDb answers 401 with a normal envelope; prefer its message
		reason := msgInvalidKey
		var env Envelope
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			reason = env.Error
		}
		return nil, &domain.CatalogError{Reason: reason, Err: domain.ErrAuthFailed}
	case resp.StatusCode >= 500:
		c.logger.Warn("omdb server error", "status", resp.StatusCode)
		return nil, &transientError{fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("omdb request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// redact hides the API key in logged URLs
func redact(u *url.URL) string {
	q := u.Query()
	if q.Has("apikey") {
		q.Set("apikey", "***")
	}
	return q.Encode()
}

// classify maps a Response:"False" message to a domain error
func classify(op, message string) error {
	var sentinel error
	switch {
	case message == msgInvalidKey || message == msgNoKey:
		sentinel = domain.ErrAuthFailed
	case strings.HasPrefix(message, strings.TrimSuffix(msgRequestLimit, "!")):
		sentinel = domain.ErrRateLimited
	default:
		// "Movie not found!", "Incorrect IMDb ID.", "Too many results." and friends
		sentinel = domain.ErrNotFound
	}
	return &domain.CatalogError{Op: op, Reason: message, Err: sentinel}
}

// withOp stamps op on a catalog error raised below the operation
func withOp(op string, err error) error {
	var ce *domain.CatalogError
	if errors.As(err, &ce) && ce.Op == "" {
		ce.Op = op
	}
	return err
}

// Search returns the first page of titles matching query
func (c *Client) Search(ctx context.Context, query string) (*domain.SearchPage, error) {
	body, err := c.doRequest(ctx, url.Values{"s": {query}})
	if err != nil {
		return nil, withOp("search", err)
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	if resp.Response != "True" {
		return nil, classify("search", resp.Error)
	}

	page := MapSearchResponse(&resp)
	c.logger.Debug("omdb search", "query", query, "results", len(page.Results), "total", page.TotalCount)
	return page, nil
}

// Lookup returns full metadata for the title with the given IMDb ID
func (c *Client) Lookup(ctx context.Context, id string) (*domain.MovieDetail, error) {
	body, err := c.doRequest(ctx, url.Values{"i": {id}, "plot": {"full"}})
	if err != nil {
		return nil, withOp("lookup", err)
	}

	var resp TitleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse title response: %w", err)
	}
	if resp.Response != "True" {
		return nil, classify("lookup", resp.Error)
	}

	return MapTitle(&resp), nil
}
