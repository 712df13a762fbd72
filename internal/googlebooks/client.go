// Package googlebooks provides a client for the Google Books volumes API.
package googlebooks

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/bookfinder/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public Google Books API endpoint.
	DefaultBaseURL       = "https://www.googleapis.com/books/v1"
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 10
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Google Books API client.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	backoff       func(attempt int) time.Duration
}

// NewClient creates a new Google Books API client. The zero-option client
// uses an http.Client without a timeout.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:       DefaultBaseURL,
		httpClient:    &http.Client{},
		rateLimiter:   ratelimit.New("GoogleBooks", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
		backoff:       backoffDelay,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Google Books API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithAPIKey sets the optional API key appended to every request.
func WithAPIKey(key string) Option {
	return func(client *Client) {
		client.apiKey = key
	}
}

// WithRetryAttempts sets the number of attempts for transient network failures.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithBackoff replaces the delay used between retry attempts.
func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(client *Client) {
		if fn != nil {
			client.backoff = fn
		}
	}
}
