// Package suggest asks a generative-text service for book titles and falls
// back to a static table whenever the service cannot be used.
package suggest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/ratelimit"
)

const (
	// DefaultBaseURL is the OpenRouter API endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is a free instruction-tuned model on OpenRouter.
	DefaultModel       = "meta-llama/llama-3.1-8b-instruct:free"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7

	jsonOnlyInstruction = "\n\nIMPORTANT: Your response must be valid JSON only, with no additional text before or after."

	defaultFailureThreshold = 3
	defaultOpenTimeout      = 30 * time.Second
)

// Config holds everything the client needs to reach the service. An empty
// Credential puts the client in offline mode.
type Config struct {
	Credential  string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	// Referer and Title are optional OpenRouter attribution headers.
	Referer string
	Title   string
}

// DefaultConfig returns the provider defaults without a credential.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client produces candidate titles for a prompt.
type Client struct {
	cfg         Config
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
	breaker     *gobreaker.CircuitBreaker[string]
}

// Option is a functional option for configuring the Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient       HTTPDoer
	rateLimiter      *ratelimit.Limiter
	failureThreshold uint32
	openTimeout      time.Duration
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(o *clientOptions) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(o *clientOptions) {
		if limiter != nil {
			o.rateLimiter = limiter
		}
	}
}

// WithCircuitBreaker sets how many consecutive transport failures open the
// breaker and how long it stays open.
func WithCircuitBreaker(failureThreshold uint32, openTimeout time.Duration) Option {
	return func(o *clientOptions) {
		if failureThreshold > 0 {
			o.failureThreshold = failureThreshold
		}
		if openTimeout > 0 {
			o.openTimeout = openTimeout
		}
	}
}

// New creates a suggestion client. Zero values in cfg are replaced with the
// provider defaults, except Credential.
func New(cfg Config, opts ...Option) *Client {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaults.Temperature
	}

	o := clientOptions{
		httpClient:       &http.Client{},
		rateLimiter:      ratelimit.New("Suggestion", 0),
		failureThreshold: defaultFailureThreshold,
		openTimeout:      defaultOpenTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	threshold := o.failureThreshold
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "suggestion",
		MaxRequests: 1,
		Timeout:     o.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		cfg:         cfg,
		httpClient:  o.httpClient,
		rateLimiter: o.rateLimiter,
		breaker:     breaker,
	}
}

// Offline reports whether the client will skip the network entirely.
func (c *Client) Offline() bool {
	return c.cfg.Credential == ""
}

// Suggest returns candidate titles for prompt. It never fails: when the
// service is unavailable or its reply cannot be parsed, the fallback table
// is used instead.
func (c *Client) Suggest(ctx context.Context, prompt string) []book.CandidateTitle {
	if c.Offline() {
		slog.Warn("Suggestion credential not configured, using fallback titles")
		return Fallback(prompt)
	}

	content, err := c.breaker.Execute(func() (string, error) {
		return c.complete(ctx, prompt+jsonOnlyInstruction)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Warn("Suggestion service circuit open, using fallback titles")
		} else {
			slog.Warn("Suggestion request failed, using fallback titles", "error", err)
		}
		return Fallback(prompt)
	}

	reply := ParseReply(content)
	if reply.Kind != Parsed {
		slog.Warn("Suggestion reply was not a JSON title list, using fallback titles", "content", truncate(content, 200))
		return Fallback(prompt)
	}

	slog.Debug("Suggestion service returned titles", "count", len(reply.Titles))
	return reply.Titles
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends a single-message chat completion and returns the reply text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	requestBody, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Credential)
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("received non-2xx status code: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from suggestion service")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func truncate(value string, width int) string {
	if len(value) <= width {
		return value
	}
	return value[:width] + "..."
}
