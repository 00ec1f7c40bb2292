package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sajjad-MoBe/fetchprobe/outcome"
)

// Client performs remote fetch operations: it retrieves a document over
// HTTP, validates the transport outcome, and parses the body as
// structured data.
type Client struct {
	// HTTP client for making requests
	httpClient *http.Client
	config     Config
}

// Config defines fetch behavior
type Config struct {
	// Timeout bounds the whole retrieval, connection included
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	// Zero means a single attempt with no retry.
	MaxRetries int
	// RetryDelay is the initial backoff interval between retries
	RetryDelay time.Duration
	// MaxBodyBytes caps how much of the response body is read
	MaxBodyBytes int64
	// Headers are set on every request
	Headers map[string]string
}

// DefaultConfig returns the default fetch configuration: no retry and a
// 30 second timeout.
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRetries:   0,
		RetryDelay:   100 * time.Millisecond,
		MaxBodyBytes: 10 << 20,
	}
}

// New creates a new client instance
func New(config Config) *Client {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	// A negative retry count would wrap when converted for the backoff
	// policy; treat it as no retry
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// Fetch retrieves the document at rawURL and returns the outcome:
// Success with the parsed value, or Failure with the failure kind.
// Retries, when enabled, apply only to transport failures and 5xx
// statuses; other failures are terminal.
func (c *Client) Fetch(ctx context.Context, rawURL string) outcome.Outcome {
	var out outcome.Outcome

	operation := func() error {
		out = c.fetchOnce(ctx, rawURL)
		if c.config.MaxRetries > 0 && retryable(out) {
			return out.Err()
		}
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	if c.config.RetryDelay > 0 {
		expo.InitialInterval = c.config.RetryDelay
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(expo, uint64(c.config.MaxRetries)),
		ctx,
	)

	// The last attempt's outcome is reported even when retries run out
	_ = backoff.Retry(operation, policy)
	return out
}

// fetchOnce performs one retrieval: request, status validation, parse.
func (c *Client) fetchOnce(ctx context.Context, rawURL string) outcome.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return outcome.Failure(outcome.NewError(outcome.KindTransport, "transport error", err))
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return outcome.Failure(outcome.NewError(outcome.KindTransport, "transport error", err))
	}
	defer resp.Body.Close()

	// Non-success status is terminal for this attempt; the body is not parsed
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return outcome.Failure(outcome.NewStatusError(resp.StatusCode))
	}

	// Read one byte past the cap so a capped body is distinguishable from
	// one that fits exactly: a truncated prefix may itself decode cleanly
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes+1))
	if err != nil {
		return outcome.Failure(outcome.NewError(outcome.KindTransport, "transport error", err))
	}
	if int64(len(body)) > c.config.MaxBodyBytes {
		return outcome.Failure(outcome.NewError(outcome.KindParse, "malformed body",
			fmt.Errorf("body exceeds %d byte limit", c.config.MaxBodyBytes)))
	}

	doc, err := outcome.Decode(bytes.NewReader(body))
	if err != nil {
		return outcome.Failure(outcome.NewError(outcome.KindParse, "malformed body", err))
	}

	return outcome.Success(doc)
}

// retryable reports whether the outcome may succeed on another attempt
func retryable(out outcome.Outcome) bool {
	ferr := out.Err()
	if ferr == nil {
		return false
	}
	switch ferr.Kind {
	case outcome.KindTransport:
		return true
	case outcome.KindStatus:
		return ferr.StatusCode >= 500
	}
	return false
}
