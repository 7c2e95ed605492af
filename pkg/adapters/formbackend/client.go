// Package formbackend posts finished submissions to a hosted form endpoint
// that accepts JSON (Formspree-style).
package formbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/domain"
)

// DefaultTimeout bounds one submission attempt.
const DefaultTimeout = 15 * time.Second

// Client implements ports.Submitter. It never retries.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout sets the per-attempt timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.http = &http.Client{Timeout: d}
	}
}

// WithLogger configures a logger for the Client.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New creates a Client posting to endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody covers the error shapes hosted form backends return.
type errorBody struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Submit posts the record payload once. Any non-2xx answer or transport
// failure is returned as *domain.SubmissionError.
func (c *Client) Submit(ctx context.Context, record domain.SubmissionRecord) error {
	body, err := json.Marshal(record.Payload())
	if err != nil {
		return &domain.SubmissionError{Message: "could not encode submission", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &domain.SubmissionError{Message: "invalid form endpoint", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Form backend unreachable", "endpoint", c.endpoint, "err", err)
		return &domain.SubmissionError{Message: "form backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	c.logger.Debug("Form backend answered", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	return &domain.SubmissionError{
		Status:  resp.StatusCode,
		Message: decodeError(raw, resp.StatusCode),
	}
}

func decodeError(raw []byte, status int) string {
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		if eb.Error != "" {
			return eb.Error
		}
		msgs := make([]string, 0, len(eb.Errors))
		for _, e := range eb.Errors {
			if e.Field != "" {
				msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
			} else {
				msgs = append(msgs, e.Message)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return http.StatusText(status)
}
