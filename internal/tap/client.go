// Package tap submits synchronous ADQL queries to an IVOA Table Access
// Protocol service and decodes the JSON results.
package tap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the NASA Exoplanet Archive TAP service.
const DefaultBaseURL = "https://exoplanetarchive.ipac.caltech.edu/TAP"

// ErrorKind classifies a ServiceError. Distinct kinds let callers tell a
// rejected query from an unreachable or misbehaving service.
type ErrorKind string

const (
	// ErrNetwork is a transport failure before any response arrived.
	ErrNetwork ErrorKind = "network"
	// ErrTimeout means the request deadline elapsed.
	ErrTimeout ErrorKind = "timeout"
	// ErrBadQuery means the service rejected the ADQL (HTTP 400).
	ErrBadQuery ErrorKind = "bad_query"
	// ErrUpstream is any other non-2xx response.
	ErrUpstream ErrorKind = "upstream"
	// ErrDecode means the response body was not valid JSON.
	ErrDecode ErrorKind = "decode"
)

// ServiceError is a failed TAP exchange. An empty result set is not a
// ServiceError; it decodes as a zero-length list.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int // zero unless the service responded
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tap: %s: HTTP %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tap: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Client submits ADQL to a TAP /sync endpoint. It performs no retries and no
// caching: every call reflects live upstream state.
type Client struct {
	http    *http.Client
	baseURL string
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the TAP service base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger attaches a logger for per-query events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a TAP client against the Exoplanet Archive by default.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: DefaultBaseURL,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query posts the ADQL statement to the /sync endpoint requesting JSON output
// and decodes the row array into result, which must be a pointer to a slice
// of a row type. A query with no matches decodes into an empty slice.
func (c *Client) Query(ctx context.Context, adql string, result any) error {
	form := url.Values{
		"REQUEST": {"doQuery"},
		"LANG":    {"ADQL"},
		"FORMAT":  {"json"},
		"QUERY":   {adql},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sync", strings.NewReader(form.Encode()))
	if err != nil {
		return &ServiceError{Kind: ErrNetwork, Message: "create request: " + err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		kind := ErrNetwork
		var netErr net.Error
		if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
			kind = ErrTimeout
		}
		c.logger.Error().Err(err).Str("kind", string(kind)).Msg("tap query failed")
		return &ServiceError{Kind: kind, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ServiceError{Kind: ErrNetwork, Message: "read response: " + err.Error(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		kind := ErrUpstream
		if resp.StatusCode == http.StatusBadRequest {
			// The archive answers 400 with a VOTable describing the ADQL error.
			kind = ErrBadQuery
		}
		c.logger.Error().Int("status", resp.StatusCode).Str("kind", string(kind)).Msg("tap query rejected")
		return &ServiceError{
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Message:    summarize(body),
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &ServiceError{Kind: ErrDecode, Message: "decode result: " + err.Error(), Err: err}
	}

	c.logger.Debug().
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(body)).
		Msg("tap query ok")
	return nil
}

// summarize trims an error body to a single log-friendly line.
func summarize(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	return s
}
