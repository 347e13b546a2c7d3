// Package ghl is a client for the GoHighLevel (LeadConnector) REST API.
//
// All endpoint methods funnel through a single request path that injects the
// bearer token and Version header, logs the exchange, and normalizes non-2xx
// responses into *APIError. The client holds no state across calls beyond
// its configuration and is safe for concurrent use.
package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/logging"
)

const (
	// DefaultBaseURL is the GoHighLevel services endpoint.
	DefaultBaseURL = "https://services.leadconnectorhq.com"

	// DefaultVersion is the Version header for most endpoint families.
	DefaultVersion = "2021-07-28"

	// ConversationsVersion is the older Version header required by the
	// conversations/messaging endpoints.
	ConversationsVersion = "2021-04-15"

	// requestTimeout applies uniformly to every request; there is no
	// per-call override.
	requestTimeout = 30 * time.Second
)

// Config holds the client's connection settings. LocationID is the default
// sub-account merged into calls that omit one.
type Config struct {
	BaseURL    string
	APIKey     string
	Version    string
	LocationID string
}

// APIError is a normalized remote API failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GHL API Error (%d): %s", e.StatusCode, e.Message)
}

// Client talks to the GoHighLevel API. Construct with NewClient.
type Client struct {
	mu         sync.RWMutex
	cfg        Config
	httpClient *http.Client
	log        *logging.Logger
}

// NewClient creates a client from the given config. Zero-value BaseURL and
// Version fall back to the service defaults. If log is nil a silent logger
// is used.
func NewClient(cfg Config, log *logging.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if log == nil {
		log = logging.New(io.Discard, "silent", "json")
	}

	c := &Client{cfg: cfg, log: log.Sub("ghl")}
	c.httpClient = &http.Client{
		Timeout: requestTimeout,
		// oauth2.Transport injects the Authorization header, reading the
		// token from the client itself so UpdateAPIKey takes effect on
		// subsequent requests.
		Transport: &oauth2.Transport{Source: c, Base: http.DefaultTransport},
	}
	return c
}

// Token implements oauth2.TokenSource over the mutable API key.
func (c *Client) Token() (*oauth2.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &oauth2.Token{AccessToken: c.cfg.APIKey}, nil
}

// Config returns a snapshot of the current configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// UpdateAPIKey replaces the bearer token used for subsequent requests.
// In-flight requests keep the token they started with.
func (c *Client) UpdateAPIKey(key string) {
	c.mu.Lock()
	c.cfg.APIKey = key
	c.mu.Unlock()
	c.log.Info().Msg("API key rotated")
}

// defaultLocationID returns v, or the configured default location when v is
// empty.
func (c *Client) defaultLocationID(v string) string {
	if v != "" {
		return v
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.LocationID
}

type requestOptions struct {
	version     string
	contentType string
	raw         io.Reader
}

type requestOption func(*requestOptions)

// withVersion overrides the Version header for endpoint families pinned to
// an older API version.
func withVersion(v string) requestOption {
	return func(o *requestOptions) { o.version = v }
}

// withRawBody sends a pre-encoded body (multipart uploads) instead of JSON.
func withRawBody(contentType string, body io.Reader) requestOption {
	return func(o *requestOptions) {
		o.contentType = contentType
		o.raw = body
	}
}

// do performs one request/response exchange. body, when non-nil, is JSON
// encoded. The response body is returned verbatim on 2xx; any other outcome
// is an error: *APIError for remote rejections, a wrapped transport error
// otherwise.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, opts ...requestOption) ([]byte, error) {
	c.mu.RLock()
	o := requestOptions{version: c.cfg.Version}
	base := c.cfg.BaseURL
	c.mu.RUnlock()
	for _, opt := range opts {
		opt(&o)
	}

	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	contentType := ""
	switch {
	case o.raw != nil:
		rdr = o.raw
		contentType = o.contentType
	case body != nil:
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ghl: marshal request body: %w", err)
		}
		rdr = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, fmt.Errorf("ghl: build request: %w", err)
	}
	req.Header.Set("Version", o.version)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	reqID := uuid.NewString()[:8]
	start := time.Now()
	c.log.Debug().
		Str("requestId", reqID).
		Str("method", method).
		Str("path", path).
		Msg("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("requestId", reqID).Err(err).Msg("transport failure")
		return nil, fmt.Errorf("ghl: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ghl: read response: %w", err)
	}

	c.log.Debug().
		Str("requestId", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(data, resp.Status),
		}
	}
	return data, nil
}

// remoteMessage extracts the error message from a failure response body.
// GoHighLevel returns {"message": "..."} or {"message": ["...", "..."]};
// array messages are joined with commas.
func remoteMessage(body []byte, fallback string) string {
	var envelope struct {
		Message flexMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return string(envelope.Message)
	}
	if s := strings.TrimSpace(string(body)); s != "" && len(s) < 512 {
		return s
	}
	return fallback
}

// flexMessage decodes a JSON value that may be a string or an array of
// strings.
type flexMessage string

func (m *flexMessage) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*m = flexMessage(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*m = flexMessage(strings.Join(arr, ", "))
		return nil
	}
	// Non-string message shapes are ignored; the caller falls back to the
	// HTTP status text.
	*m = ""
	return nil
}

// decode unmarshals a response body into out, reporting the envelope shape
// on mismatch.
func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("ghl: unexpected response shape: %w", err)
	}
	return nil
}

// compact removes empty optional values from a request payload so absent
// fields are omitted rather than sent as zero values.
func compact(m map[string]any) map[string]any {
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			delete(m, k)
		case string:
			if val == "" {
				delete(m, k)
			}
		case []string:
			if len(val) == 0 {
				delete(m, k)
			}
		case map[string]any:
			if len(val) == 0 {
				delete(m, k)
			}
		}
	}
	return m
}
