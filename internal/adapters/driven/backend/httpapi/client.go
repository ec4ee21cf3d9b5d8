package httpapi

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

	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driven"
	"github.com/custodia-labs/geofind/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.LocationBackend = (*Client)(nil)

// Request headers.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderAccept    = "Accept"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 8 << 20

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is prefixed to /api/search/... (required).
	BaseURL string

	// RateLimit is the request budget per second. Zero or less disables it.
	RateLimit float64

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration

	// PostalCodeSegment replaces the postal-code path segment, e.g. "plz".
	// Empty keeps the default.
	PostalCodeSegment string

	// HTTPClient overrides the default client (optional).
	HTTPClient *http.Client
}

// ConfigFromSettings maps application settings to a client config.
func ConfigFromSettings(s domain.BackendSettings) Config {
	return Config{
		BaseURL:   s.BaseURL,
		RateLimit: s.RateLimit,
		Timeout:   s.Timeout,

		PostalCodeSegment: s.PostalCodeSegment,
	}
}

// Client talks to the location search backend.
type Client struct {
	client  *http.Client
	limiter *RateLimiter

	mu      sync.RWMutex
	baseURL       string
	timeout       time.Duration
	postalSegment string
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	baseURL, err := normaliseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		client:  httpClient,
		limiter: NewRateLimiter(cfg.RateLimit),
		baseURL: baseURL,
		timeout: cfg.Timeout,

		postalSegment: strings.TrimSpace(cfg.PostalCodeSegment),
	}, nil
}

// Reconfigure applies new backend settings to a live client.
// In-flight requests keep the settings they started with.
func (c *Client) Reconfigure(s domain.BackendSettings) error {
	baseURL, err := normaliseBaseURL(s.BaseURL)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.baseURL = baseURL
	c.timeout = s.Timeout
	c.postalSegment = strings.TrimSpace(s.PostalCodeSegment)
	c.mu.Unlock()

	c.limiter.SetRate(s.RateLimit)
	logger.Debug("Backend reconfigured: %s (rate %.2f/s, timeout %s)", baseURL, s.RateLimit, s.Timeout)
	return nil
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SearchURL builds the endpoint for a search type and raw value.
func (c *Client) SearchURL(t domain.SearchType, value string) string {
	c.mu.RLock()
	base, segment := c.baseURL, c.postalSegment
	c.mu.RUnlock()

	path := t.PathSegment()
	if t == domain.SearchTypePostalCode && segment != "" {
		path = url.PathEscape(segment)
	}
	return base + "/api/search/" + path + "/" + url.PathEscape(value)
}

// Search runs one backend search.
func (c *Client) Search(ctx context.Context, req driven.SearchRequest) (*driven.SearchPayload, error) {
	c.mu.RLock()
	timeout := c.timeout
	c.mu.RUnlock()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	endpoint := c.SearchURL(req.Type, req.Value)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set(HeaderAccept, "application/json")
	if req.ID != "" {
		httpReq.Header.Set(HeaderRequestID, req.ID)
	}

	logger.Debug("GET %s", endpoint)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logger.Debug("GET %s -> %d (%d bytes)", endpoint, resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.BackendError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return decodePayload(body)
}

// decodePayload decodes a response body. A body that is valid JSON but not
// an object yields an empty payload.
func decodePayload(body []byte) (*driven.SearchPayload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return &driven.SearchPayload{}, nil
	}

	return &driven.SearchPayload{
		Markers: obj["markers"],
		Info:    obj["info"],
		Count:   obj["count"],
	}, nil
}

func normaliseBaseURL(raw string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return "", ErrMissingBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid backend base URL %q", raw)
	}
	return base, nil
}
