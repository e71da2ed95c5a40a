// Package patients wraps the patient search API. Search results are raw
// upstream records with inconsistent field names; normalization into the
// canonical shape lives in the recent package's decode table.
package patients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"log/slog"
)

// SearchResult is one page of raw patient records. Records are kept opaque;
// consumers decode the fields they need.
type SearchResult struct {
	Records []json.RawMessage `json:"records"`
	Page    int               `json:"page"`
	Total   int               `json:"total"`
}

// Config controls how the patient search client behaves.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client queries the patient search service.
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
		return nil, errors.New("patients: base URL is required")
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

// Search queries patients by term. kind selects the search field upstream
// (name, cpf, phone); page is 1-based. A payload that is not the expected
// shape decodes to an empty page rather than an error.
func (c *Client) Search(ctx context.Context, term, kind string, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("term", term)
	if kind != "" {
		q.Set("type", kind)
	}
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/patients/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("patients: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("patients: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("patients: search: upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("patients: read search response: %w", err)
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err == nil {
		if result.Records == nil {
			result.Records = []json.RawMessage{}
		}
		if result.Page == 0 {
			result.Page = page
		}
		return &result, nil
	}

	// Some deployments return a bare array instead of the paginated envelope.
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err == nil {
		return &SearchResult{Records: records, Page: page, Total: len(records)}, nil
	}

	c.logger.Warn("patient search returned a malformed payload, treating as empty",
		"term_len", len(term),
	)
	return &SearchResult{Records: []json.RawMessage{}, Page: page}, nil
}
