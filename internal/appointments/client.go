// Package appointments wraps the practice-management appointment creation API.
// The wire shapes are owned by that service; this client only assembles
// requests and decodes the created id.
package appointments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"
)

const defaultUserAgent = "agendadoc-booking/0.1"

// CreateRequest is the appointment creation payload assembled from a
// completed booking draft. Description and note are sent exactly as entered;
// blank stays blank.
type CreateRequest struct {
	PatientCPF        string   `json:"patient_cpf"`
	PatientName       string   `json:"patient_name"`
	PractitionerID    string   `json:"practitioner_id"`
	ServiceIDs        []string `json:"service_ids"`
	Description       string   `json:"description"`
	Note              string   `json:"note"`
	ServiceCategoryID string   `json:"service_category_id"`
	ServiceTypeID     string   `json:"service_type_id"`
	AppointmentTypeID string   `json:"appointment_type_id"`
	Date              string   `json:"date"`
	TimeSlot          string   `json:"time_slot"`
	LocationID        string   `json:"location_id"`
}

// CreateResponse carries the id assigned by the upstream service.
type CreateResponse struct {
	ID string `json:"id"`
}

// Config controls how the appointment client behaves.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client calls the appointment creation endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("appointments: base URL is required")
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
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// Create books the appointment and returns the created id. There is no
// automatic retry: a failure is reported once and the caller decides when to
// try again.
func (c *Client) Create(ctx context.Context, req CreateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("appointments: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/appointments", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("appointments: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("appointments: create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("appointment creation rejected",
			"status", resp.StatusCode,
			"body", string(snippet),
		)
		return "", fmt.Errorf("appointments: create: upstream status %d", resp.StatusCode)
	}

	var created CreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("appointments: decode response: %w", err)
	}
	if created.ID == "" {
		return "", errors.New("appointments: upstream returned no appointment id")
	}
	return created.ID, nil
}
