package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/use-agent/folio/models"
)

// PortfoliosPath is the extraction endpoint, relative to the service base URL.
const PortfoliosPath = "/api/portfolios"

// maxBody caps the response size read from the extraction service.
const maxBody = 10 << 20

// Extractor turns a portfolio URL into a Profile.
type Extractor interface {
	Extract(ctx context.Context, url string) (*models.Profile, error)
}

// Client talks to the external extraction service over its JSON contract.
// It uses net/http directly; the service exposes a single endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the service at baseURL.
// Pass a nil httpClient to use one without a timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type extractRequest struct {
	URL string `json:"url"`
}

// Extract posts url to the extraction service and decodes the profile.
//
// Every failure is a *models.SubmitError: transport problems carry
// ErrCodeTransportFailed, non-2xx statuses and undecodable bodies carry
// ErrCodeRequestFailed.
func (c *Client) Extract(ctx context.Context, url string) (*models.Profile, error) {
	body, err := json.Marshal(extractRequest{URL: url})
	if err != nil {
		return nil, models.NewSubmitError(models.ErrCodeInternal, models.MsgRequestFailed, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PortfoliosPath, bytes.NewReader(body))
	if err != nil {
		return nil, models.TransportFailed(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("extraction request failed", "url", url, "error", err)
		return nil, models.TransportFailed(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, models.TransportFailed(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("extraction service returned error status",
			"url", url,
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, models.RequestFailed(resp.StatusCode, fmt.Errorf("API responded with status: %d", resp.StatusCode))
	}

	var profile models.Profile
	if err := json.Unmarshal(respBody, &profile); err != nil {
		return nil, models.RequestFailed(resp.StatusCode, fmt.Errorf("decode profile: %w", err))
	}
	profile.SourceURL = url

	slog.Debug("extraction succeeded",
		"url", url,
		"employers", len(profile.Employers),
		"videos", len(profile.Videos),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &profile, nil
}

// Classify converts any error returned by an Extractor into a SubmitError.
// Errors that are not already classified count as transport failures.
func Classify(err error) *models.SubmitError {
	var se *models.SubmitError
	if errors.As(err, &se) {
		return se
	}
	return models.TransportFailed(err)
}
