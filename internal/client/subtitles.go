package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/apperrors"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/config"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/metrics"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
)

// maxErrorBody bounds how much of a failed response is kept in the error
const maxErrorBody = 1024

// SearchSubtitles queries GET /subtitles with the given filters.
func (c *client) SearchSubtitles(ctx context.Context, params models.SearchParams) (*models.SearchResponse, error) {
	start := time.Now()
	result, err := c.searchSubtitles(ctx, params)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.UpstreamRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return result, err
}

func (c *client) searchSubtitles(ctx context.Context, params models.SearchParams) (*models.SearchResponse, error) {
	logger := config.GetLogger()

	endpoint, err := c.buildSearchURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logger.Debug().Str("url", endpoint).Msg("Searching OpenSubtitles")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrUpstreamUnavailable{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &apperrors.ErrUpstreamStatus{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &apperrors.ErrUpstreamMalformed{Err: err}
	}

	logger.Debug().
		Int("totalCount", result.TotalCount).
		Int("records", len(result.Data)).
		Msg("OpenSubtitles search completed")

	return &result, nil
}

func (c *client) buildSearchURL(params models.SearchParams) (string, error) {
	endpoint, err := url.Parse(c.baseURL + "/subtitles")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	values, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode query parameters: %w", err)
	}
	endpoint.RawQuery = values.Encode()

	return endpoint.String(), nil
}
