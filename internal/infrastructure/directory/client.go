// Package directory is the HTTP client of the local business
// directory API, covering the "pj" place namespace.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/domain"
	apperrors "github.com/places-api/internal/pkg/errors"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
	enabled    bool
	log        *zap.Logger
}

func NewClient(cfg config.DirectoryConfig, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		enabled:    cfg.Enabled,
		log:        log,
	}
}

func (c *Client) Enabled() bool { return c.enabled }

func (c *Client) GetRawBusiness(ctx context.Context, internalID string) (domain.RawRecord, error) {
	endpoint := fmt.Sprintf("%s/v1/businesses/%s", c.baseURL, url.PathEscape(internalID))
	var record domain.RawRecord
	if err := c.fetch(ctx, endpoint, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) SearchRawBusinesses(ctx context.Context, what string, bbox [4]float64, limit int) ([]domain.RawRecord, error) {
	params := url.Values{
		"what": {what},
		"bbox": {fmt.Sprintf("%f,%f,%f,%f", bbox[0], bbox[1], bbox[2], bbox[3])},
		"max":  {fmt.Sprintf("%d", limit)},
	}
	endpoint := c.baseURL + "/v1/businesses/search?" + params.Encode()
	var payload struct {
		Listings []domain.RawRecord `json:"search_results"`
	}
	if err := c.fetch(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Listings, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperrors.ErrUpstreamUnavailable
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("directory request failed", zap.Error(err))
		return apperrors.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.ErrPlaceNotFound
	case resp.StatusCode != http.StatusOK:
		c.log.Error("directory responded with error",
			zap.Int("status", resp.StatusCode))
		return apperrors.ErrUpstreamUnavailable
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apperrors.ErrUpstreamUnavailable
	}
	return nil
}
