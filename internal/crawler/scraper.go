// Package crawler provides the fetch and markup query collaborators used by source adapters.
package crawler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"storescrape/internal/config"
	"storescrape/pkg/utils"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Scraper performs single GET requests. It never retries.
type Scraper struct {
	client *resty.Client
}

// NewScraper creates a new scraper instance with default settings.
func NewScraper() *Scraper {
	return NewScraperWithConfig(&config.HTTPConfig{
		UserAgent:  utils.DefaultUserAgent,
		TimeoutSec: 30,
	})
}

// NewScraperWithConfig creates a new scraper from the http section of the config.
func NewScraperWithConfig(cfg *config.HTTPConfig) *Scraper {
	client := resty.New()
	client.SetTimeout(cfg.GetTimeout())
	client.SetHeaders(utils.BuildHeaders(map[string]string{
		"User-Agent": cfg.UserAgent,
	}))

	return &Scraper{client: client}
}

// Fetch returns the raw body of url. Headers override the client defaults.
func (s *Scraper) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	body, _, _, err := s.FetchWithMetrics(ctx, url, headers)

	return body, err
}

// FetchWithMetrics returns (body, statusCode, duration, error).
func (s *Scraper) FetchWithMetrics(ctx context.Context, url string, headers map[string]string) ([]byte, int, time.Duration, error) {
	if err := utils.ValidateURL(url); err != nil {
		return nil, 0, 0, err
	}

	startTime := time.Now()

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)

	duration := time.Since(startTime)

	if err != nil {
		return nil, 0, duration, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, resp.StatusCode(), duration, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatusCode, resp.StatusCode(), url)
	}

	return resp.Body(), resp.StatusCode(), duration, nil
}

// Scrape fetches url and returns the body as text.
func (s *Scraper) Scrape(ctx context.Context, url string, headers map[string]string) (string, error) {
	body, err := s.Fetch(ctx, url, headers)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// ScrapeJSON fetches url and decodes the JSON body into out.
func (s *Scraper) ScrapeJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	body, err := s.Fetch(ctx, url, headers)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", url, err)
	}

	return nil
}
