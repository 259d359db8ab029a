// Package geocode resolves place names to coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"storescrape/internal/config"
	"storescrape/internal/models"
)

// Geocoding errors.
var (
	ErrNotFound       = errors.New("place not found")
	ErrMalformedPlace = errors.New("malformed place name")
	ErrBadResponse    = errors.New("geocoder responded with an error")
)

// Geocoder resolves a place name to a latitude/longitude pair.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (models.Coordinates, error)
}

// Nominatim queries an OpenStreetMap Nominatim search endpoint.
type Nominatim struct {
	client  *resty.Client
	baseURL string
}

// NewNominatim creates a Nominatim client from the geocoder section of the config.
func NewNominatim(cfg *config.GeocoderConfig, timeout time.Duration) *Nominatim {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept-Language", "en")

	if cfg.Email != "" {
		client.SetHeader("From", cfg.Email)
	}

	return &Nominatim{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "?&"),
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the first match for place.
func (n *Nominatim) Geocode(ctx context.Context, place string) (models.Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" || strings.Trim(place, ", ") == "" {
		return models.UnknownCoordinates(), fmt.Errorf("%w: %q", ErrMalformedPlace, place)
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "json",
			"limit":  "1",
			"q":      place,
		}).
		Get(n.baseURL)
	if err != nil {
		return models.UnknownCoordinates(), fmt.Errorf("geocode %q: %w", place, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return models.UnknownCoordinates(), fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode())
	}

	var results []searchResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return models.UnknownCoordinates(), fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	if len(results) == 0 {
		return models.UnknownCoordinates(), fmt.Errorf("%w: %q", ErrNotFound, place)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.UnknownCoordinates(), fmt.Errorf("%w: lat %q", ErrBadResponse, results[0].Lat)
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.UnknownCoordinates(), fmt.Errorf("%w: lon %q", ErrBadResponse, results[0].Lon)
	}

	return models.NewCoordinates(lat, lon), nil
}
