// Package sources implements the store listing adapters run by the pipeline.
package sources

import (
	"context"
	"fmt"

	"storescrape/internal/crawler"
	"storescrape/internal/models"
	"storescrape/internal/schedule"
	"storescrape/pkg/utils"
)

// KFC reads the restaurant search API.
type KFC struct {
	url     string
	scraper *crawler.Scraper
}

// NewKFC creates an adapter for the API at url.
func NewKFC(url string, scraper *crawler.Scraper) *KFC {
	return &KFC{url: url, scraper: scraper}
}

// FetchPage decodes the API response object.
func (k *KFC) FetchPage(ctx context.Context) (map[string]any, error) {
	var page map[string]any
	if err := k.scraper.ScrapeJSON(ctx, k.url, nil, &page); err != nil {
		return nil, err
	}

	return page, nil
}

// ExtractRaw returns the searchResults list.
func (k *KFC) ExtractRaw(page map[string]any) ([]any, error) {
	return utils.DigList(page, "searchResults")
}

// Normalize maps each search result to a record.
func (k *KFC) Normalize(_ context.Context, raw []any) ([]models.Record, error) {
	records := make([]models.Record, 0, len(raw))

	for i, item := range raw {
		r, err := k.record(item)
		if err != nil {
			return nil, fmt.Errorf("search result %d: %w", i, err)
		}

		records = append(records, r)
	}

	return records, nil
}

func (k *KFC) record(item any) (models.Record, error) {
	contacts, err := utils.DigObject(item, "storePublic", "contacts")
	if err != nil {
		return models.Record{}, err
	}

	address, err := localized(contacts, "streetAddress")
	if err != nil {
		return models.Record{}, err
	}

	name, err := localized(contacts, "coordinates", "properties", "name")
	if err != nil {
		return models.Record{}, err
	}

	latlon, err := geoJSONPoint(contacts, "coordinates", "geometry", "coordinates")
	if err != nil {
		return models.Record{}, err
	}

	phones, err := utils.DigString(contacts, "", "phoneNumber")
	if err != nil {
		return models.Record{}, err
	}

	days, err := utils.DigList(item, "storePublic", "openingHours", "regularDaily")
	if err != nil {
		return models.Record{}, err
	}

	pairs := make([][2]string, 0, len(days))

	for _, day := range days {
		from, err := utils.DigString(day, "", "timeFrom")
		if err != nil {
			return models.Record{}, err
		}

		till, err := utils.DigString(day, "", "timeTill")
		if err != nil {
			return models.Record{}, err
		}

		pairs = append(pairs, [2]string{from, till})
	}

	hours, err := schedule.Compress(schedule.Label(pairs))
	if err != nil {
		return models.Record{}, err
	}

	return models.Record{
		Address:      address,
		LatLon:       latlon,
		Name:         name,
		Phones:       phones,
		WorkingHours: hours,
	}, nil
}

// localized returns the English text of a translated field, or the Russian
// text when no English is given. The fallback is the Russian text itself,
// never the language code.
func localized(v any, keys ...string) (string, error) {
	texts, err := utils.DigObject(v, keys...)
	if err != nil {
		return "", err
	}

	for _, lang := range []string{"en", "ru"} {
		s, err := utils.DigString(texts, "", lang)
		if err != nil {
			return "", err
		}

		if s != "" {
			return s, nil
		}
	}

	return "", nil
}

// geoJSONPoint reads a two-number coordinate array, keeping its order.
func geoJSONPoint(v any, keys ...string) (models.Coordinates, error) {
	point, err := utils.DigList(v, keys...)
	if err != nil {
		return models.UnknownCoordinates(), err
	}

	if len(point) == 0 {
		return models.UnknownCoordinates(), nil
	}

	if len(point) != 2 {
		return models.UnknownCoordinates(), fmt.Errorf("%w: point has %d values, want 2", utils.ErrTypeMismatch, len(point))
	}

	a, okA := point[0].(float64)
	b, okB := point[1].(float64)

	if !okA || !okB {
		return models.UnknownCoordinates(), fmt.Errorf("%w: point values are %T and %T, want numbers", utils.ErrTypeMismatch, point[0], point[1])
	}

	return models.NewCoordinates(a, b), nil
}
