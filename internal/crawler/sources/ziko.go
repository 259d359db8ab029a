package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"storescrape/internal/crawler"
	"storescrape/internal/models"
	"storescrape/pkg/utils"
)

// Ziko reads the pharmacy AJAX endpoint. The response is an object keyed by
// pharmacy id and items are kept in document order.
type Ziko struct {
	url     string
	scraper *crawler.Scraper
}

// NewZiko creates an adapter for the endpoint at url.
func NewZiko(url string, scraper *crawler.Scraper) *Ziko {
	return &Ziko{url: url, scraper: scraper}
}

// FetchPage returns the raw response body.
func (z *Ziko) FetchPage(ctx context.Context) ([]byte, error) {
	return z.scraper.Fetch(ctx, z.url, nil)
}

// ExtractRaw decodes each value of the top-level object, in order.
func (z *Ziko) ExtractRaw(page []byte) ([]map[string]any, error) {
	_, dataType, _, err := jsonparser.Get(page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pharmacies: %w", err)
	}

	switch dataType {
	case jsonparser.Null:
		return []map[string]any{}, nil
	case jsonparser.Object:
	default:
		return nil, fmt.Errorf("%w: pharmacies are %s, want object", utils.ErrTypeMismatch, dataType)
	}

	items := []map[string]any{}

	err = jsonparser.ObjectEach(page, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		if dataType != jsonparser.Object {
			return fmt.Errorf("%w: pharmacy %s is %s, want object", utils.ErrTypeMismatch, key, dataType)
		}

		var item map[string]any
		if err := json.Unmarshal(value, &item); err != nil {
			return fmt.Errorf("pharmacy %s: %w", key, err)
		}

		items = append(items, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Normalize maps each pharmacy to a record. The endpoint carries no phones.
func (z *Ziko) Normalize(_ context.Context, raw []map[string]any) ([]models.Record, error) {
	records := make([]models.Record, 0, len(raw))

	for i, item := range raw {
		r, err := z.record(item)
		if err != nil {
			return nil, fmt.Errorf("pharmacy %d: %w", i, err)
		}

		records = append(records, r)
	}

	return records, nil
}

func (z *Ziko) record(item map[string]any) (models.Record, error) {
	address, err := utils.DigString(item, "", "address")
	if err != nil {
		return models.Record{}, err
	}

	name, err := utils.DigString(item, "", "title")
	if err != nil {
		return models.Record{}, err
	}

	lat, okLat, err := utils.DigFloat(item, "lat")
	if err != nil {
		return models.Record{}, err
	}

	lng, okLng, err := utils.DigFloat(item, "lng")
	if err != nil {
		return models.Record{}, err
	}

	latlon := models.UnknownCoordinates()
	if okLat && okLng {
		latlon = models.NewCoordinates(lat, lng)
	}

	hours, err := utils.DigString(item, "", "mp_pharmacy_hours")
	if err != nil {
		return models.Record{}, err
	}

	return models.Record{
		Address:      address,
		LatLon:       latlon,
		Name:         name,
		Phones:       models.PhonesUnavailable,
		WorkingHours: []string{strings.ReplaceAll(hours, "<br>", " ")},
	}, nil
}
