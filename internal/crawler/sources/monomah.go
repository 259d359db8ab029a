package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"storescrape/internal/crawler"
	"storescrape/internal/geocode"
	"storescrape/internal/logger"
	"storescrape/internal/models"
	"storescrape/pkg/utils"
)

// BrowserUserAgent is sent to the shop map page, which rejects unknown clients.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/98.0.4758.102 Safari/537.36"

// MonomahName is the brand name given to every shop.
const MonomahName = "Мономах"

var (
	shopRule  = crawler.Rule{Tag: "div", Class: "shop"}
	nameRule  = crawler.Rule{Tag: "p", Class: "name"}
	phoneRule = crawler.Rule{Tag: "p", Class: "phone"}
)

// Monomah reads the shop map HTML page and geocodes each shop's mall name.
type Monomah struct {
	url      string
	city     string
	scraper  *crawler.Scraper
	geocoder geocode.Geocoder
	log      *logger.Logger
}

// NewMonomah creates an adapter for the page at url. Places are resolved
// within city.
func NewMonomah(url, city string, scraper *crawler.Scraper, geocoder geocode.Geocoder, log *logger.Logger) *Monomah {
	return &Monomah{
		url:      url,
		city:     city,
		scraper:  scraper,
		geocoder: geocoder,
		log:      log,
	}
}

// FetchPage downloads and parses the page.
func (m *Monomah) FetchPage(ctx context.Context) (*goquery.Document, error) {
	page, err := m.scraper.Scrape(ctx, m.url, map[string]string{"User-Agent": BrowserUserAgent})
	if err != nil {
		return nil, err
	}

	return crawler.ParseHTML(page)
}

// ExtractRaw returns the shop blocks in document order.
func (m *Monomah) ExtractRaw(page *goquery.Document) ([]*goquery.Selection, error) {
	return crawler.SelectAll(page.Selection, shopRule), nil
}

// Normalize maps each shop block to a record. A shop without an address is
// an error; a shop that cannot be geocoded gets unknown coordinates.
func (m *Monomah) Normalize(ctx context.Context, raw []*goquery.Selection) ([]models.Record, error) {
	records := make([]models.Record, 0, len(raw))

	for i, shop := range raw {
		address, err := crawler.Text(shop, nameRule)
		if err != nil {
			return nil, fmt.Errorf("shop %d: %w", i, err)
		}

		phones, err := crawler.Text(shop, phoneRule)
		if errors.Is(err, crawler.ErrElementMissing) {
			phones = models.PhonesUnavailable
		}

		latlon, err := m.locate(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("shop %d: %w", i, err)
		}

		records = append(records, models.Record{
			Address:      address,
			LatLon:       latlon,
			Name:         MonomahName,
			Phones:       phones,
			WorkingHours: models.ClosedHours(),
		})
	}

	return records, nil
}

// locate geocodes the mall named in parentheses in address. Only context
// cancellation is reported as an error.
func (m *Monomah) locate(ctx context.Context, address string) (models.Coordinates, error) {
	place, ok := PlaceName(address, m.city)
	if !ok {
		m.log.Debug("no place in address", "address", address)

		return models.UnknownCoordinates(), nil
	}

	latlon, err := m.geocoder.Geocode(ctx, place)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.UnknownCoordinates(), ctxErr
		}

		m.log.Warn("geocoding failed", "place", place, "error", err)

		return models.UnknownCoordinates(), nil
	}

	return latlon, nil
}

// PlaceName builds a geocoder query from the parenthesized part of address,
// dropping the "ТРЦ" mall prefix and appending city.
func PlaceName(address, city string) (string, bool) {
	inner, ok := utils.Between(address, "(", ")")
	if !ok {
		return "", false
	}

	inner = utils.NormalizeWhitespace(strings.ReplaceAll(inner, "ТРЦ", ""))
	if inner == "" {
		return "", false
	}

	if city == "" {
		return inner, true
	}

	return inner + ", " + city, true
}
