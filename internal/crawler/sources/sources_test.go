package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"storescrape/internal/crawler"
	"storescrape/internal/geocode"
	"storescrape/internal/logger"
	"storescrape/internal/models"
	"storescrape/internal/output"
	"storescrape/internal/pipeline"
)

// serveFixture serves a testdata file at every path.
func serveFixture(t *testing.T, name string, check func(r *http.Request)) *httptest.Server {
	t.Helper()

	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}

		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// serveBody serves a literal body at every path.
func serveBody(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

type fakeGeocoder struct {
	known   map[string]models.Coordinates
	queries []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, place string) (models.Coordinates, error) {
	f.queries = append(f.queries, place)

	if err := ctx.Err(); err != nil {
		return models.UnknownCoordinates(), err
	}

	c, ok := f.known[place]
	if !ok {
		return models.UnknownCoordinates(), geocode.ErrNotFound
	}

	return c, nil
}

// runToFile runs adapter through the pipeline into a temp file.
func runToFile[P, R any](t *testing.T, adapter pipeline.Adapter[P, R]) (*pipeline.Result, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.json")
	runner := pipeline.NewRunner(logger.Discard())

	res, err := pipeline.Run(context.Background(), runner, "test", adapter, output.NewJSONFileSink(path))
	require.NoError(t, err)

	return res, path
}

func testDeps(g geocode.Geocoder) Deps {
	return Deps{
		Scraper:  crawler.NewScraper(),
		Geocoder: g,
		Logger:   logger.Discard(),
	}
}

var _ pipeline.Adapter[map[string]any, any] = (*KFC)(nil)
var _ pipeline.Adapter[[]byte, map[string]any] = (*Ziko)(nil)
