package sources

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storescrape/internal/crawler"
	"storescrape/internal/models"
	"storescrape/internal/output"
	"storescrape/internal/pipeline"
	"storescrape/pkg/utils"
)

func TestKFC_Run(t *testing.T) {
	srv := serveFixture(t, "kfc.json", nil)

	res, path := runToFile(t, NewKFC(srv.URL, crawler.NewScraper()))
	require.True(t, res.OK, "%v", res.Err)

	want := []models.Record{
		{
			Address:      "Nemiga st. 5",
			LatLon:       models.NewCoordinates(27.5615, 53.9045),
			Name:         "KFC Немига",
			Phones:       "+375 17 000-00-01",
			WorkingHours: []string{"пн-пт 09:00-22:00", "сб-вс 10:00-23:00"},
		},
		{
			Address:      "Pobediteley ave. 9",
			LatLon:       models.UnknownCoordinates(),
			Name:         "",
			Phones:       models.PhonesUnavailable,
			WorkingHours: models.ClosedHours(),
		},
	}

	if diff := cmp.Diff(want, res.Records); diff != "" {
		t.Fatal(diff)
	}

	written, err := output.ReadRecords(path)
	require.NoError(t, err)
	assert.Equal(t, want, written)
}

func TestKFC_ExtractRaw(t *testing.T) {
	k := NewKFC("http://unused", crawler.NewScraper())

	items, err := k.ExtractRaw(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = k.ExtractRaw(nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = k.ExtractRaw(map[string]any{"searchResults": map[string]any{"a": 1.0}})
	require.ErrorIs(t, err, utils.ErrTypeMismatch)
}

func TestKFC_Normalize_TypeMismatch(t *testing.T) {
	k := NewKFC("http://unused", crawler.NewScraper())

	tests := []struct {
		name string
		item any
	}{
		{"item not object", "store"},
		{"contacts not object", map[string]any{"storePublic": map[string]any{"contacts": []any{}}}},
		{"point with three values", map[string]any{"storePublic": map[string]any{"contacts": map[string]any{
			"coordinates": map[string]any{"geometry": map[string]any{"coordinates": []any{1.0, 2.0, 3.0}}},
		}}}},
		{"point with text", map[string]any{"storePublic": map[string]any{"contacts": map[string]any{
			"coordinates": map[string]any{"geometry": map[string]any{"coordinates": []any{"1", "2"}}},
		}}}},
		{"phone not text", map[string]any{"storePublic": map[string]any{"contacts": map[string]any{
			"phoneNumber": 375.0,
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := k.Normalize(context.Background(), []any{tt.item})
			require.ErrorIs(t, err, utils.ErrTypeMismatch)
		})
	}
}

func TestKFC_WrongShapeIsTypeValidation(t *testing.T) {
	srv := serveBody(t, `{"searchResults": "none"}`)

	res, _ := runToFile(t, NewKFC(srv.URL, crawler.NewScraper()))
	require.False(t, res.OK)
	assert.Equal(t, pipeline.TypeValidationError, res.Err.Kind)
	assert.Equal(t, pipeline.Extracting, res.FailedAt)
}

func TestKFC_ArrayBodyIsTypeValidation(t *testing.T) {
	srv := serveBody(t, `[1, 2]`)

	res, _ := runToFile(t, NewKFC(srv.URL, crawler.NewScraper()))
	require.False(t, res.OK)
	assert.Equal(t, pipeline.TypeValidationError, res.Err.Kind)
	assert.Equal(t, pipeline.Fetching, res.FailedAt)
}
