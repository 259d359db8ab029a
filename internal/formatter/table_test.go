package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"storescrape/internal/models"
)

func TestTable(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:   "Basic table formatting",
			header: []string{"Header 1", "Header 2"},
			rows:   [][]string{{"val 1", "val 2"}},
			expected: `| Header 1 | Header 2 |
| -------- | -------- |
| val 1    | val 2    |`,
		},
		{
			name:   "Minimum separator width",
			header: []string{"A", "B"},
			rows:   [][]string{{"x", "y"}},
			expected: `| A   | B   |
| --- | --- |
| x   | y   |`,
		},
		{
			name:   "Short rows are padded",
			header: []string{"Col A", "Col B"},
			rows:   [][]string{{"only"}},
			expected: `| Col A | Col B |
| ----- | ----- |
| only  |       |`,
		},
		{
			name:   "Wide characters",
			header: []string{"名前", "x"},
			rows:   [][]string{{"a", "b"}},
			expected: `| 名前 | x   |
| ---- | --- |
| a    | b   |`,
		},
		{
			name:   "Pipes are escaped",
			header: []string{"Cell"},
			rows:   [][]string{{"a|b"}},
			expected: `| Cell |
| ---- |
| a\|b |`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(Table(tt.header, tt.rows), "\n")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderRecords(t *testing.T) {
	records := []models.Record{
		{
			Address:      "ул. Немига, 5",
			LatLon:       models.NewCoordinates(53.9, 27.5),
			Name:         "KFC",
			Phones:       "+375",
			WorkingHours: []string{"пн-пт 09:00-22:00", "сб-вс 10:00-23:00"},
		},
		{
			Address:      "ul. Nowa 1",
			LatLon:       models.UnknownCoordinates(),
			Name:         "Ziko",
			Phones:       models.PhonesUnavailable,
			WorkingHours: models.ClosedHours(),
		},
	}

	lines := strings.Split(RenderRecords(records, 0), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "| #   | Name | Address"))
	assert.Contains(t, lines[2], "53.9, 27.5")
	assert.Contains(t, lines[2], "пн-пт 09:00-22:00; сб-вс 10:00-23:00")
	assert.Contains(t, lines[3], "Not info")
	assert.Contains(t, lines[3], "| Closed ")
}

func TestRenderRecords_Truncates(t *testing.T) {
	records := []models.Record{{
		Address:      "This information is long enough to be cut",
		Name:         "Мономах Галерея",
		Phones:       models.PhonesUnavailable,
		WorkingHours: models.ClosedHours(),
	}}

	out := RenderRecords(records, 10)
	assert.Contains(t, out, "| Мономах... |")
	assert.Contains(t, out, "| This in... |")
	assert.NotContains(t, out, "Галерея")
}

func TestRenderRecords_Empty(t *testing.T) {
	assert.Equal(t, "| #   | Name | Address | Coordinates | Phones | Working hours |\n"+
		"| --- | ---- | ------- | ----------- | ------ | ------------- |", RenderRecords(nil, 0))
}
