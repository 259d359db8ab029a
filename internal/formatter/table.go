// Package formatter renders store records as aligned text tables.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"storescrape/internal/models"
)

// DefaultCellWidth is the widest a record cell may be before it is shortened.
const DefaultCellWidth = 48

var recordHeader = []string{"#", "Name", "Address", "Coordinates", "Phones", "Working hours"}

// RenderRecords formats records as a markdown table, one row per record.
// Cells wider than maxCell display columns are truncated; zero disables truncation.
func RenderRecords(records []models.Record, maxCell int) string {
	rows := make([][]string, 0, len(records))

	for i, r := range records {
		row := []string{
			strconv.Itoa(i + 1),
			r.Name,
			r.Address,
			r.LatLon.String(),
			r.Phones,
			strings.Join(r.WorkingHours, "; "),
		}

		if maxCell > 0 {
			for j, cell := range row {
				row[j] = runewidth.Truncate(cell, maxCell, "...")
			}
		}

		rows = append(rows, row)
	}

	return strings.Join(Table(recordHeader, rows), "\n")
}

// Table lays out header and rows as markdown table lines padded to equal
// display width. Rows shorter than the header are padded with empty cells.
func Table(header []string, rows [][]string) []string {
	header = escapeRow(header)
	escaped := make([][]string, len(rows))
	colCount := len(header)

	for i, row := range rows {
		escaped[i] = escapeRow(row)
		colCount = max(colCount, len(row))
	}

	// Separator needs at least three dashes
	colWidths := make([]int, colCount)
	for i := range colWidths {
		colWidths[i] = 3
	}

	for _, row := range append([][]string{header}, escaped...) {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	result := make([]string, 0, len(rows)+2)
	result = append(result, line(header, colWidths, false))
	result = append(result, line(nil, colWidths, true))

	for _, row := range escaped {
		result = append(result, line(row, colWidths, false))
	}

	return result
}

func line(row []string, colWidths []int, separator bool) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		sb.WriteString(" ")

		if separator {
			sb.WriteString(strings.Repeat("-", width))
		} else {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(content)

			if padding := width - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

func escapeRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.ReplaceAll(cell, "|", `\|`)
	}

	return out
}
