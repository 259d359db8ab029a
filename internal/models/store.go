// Package models defines the normalized store records produced by the scrapers.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinels substituted for data a source does not publish.
const (
	CoordinatesUnknown = "Not info"
	PhonesUnavailable  = "This information is not found in the API"
	HoursClosed        = "Closed"
)

// ErrInvalidCoordinates is returned when latlon is neither a pair nor the unknown sentinel.
var ErrInvalidCoordinates = errors.New("latlon must be a [a, b] pair or \"Not info\"")

// Record is one normalized store location.
type Record struct {
	Address      string      `json:"address"`
	LatLon       Coordinates `json:"latlon"`
	Name         string      `json:"name"`
	Phones       string      `json:"phones"`
	WorkingHours []string    `json:"working_hours"`
}

// Coordinates holds a coordinate pair in the order the source supplied it.
// A zero value is the unknown sentinel.
type Coordinates struct {
	Pair  [2]float64
	Known bool
}

// NewCoordinates returns a known coordinate pair.
func NewCoordinates(a, b float64) Coordinates {
	return Coordinates{Pair: [2]float64{a, b}, Known: true}
}

// UnknownCoordinates returns the "Not info" sentinel.
func UnknownCoordinates() Coordinates {
	return Coordinates{}
}

// String renders the pair or the sentinel.
func (c Coordinates) String() string {
	if !c.Known {
		return CoordinatesUnknown
	}

	return fmt.Sprintf("%g, %g", c.Pair[0], c.Pair[1])
}

// MarshalJSON encodes a known pair as an array and an unknown one as the sentinel string.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return json.Marshal(CoordinatesUnknown)
	}

	return json.Marshal(c.Pair[:])
}

// UnmarshalJSON accepts both shapes written by MarshalJSON.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		if s != CoordinatesUnknown {
			return fmt.Errorf("%w: got %q", ErrInvalidCoordinates, s)
		}

		*c = UnknownCoordinates()

		return nil
	}

	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCoordinates, err)
	}

	if len(pair) != 2 {
		return fmt.Errorf("%w: got %d values", ErrInvalidCoordinates, len(pair))
	}

	*c = NewCoordinates(pair[0], pair[1])

	return nil
}

// ClosedHours returns the working hours sentinel for a location with no published schedule.
func ClosedHours() []string {
	return []string{HoursClosed}
}

// DayInterval is the opening interval of a single weekday.
type DayInterval struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}
