package normalizer

import (
	"errors"
	"fmt"
	"math"

	"storescrape/internal/models"
)

// Validation errors. Every failure also matches ErrInvalidRecord.
var (
	ErrInvalidRecord       = errors.New("invalid record")
	ErrMissingPhones       = errors.New("phones must be text or the unavailable sentinel")
	ErrMissingWorkingHours = errors.New("working hours must be a range list or the closed sentinel")
	ErrEmptyHoursEntry     = errors.New("working hours contain an empty entry")
	ErrNonFiniteCoordinate = errors.New("coordinates must be finite")
)

// Validator checks that every record carries all five fields.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a single record.
func (v *Validator) Validate(r models.Record) error {
	if r.Phones == "" {
		return ErrMissingPhones
	}

	if len(r.WorkingHours) == 0 {
		return ErrMissingWorkingHours
	}

	for _, h := range r.WorkingHours {
		if h == "" {
			return ErrEmptyHoursEntry
		}
	}

	if r.LatLon.Known {
		for _, c := range r.LatLon.Pair {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return ErrNonFiniteCoordinate
			}
		}
	}

	return nil
}

// ValidateAll checks every record and reports the first failure with its index.
func (v *Validator) ValidateAll(records []models.Record) error {
	for i, r := range records {
		if err := v.Validate(r); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidRecord, i, err)
		}
	}

	return nil
}
