// Package normalizer finalizes and checks normalized store records.
package normalizer

import (
	"fmt"

	"storescrape/internal/models"
)

// Processor transforms and validates adapter output.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Process returns a cleaned copy of records, or the first validation failure.
func (p *Processor) Process(records []models.Record) ([]models.Record, error) {
	out := make([]models.Record, len(records))

	// 1. Transform every record
	for i, r := range records {
		out[i] = p.transformer.Transform(r)
	}

	// 2. Validate the result
	if err := p.validator.ValidateAll(out); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return out, nil
}
