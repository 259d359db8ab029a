// Package pipeline runs source adapters through fetch, extract, normalize and persist.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storescrape/internal/logger"
	"storescrape/internal/models"
	"storescrape/internal/normalizer"
)

// Adapter is one data source. P is the fetched page and R a source-native
// record. Adapters return their failures unclassified.
type Adapter[P, R any] interface {
	FetchPage(ctx context.Context) (P, error)
	ExtractRaw(page P) ([]R, error)
	Normalize(ctx context.Context, raw []R) ([]models.Record, error)
}

// Sink durably writes the normalized collection.
type Sink interface {
	Write(ctx context.Context, records []models.Record) error
}

// Result is the outcome of one run. Records is set iff OK, Err iff not.
// FailedAt is only meaningful when OK is false.
type Result struct {
	Source   string
	Output   string
	State    State
	FailedAt State
	OK       bool
	Records  []models.Record
	Err      *Error
	Duration time.Duration
}

// Runner holds what runs share. It keeps no state between runs.
type Runner struct {
	log       *logger.Logger
	processor *normalizer.Processor
	tracer    trace.Tracer
}

// NewRunner creates a runner that logs to log.
func NewRunner(log *logger.Logger) *Runner {
	return &Runner{
		log:       log,
		processor: normalizer.NewProcessor(),
		tracer:    otel.Tracer("storescrape/internal/pipeline"),
	}
}

// Run sequences adapter and sink for one source. Recoverable failures come
// back as a Result with OK false and a nil error. Any other failure is
// returned as an error and nothing is persisted.
func Run[P, R any](ctx context.Context, r *Runner, source string, adapter Adapter[P, R], sink Sink) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(attribute.String("source", source)))
	defer span.End()

	log := r.log.With("source", source)
	startTime := time.Now()
	state := Fetching

	fail := func(err error) (*Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, state.String())

		classified, ok := classify(state, err)
		if !ok {
			log.Error("unrecoverable failure", "state", state, "error", err)

			return nil, fmt.Errorf("%s: %s: %w", source, state, err)
		}

		log.Error("run failed", "state", state, "kind", classified.Kind, "error", err)

		return &Result{
			Source:   source,
			State:    Failed,
			FailedAt: state,
			Err:      classified,
			Duration: time.Since(startTime),
		}, nil
	}

	page, err := step(ctx, r, log, state, adapter.FetchPage)
	if err != nil {
		return fail(err)
	}

	state = state.next()

	raw, err := step(ctx, r, log, state, func(context.Context) ([]R, error) {
		return adapter.ExtractRaw(page)
	})
	if err != nil {
		return fail(err)
	}

	log.Debug("extracted raw items", "count", len(raw))

	state = state.next()

	records, err := step(ctx, r, log, state, func(ctx context.Context) ([]models.Record, error) {
		normalized, err := adapter.Normalize(ctx, raw)
		if err != nil {
			return nil, err
		}

		return r.processor.Process(normalized)
	})
	if err != nil {
		return fail(err)
	}

	state = state.next()

	_, err = step(ctx, r, log, state, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, sink.Write(ctx, records)
	})
	if err != nil {
		return fail(err)
	}

	state = state.next()

	log.Info("run complete", "records", len(records), "duration", time.Since(startTime))

	return &Result{
		Source:   source,
		State:    state,
		OK:       true,
		Records:  records,
		Duration: time.Since(startTime),
	}, nil
}

// step runs one stage inside its own span.
func step[T any](ctx context.Context, r *Runner, log *logger.Logger, state State, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := r.tracer.Start(ctx, "pipeline."+state.String())
	defer span.End()

	log.Debug("entering state", "state", state)

	out, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return out, err
}
