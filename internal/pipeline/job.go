package pipeline

import (
	"context"
)

// Job is one configured source bound to its sink. It hides the adapter's
// page and record types so heterogeneous sources can be run in sequence.
type Job struct {
	Source string
	Output string
	run    func(ctx context.Context, r *Runner) (*Result, error)
}

// NewJob binds adapter and sink under the source name.
func NewJob[P, R any](source, output string, adapter Adapter[P, R], sink Sink) Job {
	return Job{
		Source: source,
		Output: output,
		run: func(ctx context.Context, r *Runner) (*Result, error) {
			return Run(ctx, r, source, adapter, sink)
		},
	}
}

// Run executes the job once.
func (j Job) Run(ctx context.Context, r *Runner) (*Result, error) {
	res, err := j.run(ctx, r)
	if res != nil {
		res.Output = j.Output
	}

	return res, err
}

// RunAll executes jobs in order. It stops at the first unrecoverable error
// and returns the results gathered so far alongside it.
func (r *Runner) RunAll(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, 0, len(jobs))

	for _, job := range jobs {
		res, err := job.Run(ctx, r)
		if err != nil {
			return results, err
		}

		results = append(results, res)
	}

	return results, nil
}
