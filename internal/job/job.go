// Package job runs TOPSIS rankings end to end: read the input table, rank it
// and write the result, one file or a manifest of files at a time.
package job

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/topsis-cli/internal/tabular"
	"github.com/sells-group/topsis-cli/internal/topsis"
)

// Job is one ranking request.
type Job struct {
	Name    string `yaml:"name"`
	Input   string `yaml:"input"`
	Weights string `yaml:"weights"`
	Impacts string `yaml:"impacts"`
	Output  string `yaml:"output"`
}

// Report summarizes a successful run.
type Report struct {
	RunID    string
	Output   string
	Rows     int
	Criteria int
	Best     string
	Duration time.Duration
	Result   *topsis.ResultTable
}

// Result pairs a job with its report or error.
type Result struct {
	Job    Job
	Report *Report
	Err    error
}

// Runner executes jobs against the local filesystem.
type Runner struct {
	opts tabular.Options
	log  *zap.Logger
}

// NewRunner creates a Runner. A nil logger falls back to zap.L().
func NewRunner(opts tabular.Options, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.L()
	}
	return &Runner{opts: opts, log: log}
}

// Run reads j.Input, ranks it and writes j.Output. Nothing is written unless
// every step succeeds.
func (r *Runner) Run(ctx context.Context, j Job) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID), zap.String("input", j.Input))

	raw, err := tabular.ReadFile(ctx, j.Input, r.opts)
	if err != nil {
		return nil, eris.Wrap(err, "job: read input")
	}
	log.Debug("input parsed", zap.Int("rows", len(raw.Rows)), zap.Int("columns", len(raw.Header)))

	res, err := topsis.Run(raw, j.Weights, j.Impacts)
	if err != nil {
		log.Warn("ranking failed", zap.String("kind", topsis.Kind(err)), zap.Error(err))
		return nil, eris.Wrap(err, "job: rank")
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "job: context cancelled before write")
	}
	if err := tabular.WriteFile(j.Output, res, r.opts); err != nil {
		return nil, eris.Wrap(err, "job: write output")
	}

	rep := &Report{
		RunID:    runID,
		Output:   j.Output,
		Rows:     len(res.Rows),
		Criteria: len(res.Header) - 3,
		Duration: time.Since(start),
		Result:   res,
	}
	if best, ok := res.Best(); ok {
		rep.Best = best.ID
	}

	log.Info("ranking written",
		zap.String("output", j.Output),
		zap.Int("rows", rep.Rows),
		zap.Int("criteria", rep.Criteria),
		zap.String("best", rep.Best),
		zap.Duration("duration", rep.Duration),
	)
	return rep, nil
}

// RunAll runs jobs with at most concurrency in flight. A failed job never
// stops the others; results come back in job order.
func (r *Runner) RunAll(ctx context.Context, jobs []Job, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(jobs))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, j := range jobs {
		g.Go(func() error {
			rep, err := r.Run(gCtx, j)
			if err != nil {
				r.log.Error("job failed", zap.String("job", j.Name), zap.String("input", j.Input), zap.Error(err))
			}
			mu.Lock()
			results[i] = Result{Job: j, Report: rep, Err: err}
			mu.Unlock()
			return nil // don't abort batch on individual failure
		})
	}

	_ = g.Wait()
	return results
}
