package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/powerman/structlog"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/telemetry"
)

var log = structlog.New(structlog.KeyUnit, "batch")

// DefaultWorkers bounds concurrent evaluations when no option overrides it.
const DefaultWorkers = 4

// Outcome is the evaluation of one record. Exactly one of Result and Err
// is set.
type Outcome struct {
	ID     string        `json:"id" yaml:"id"`
	Result *chart.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error         `json:"-" yaml:"-"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the result of one run, with outcomes in manifest order.
type Report struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Outcomes []Outcome     `json:"outcomes" yaml:"outcomes"`
	Failed   int           `json:"failed" yaml:"failed"`
	Elapsed  time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Runner evaluates manifests against a chart engine.
type Runner struct {
	engine  *chart.Engine
	fs      afero.Fs
	workers int
	emitter *telemetry.Emitter
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the number of records evaluated at once.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithFs reads manifests from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(r *Runner) { r.fs = fs }
}

// WithEmitter records run and record events.
func WithEmitter(e *telemetry.Emitter) Option {
	return func(r *Runner) { r.emitter = e }
}

// NewRunner creates a Runner over engine.
func NewRunner(engine *chart.Engine, opts ...Option) *Runner {
	r := &Runner{engine: engine, fs: afero.NewOsFs(), workers: DefaultWorkers}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RunFile loads, validates and evaluates the manifest at path. Validation
// failures abort before any record is evaluated and are returned joined
// under ErrInvalidManifest.
func (r *Runner) RunFile(ctx context.Context, path string) (*Report, error) {
	m, err := Load(r.fs, path)
	if err != nil {
		return nil, err
	}
	jobs, verrs := Plan(m)
	if len(verrs) > 0 {
		return nil, joinValidation(verrs)
	}
	return r.Run(ctx, jobs)
}

// Run evaluates jobs on a bounded pool. A failing record is reported in its
// Outcome; only cancellation fails the run.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Report, error) {
	start := time.Now()
	rep := &Report{RunID: telemetry.NewRunID(), Outcomes: make([]Outcome, len(jobs))}
	r.emit(telemetry.Event{Kind: telemetry.KindRunStart, RunID: rep.RunID, Data: map[string]any{
		"records": len(jobs),
		"workers": r.workers,
	}})

	p := pool.New().WithMaxGoroutines(r.workers)
	for i, job := range jobs {
		p.Go(func() {
			rep.Outcomes[i] = r.evaluate(ctx, rep.RunID, job)
		})
	}
	p.Wait()

	for _, o := range rep.Outcomes {
		if o.Err != nil {
			rep.Failed++
		}
	}
	rep.Elapsed = time.Since(start)
	r.emit(telemetry.Event{Kind: telemetry.KindRunDone, RunID: rep.RunID, Data: map[string]any{
		"records": len(jobs),
		"failed":  rep.Failed,
		"elapsed": rep.Elapsed.String(),
	}})

	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("batch: run: %w", err)
	}
	return rep, nil
}

func (r *Runner) evaluate(ctx context.Context, runID string, job Job) Outcome {
	out := Outcome{ID: job.ID}
	if err := ctx.Err(); err != nil {
		out.Err = err
		out.Error = err.Error()
		return out
	}

	res, err := r.engine.Compute(job.Query)
	if err != nil {
		out.Err = err
		out.Error = err.Error()
		log.Debug("record failed", "record", job.ID, "err", err)
		r.emit(telemetry.Event{Kind: telemetry.KindRecordFailed, RunID: runID, RecordID: job.ID, Data: map[string]any{
			"error": err.Error(),
		}})
		return out
	}

	out.Result = &res
	r.emit(telemetry.Event{Kind: telemetry.KindRecordDone, RunID: runID, RecordID: job.ID, Data: map[string]any{
		"pillars": fmt.Sprintf("%s %s %s %s", res.Pillars.Year, res.Pillars.Month, res.Pillars.Day, res.Pillars.Hour),
		"star":    res.NineStar.YearStar,
	}})
	return out
}

func (r *Runner) emit(evt telemetry.Event) {
	if err := r.emitter.Emit(evt); err != nil {
		log.PrintErr("telemetry emit failed", "kind", evt.Kind, "err", err)
	}
}

func joinValidation(verrs []ValidationError) error {
	errs := make([]error, 0, len(verrs)+1)
	errs = append(errs, ErrInvalidManifest)
	for i := range verrs {
		errs = append(errs, &verrs[i])
	}
	return errors.Join(errs...)
}
