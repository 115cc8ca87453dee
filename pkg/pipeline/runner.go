package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/export"
	"github.com/matzehuels/microprint/pkg/observability"
	"github.com/matzehuels/microprint/pkg/printspec"
	"github.com/matzehuels/microprint/pkg/region"
)

// Provider resolves panel ids to regions and download names.
type Provider interface {
	Resolve(id string, previewScale float64, spec printspec.OutputSpec) (region.Region, string, error)
}

// Runner executes export batches.
//
// The Runner holds no per-run state apart from the caller's Busy set, so
// one Runner may serve several goroutines.
type Runner struct {
	Provider  Provider
	Engine    *export.Engine
	Deliverer export.Deliverer
	Busy      *Busy
	Logger    *log.Logger
	Options   Options
}

// NewRunner creates a runner. A nil engine gets a default one and a nil
// logger the default charm logger. The busy set starts empty; replace it
// to share one with a UI.
func NewRunner(p Provider, e *export.Engine, d export.Deliverer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if e == nil {
		e = export.NewEngine(export.WithLogger(logger))
	}
	return &Runner{
		Provider:  p,
		Engine:    e,
		Deliverer: d,
		Busy:      &Busy{},
		Logger:    logger,
	}
}

// Run exports jobs in order. It returns an error only when the batch could
// not start; per-job failures are collected in the result.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Result, error) {
	opts, err := r.options()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Batch()
	hooks.OnBatchStart(ctx, len(jobs))
	result := &Result{Stats: Stats{Jobs: len(jobs)}}

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			for _, rest := range jobs[i:] {
				result.fail(rest, errors.Wrap(errors.ErrCodeUnknown, err, "batch cancelled"))
			}
			break
		}

		art, err := r.runJob(ctx, job, opts)
		if err != nil {
			if errors.Is(err, errors.ErrCodeBusy) {
				result.Stats.Skipped++
				hooks.OnJobSkipped(ctx, job.Panel)
			}
			result.fail(job, err)
			if opts.StopOnError {
				for _, rest := range jobs[i+1:] {
					result.fail(rest, errors.New(errors.ErrCodeUnknown, "not run: batch stopped after %s failed", job.Panel))
				}
				break
			}
			continue
		}
		result.Artifacts = append(result.Artifacts, art)
		result.Stats.Succeeded++
		result.Stats.Bytes += len(art.PNG)
	}

	result.Stats.Duration = time.Since(start)
	hooks.OnBatchComplete(ctx, result.Stats.Succeeded, result.Stats.Failed, result.Stats.Duration)
	opts.Logger.Info("batch complete",
		"jobs", result.Stats.Jobs,
		"succeeded", result.Stats.Succeeded,
		"failed", result.Stats.Failed,
		"bytes", result.Stats.Bytes,
		"duration", result.Stats.Duration)
	return result, nil
}

// RunJob exports a single job while holding its panel's busy flag.
func (r *Runner) RunJob(ctx context.Context, job Job) (*export.Artifact, error) {
	opts, err := r.options()
	if err != nil {
		return nil, err
	}
	return r.runJob(ctx, job, opts)
}

func (r *Runner) options() (Options, error) {
	if r.Provider == nil {
		return Options{}, errors.New(errors.ErrCodeBackendUnavailable, "no panel provider configured")
	}
	if r.Deliverer == nil {
		return Options{}, errors.New(errors.ErrCodeDeliveryFailed, "no deliverer configured")
	}
	if r.Busy == nil {
		r.Busy = &Busy{}
	}
	opts := r.Options
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (r *Runner) runJob(ctx context.Context, job Job, opts Options) (*export.Artifact, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if !r.Busy.TryAcquire(job.Panel) {
		return nil, errors.New(errors.ErrCodeBusy, "%s is already being exported", job.Panel)
	}
	defer r.Busy.Release(job.Panel)

	scale := opts.PreviewScale
	if job.PreviewScale > 0 {
		scale = job.PreviewScale
	}
	reg, name, err := r.Provider.Resolve(job.Panel, scale, job.Spec)
	if err != nil {
		return nil, err
	}
	spec := job.Spec
	if spec.Filename == "" {
		spec = spec.WithFilename(name)
	}
	opts.Logger.Debug("exporting", "panel", job.Panel, "preset", job.Preset, "spec", spec.String(), "file", spec.Filename)
	return r.Engine.Export(ctx, reg, spec, r.Deliverer)
}

func (res *Result) fail(job Job, err error) {
	res.Failures = append(res.Failures, &JobError{Job: job, Err: err})
	res.Stats.Failed++
}
