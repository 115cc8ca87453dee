// Package pipeline runs batches of exports.
//
// A batch is a list of jobs, each naming a panel and the spec to export it
// with. The [Runner] resolves every panel through a [Provider], exports it
// with the engine and hands the PNG to a deliverer. Jobs run one after
// another; a failed job is recorded and the batch moves on.
//
// # Busy Panels
//
// The runner marks a panel busy while it is being exported and rejects a
// second export of the same panel with BUSY. The [Busy] set belongs to the
// caller so that an interactive UI can share it with the runner and show
// which panels are in progress. The flag is cleared when the job ends,
// whether it succeeded or not.
//
// # Usage
//
//	runner := pipeline.NewRunner(catalog, engine, export.NewFileDeliverer("out"), logger)
//	result, err := runner.Run(ctx, []pipeline.Job{
//	    {Panel: "slide-1", Spec: printspec.MustParse("91.4x91.4mm@300dpi")},
//	    {Panel: "sleeve", Spec: printspec.MustParse("96x336mm@300dpi+3mm")},
//	})
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/export"
	"github.com/matzehuels/microprint/pkg/printspec"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultPreviewScale is the on-screen scale regions are resolved at when
// Options leaves it unset. Artifacts do not depend on it.
const DefaultPreviewScale = 1.0

// =============================================================================
// Jobs
// =============================================================================

// Job is one panel to export.
type Job struct {
	Panel string
	Spec  printspec.OutputSpec
	// Preset is informational: the name the spec was resolved from.
	Preset string
	// PreviewScale overrides Options.PreviewScale when positive.
	PreviewScale float64
}

// Validate checks the job before anything is captured.
func (j Job) Validate() error {
	if err := errors.ValidatePanelID(j.Panel); err != nil {
		return err
	}
	if j.PreviewScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "preview scale cannot be negative, got %v", j.PreviewScale)
	}
	return j.Spec.Validate()
}

// String formats the job for logs, e.g. "slide-1@91.4x91.4mm@300dpi".
func (j Job) String() string {
	return fmt.Sprintf("%s@%s", j.Panel, j.Spec)
}

// =============================================================================
// Options
// =============================================================================

// Options configures a single Run.
type Options struct {
	// PreviewScale is passed to the provider when resolving regions.
	PreviewScale float64
	// StopOnError aborts the batch after the first failed job.
	StopOnError bool
	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.PreviewScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "preview scale cannot be negative, got %v", o.PreviewScale)
	}
	if o.PreviewScale == 0 {
		o.PreviewScale = DefaultPreviewScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outcome of a batch.
type Result struct {
	// Artifacts holds successful exports in job order.
	Artifacts []*export.Artifact
	// Failures holds failed jobs in job order.
	Failures []*JobError
	Stats    Stats
}

// OK reports whether every job succeeded.
func (r *Result) OK() bool { return len(r.Failures) == 0 }

// Err returns the first failure, or nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return r.Failures[0]
}

// Stats contains batch statistics.
type Stats struct {
	Jobs      int
	Succeeded int
	Failed    int
	Skipped   int
	Bytes     int
	Duration  time.Duration
}

// JobError is a failed job and its cause.
type JobError struct {
	Job Job
	Err error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("%s: %v", e.Job.Panel, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }
