package cli

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/microprint/pkg/config"
	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/export"
	"github.com/matzehuels/microprint/pkg/pipeline"
	"github.com/matzehuels/microprint/pkg/scene"
)

type exportOpts struct {
	preset       string
	size         string
	out          string
	previewScale float64
	stopOnError  bool
}

func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <panel...>",
		Short: "Export panels as print-ready PNGs",
		Long: `Export one or more panels at exact physical size.

Panels are ids from "microprint list", prefix patterns such as "slide-*",
or "all". Each panel uses the preset configured for it unless --preset or
--size is given.`,
		Example: `  microprint export slide-1
  microprint export "slide-*" --preset post --out prints
  microprint export sleeve --size "96x336mm@600dpi+3mm"
  microprint export slide-2 -o - > slide.png`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completePanels,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "preset name for every panel")
	cmd.Flags().StringVarP(&opts.size, "size", "s", "", `size expression, e.g. "91.4x91.4mm@300dpi"`)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory, or - for stdout (default from config)")
	cmd.Flags().Float64Var(&opts.previewScale, "preview-scale", pipeline.DefaultPreviewScale, "on-screen scale regions are measured at")
	cmd.Flags().BoolVar(&opts.stopOnError, "stop-on-error", false, "stop at the first failed panel")
	cmd.MarkFlagsMutuallyExclusive("preset", "size")
	_ = cmd.RegisterFlagCompletionFunc("preset", c.completePresets)

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, args []string, opts exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	reg := loadFonts(ctx, cfg, logger)
	cat, err := newCatalog(cfg, reg)
	if err != nil {
		return err
	}

	jobs, err := resolveJobs(cat, cfg, args, opts.preset, opts.size)
	if err != nil {
		return err
	}

	dir := opts.out
	if dir == "" {
		dir = cfg.OutputDir
	}
	deliverer, files, err := newDeliverer(cmd, dir, len(jobs))
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cat, newEngine(logger, reg), deliverer, logger)
	runner.Options = pipeline.Options{PreviewScale: opts.previewScale, StopOnError: opts.stopOnError}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %d panel(s)...", len(jobs)))
	spinner.Start()
	res, err := runner.Run(ctx, jobs)
	spinner.Stop()
	if err != nil {
		return err
	}

	if files != nil {
		printResult(res, files)
	} else {
		logFailures(logger, res)
	}
	prog.done(fmt.Sprintf("Exported %d of %d panel(s)", res.Stats.Succeeded, res.Stats.Jobs))
	if !res.OK() {
		if res.Stats.Skipped > 0 {
			printWarning("%d panel(s) were busy and skipped", res.Stats.Skipped)
		}
		return fmt.Errorf("%d of %d panel(s) failed", res.Stats.Failed, res.Stats.Jobs)
	}
	return nil
}

// resolveJobs expands panel patterns and picks a spec for each panel:
// --size, then --preset, then the preset configured for the panel.
func resolveJobs(cat *scene.Catalog, cfg *config.Config, patterns []string, preset, size string) ([]pipeline.Job, error) {
	var jobs []pipeline.Job
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		ids, err := cat.Match(pattern)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			job := pipeline.Job{Panel: id}
			switch {
			case size != "":
				job.Spec, err = cfg.SpecFromSize(size)
			case preset != "":
				job.Preset = preset
				job.Spec, err = cfg.Spec(preset)
			default:
				job.Spec, job.Preset, err = cfg.SpecFor(id)
			}
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}
	if len(jobs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no panels selected")
	}
	return jobs, nil
}

// stdoutDir is the --out value that streams the PNG to stdout.
const stdoutDir = "-"

// newDeliverer returns the deliverer for an output directory. For stdoutDir
// it streams to the command's stdout, which only holds a single artifact;
// files is nil in that case.
func newDeliverer(cmd *cobra.Command, dir string, artifacts int) (d export.Deliverer, files *export.FileDeliverer, err error) {
	if dir != stdoutDir {
		files = export.NewFileDeliverer(dir)
		return files, files, nil
	}
	if artifacts != 1 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "--out - writes one PNG to stdout, but %d panels are selected", artifacts)
	}
	return export.WriterDeliverer{W: cmd.OutOrStdout()}, nil, nil
}

// logFailures reports failed jobs on the logger, keeping stdout for the PNG.
func logFailures(logger *log.Logger, res *pipeline.Result) {
	for _, f := range res.Failures {
		logger.Error("export failed", "panel", f.Job.Panel, "code", errors.GetCode(f.Err), "err", errors.UserMessage(f.Err))
	}
}

func printResult(res *pipeline.Result, d *export.FileDeliverer) {
	for _, art := range res.Artifacts {
		printSuccess("%s %s", StyleHighlight.Render(art.Panel), StyleDim.Render(fmt.Sprintf("%dx%d px @ %g dpi", art.Width, art.Height, art.Spec.DPI)))
		printFile(relOrAbs(d.Path(art.Filename)))
	}
	for _, f := range res.Failures {
		printError("%s %s", StyleHighlight.Render(f.Job.Panel), errors.UserMessage(f.Err))
		printDetail("%s", errors.GetCode(f.Err))
	}
}

// relOrAbs shortens path relative to the working directory when possible.
func relOrAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		if wd, err := filepath.Abs("."); err == nil {
			if rel, err := filepath.Rel(wd, abs); err == nil {
				return rel
			}
		}
		return abs
	}
	return path
}
