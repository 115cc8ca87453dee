package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/microprint/pkg/browser"
	"github.com/matzehuels/microprint/pkg/printspec"
)

type captureOpts struct {
	size    string
	preset  string
	out     string
	name    string
	chrome  string
	remote  string
	timeout time.Duration
}

func (c *CLI) captureCommand() *cobra.Command {
	var opts captureOpts

	cmd := &cobra.Command{
		Use:   "capture <url> <selector>",
		Short: "Export a DOM element of a live page",
		Long: `Open url in headless Chrome, wait for its web fonts and export the first
element matching selector at exact physical size.`,
		Example: `  microprint capture http://localhost:5173/ "#slide-3" --size 91.4x91.4mm@300dpi
  microprint capture http://localhost:5173/sleeve ".sleeve" --preset sleeve --name sleeve.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCapture(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.size, "size", "s", "", "size expression")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "preset name")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory, or - for stdout (default from config)")
	cmd.Flags().StringVar(&opts.name, "name", "", "output file name")
	cmd.Flags().StringVar(&opts.chrome, "chrome", "", "Chrome binary")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "DevTools WebSocket URL of a running Chrome")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "page load timeout")
	cmd.MarkFlagsMutuallyExclusive("preset", "size")
	cmd.MarkFlagsOneRequired("preset", "size")
	_ = cmd.RegisterFlagCompletionFunc("preset", c.completePresets)

	return cmd
}

func (c *CLI) runCapture(cmd *cobra.Command, url, selector string, opts captureOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	var spec printspec.OutputSpec
	if opts.size != "" {
		spec, err = cfg.SpecFromSize(opts.size)
	} else {
		spec, err = cfg.Spec(opts.preset)
	}
	if err != nil {
		return err
	}
	if opts.name != "" {
		spec = spec.WithFilename(opts.name)
	} else {
		spec = spec.WithFilename(printspec.Filename("capture", printspec.Slug(selector), spec))
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Starting Chrome...")
	spinner.Start()
	mgr := browser.NewManager(browser.Config{
		RemoteURL:       opts.remote,
		Bin:             opts.chrome,
		NavigateTimeout: opts.timeout,
		Logger:          logger,
	})
	defer mgr.Close()
	if err := mgr.Start(ctx); err != nil {
		spinner.StopWithError("Chrome unavailable")
		return err
	}

	spinner.SetMessage("Loading " + url + "...")
	page, err := browser.Open(ctx, mgr, url)
	if err != nil {
		spinner.StopWithError("Page failed to load")
		return err
	}
	defer page.Close()

	spinner.SetMessage("Capturing " + selector + "...")
	dir := opts.out
	if dir == "" {
		dir = cfg.OutputDir
	}
	d, files, err := newDeliverer(cmd, dir, 1)
	if err != nil {
		spinner.Stop()
		return err
	}
	art, err := newEngine(logger, page).Export(ctx, page.Element(selector), spec, d)
	spinner.Stop()
	if files == nil {
		return err
	}
	if err != nil {
		printError("%s %s", StyleHighlight.Render(selector), err)
		return err
	}

	printSuccess("%s %s", StyleHighlight.Render(selector), StyleDim.Render(fmt.Sprintf("%dx%d px, capture scale %.3f", art.Width, art.Height, art.CaptureScale)))
	printFile(relOrAbs(files.Path(art.Filename)))
	return nil
}
