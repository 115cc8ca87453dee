// Package cli implements the microprint command-line interface.
//
// # Commands
//
//   - export: render catalog panels to print-ready PNGs
//   - list: show panels, presets and their pixel sizes
//   - browse: step through the panels interactively and export them
//   - capture: export a DOM element of a live page through headless Chrome
//   - completion: shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through context.Context; see withLogger and loggerFromContext.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/matzehuels/microprint/pkg/buildinfo"
	"github.com/matzehuels/microprint/pkg/config"
	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/export"
	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "microprint"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Microprint exports print-accurate PNGs of brand artwork",
		Long:         `Microprint renders the microgreens carousel and packaging sleeve and exports them as PNGs whose pixel size follows from physical millimetres and DPI alone.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/microprint/microprint.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.captureCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Setup
// =============================================================================

// loadConfig reads the --config file, or the default path when unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	p := c.configPath
	if p == "" {
		var err error
		if p, err = config.DefaultPath(); err != nil {
			c.Logger.Debug("no config directory", "err", err)
			return config.Default(), nil
		}
	}
	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", p, "presets", len(cfg.Presets))
	return cfg, nil
}

// loadFonts starts loading the configured fonts in the background. The
// returned registry is the engine's font barrier.
func loadFonts(ctx context.Context, cfg *config.Config, logger *log.Logger) *fonts.Registry {
	reg := fonts.NewRegistry(cfg.FontPaths(), logger)
	reg.Start(ctx)
	return reg
}

// newCatalog builds the panel catalog, attaching the configured photo.
func newCatalog(cfg *config.Config, reg *fonts.Registry, opts ...scene.Option) (*scene.Catalog, error) {
	if cfg.Photo != "" {
		img, err := imaging.Open(cfg.Photo, imaging.AutoOrientation(true))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open photo %s", cfg.Photo)
		}
		opts = append(opts, scene.WithPhoto(img))
	}
	return scene.NewCatalog(reg, opts...), nil
}

func newEngine(logger *log.Logger, gate export.FontGate) *export.Engine {
	return export.NewEngine(export.WithLogger(logger), export.WithFontGate(gate))
}
