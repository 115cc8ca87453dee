package cli

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/microprint/pkg/export"
	"github.com/matzehuels/microprint/pkg/pipeline"
	"github.com/matzehuels/microprint/pkg/region"
	"github.com/matzehuels/microprint/pkg/scene"
)

func (c *CLI) browseCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Step through the panels and export them interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if out != "" {
				cfg.OutputDir = out
			}

			// The TUI owns the terminal, so engine logs are discarded.
			quiet := log.New(io.Discard)

			reg := loadFonts(ctx, cfg, quiet)
			vp := region.NewViewport()
			cat, err := newCatalog(cfg, reg, scene.WithViewport(vp))
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cat, newEngine(quiet, reg), export.NewFileDeliverer(cfg.OutputDir), quiet)

			model := NewBrowseModel(ctx, cat, vp, cfg, runner)
			_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default from config)")
	return cmd
}
