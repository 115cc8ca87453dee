package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/microprint/pkg/config"
	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/scene"
)

func (c *CLI) listCommand() *cobra.Command {
	var presets bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exportable panels and presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if presets {
				fmt.Println(presetTable(cfg))
				return nil
			}
			// Listing never draws, so the fonts need not be loaded.
			cat := scene.NewCatalog(fonts.NewRegistry(nil, c.Logger))
			fmt.Println(panelTable(cat, cfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&presets, "presets", false, "list presets instead of panels")
	return cmd
}

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})
}

// panelTable lists every panel with its default preset and output size.
func panelTable(cat *scene.Catalog, cfg *config.Config) string {
	t := newTable("Panel", "Title", "Preset", "Size", "Pixels")
	for _, e := range cat.Entries() {
		preset, size, px := "-", "-", "-"
		if spec, name, err := cfg.SpecFor(e.ID); err == nil {
			w, h := spec.Pixels()
			preset, size, px = name, spec.String(), fmt.Sprintf("%dx%d", w, h)
		}
		t.Row(e.ID, e.Title, preset, size, px)
	}
	return t.Render()
}

func presetTable(cfg *config.Config) string {
	t := newTable("Preset", "Size", "Panels", "Pixels")
	for _, p := range cfg.Presets {
		px := "-"
		if spec, err := cfg.Spec(p.Name); err == nil {
			w, h := spec.Pixels()
			px = fmt.Sprintf("%dx%d", w, h)
		}
		t.Row(p.Name, p.Size, p.Panels, px)
	}
	return t.Render()
}
