package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/microprint/pkg/config"
	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/export"
	"github.com/matzehuels/microprint/pkg/pipeline"
	"github.com/matzehuels/microprint/pkg/region"
	"github.com/matzehuels/microprint/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BrowseModel - interactive panel browser
// =============================================================================

// exportDoneMsg reports the end of an export started from the browser.
type exportDoneMsg struct {
	panel string
	art   *export.Artifact
	err   error
}

// panelStatus is the last export outcome shown next to a panel.
type panelStatus struct {
	file string
	code errors.Code
}

// BrowseModel is the bubbletea model behind "microprint browse". It owns
// the UI state: the current panel and which panels are exporting. Only the
// current panel is mounted in the viewport, so moving away while an export
// runs detaches its region.
//
// Navigation therefore cancels pending exports of the panel left behind:
// they fail with REGION_UNAVAILABLE and the panel must be exported again
// after moving back.
type BrowseModel struct {
	ctx      context.Context
	cfg      *config.Config
	catalog  *scene.Catalog
	runner   *pipeline.Runner
	viewport *region.Viewport

	Entries []scene.Entry
	Cursor  int
	Height  int
	Offset  int

	exporting map[string]bool
	status    map[string]panelStatus
}

// NewBrowseModel creates the browser and mounts the first panel.
func NewBrowseModel(ctx context.Context, cat *scene.Catalog, vp *region.Viewport, cfg *config.Config, runner *pipeline.Runner) BrowseModel {
	m := BrowseModel{
		ctx:       ctx,
		cfg:       cfg,
		catalog:   cat,
		runner:    runner,
		viewport:  vp,
		Entries:   cat.Entries(),
		Height:    15,
		exporting: make(map[string]bool),
		status:    make(map[string]panelStatus),
	}
	if len(m.Entries) > 0 {
		vp.Mount(m.Entries[0].ID)
	}
	return m
}

// Current returns the panel under the cursor.
func (m BrowseModel) Current() scene.Entry { return m.Entries[m.Cursor] }

// Exporting reports whether an export of id is in flight.
func (m BrowseModel) Exporting(id string) bool { return m.exporting[id] }

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k", "left", "h":
			m.move(-1)
		case "down", "j", "right", "l":
			m.move(1)
		case "enter", "e":
			return m, m.startExport()
		}
	case exportDoneMsg:
		delete(m.exporting, msg.panel)
		if msg.err != nil {
			m.status[msg.panel] = panelStatus{code: errors.GetCode(msg.err)}
		} else {
			m.status[msg.panel] = panelStatus{file: msg.art.Filename}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *BrowseModel) move(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Entries) {
		return
	}
	m.viewport.Unmount(m.Entries[m.Cursor].ID)
	m.Cursor = next
	m.viewport.Mount(m.Entries[m.Cursor].ID)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// startExport exports the current panel in the background. A panel that
// is already exporting is left alone.
func (m *BrowseModel) startExport() tea.Cmd {
	id := m.Current().ID
	if m.exporting[id] || m.runner.Busy.Active(id) {
		return nil
	}
	spec, preset, err := m.cfg.SpecFor(id)
	if err != nil {
		m.status[id] = panelStatus{code: errors.GetCode(err)}
		return nil
	}
	m.exporting[id] = true
	delete(m.status, id)

	ctx, runner := m.ctx, m.runner
	job := pipeline.Job{Panel: id, Spec: spec, Preset: preset, PreviewScale: m.previewScale(id)}
	return func() tea.Msg {
		art, err := runner.RunJob(ctx, job)
		return exportDoneMsg{panel: id, art: art, err: err}
	}
}

// previewScale is the on-screen scale of id when shown preview_width
// pixels wide. Zero leaves the runner default.
func (m BrowseModel) previewScale(id string) float64 {
	w, _, err := m.catalog.LogicalSize(id)
	if err != nil || w <= 0 || m.cfg.PreviewWidth <= 0 {
		return 0
	}
	return float64(m.cfg.PreviewWidth) / w
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Microprint"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ export  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		size := "-"
		if spec, _, err := m.cfg.SpecFor(e.ID); err == nil {
			w, h := spec.Pixels()
			size = fmt.Sprintf("%dx%d", w, h)
		}
		rows = append(rows, []string{cursor, e.ID, e.Title, size, m.statusText(e.ID)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Panel", "Title", "Pixels", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			if col == 4 {
				return m.statusStyle(m.Entries[idx].ID)
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  out: %s", m.Cursor+1, len(m.Entries), m.cfg.OutputDir)))
	return b.String()
}

func (m BrowseModel) statusText(id string) string {
	if m.exporting[id] {
		return "exporting…"
	}
	st, ok := m.status[id]
	switch {
	case !ok:
		return ""
	case st.code != "":
		return iconError + " " + string(st.code)
	default:
		return iconSuccess + " " + st.file
	}
}

func (m BrowseModel) statusStyle(id string) lipgloss.Style {
	if m.exporting[id] {
		return styleIconSpinner
	}
	if st, ok := m.status[id]; ok {
		if st.code != "" {
			return styleIconError
		}
		return styleIconSuccess
	}
	return listDimStyle
}
