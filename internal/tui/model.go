package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"plotview/internal/chart"
	"plotview/internal/config"
	"plotview/internal/dataset"
	"plotview/internal/overlay"
	"plotview/internal/viewstore"
)

// Options wire the model to its collaborators.
type Options struct {
	Config config.Config
	Store  viewstore.Store
	// ChartID overrides the identity views are stored under.
	ChartID string
	Sheet   string
	Path    string
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	cfg     config.Config
	store   viewstore.Store
	chartID string
	sheet   string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data and the active chart; exactly one of curve or grid is set once
	// something is loaded.
	data   dataset.Data
	loaded bool
	curve  *chart.CurveChart
	grid   *chart.GridChart

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// stride field
	strideMode bool
	ti         textinput.Model

	// hover and drag
	hoverText string
	dragging  bool

	// top-values table for the hovered grid cell
	showTop bool
	tbl     table.Model

	keys keyMap
	help help.Model

	// ink is reused across frames; View works on copies of the model.
	ink *inkGrid
}

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		status:      "plotview ready",
		cfg:         opts.Config,
		store:       opts.Store,
		chartID:     opts.ChartID,
		sheet:       opts.Sheet,
		keys:        defaultKeys(),
		help:        help.New(),
		ink:         &inkGrid{},
	}
	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ta = textarea.New()
	m.ta.Placeholder = `Paste JSON ({"rows":[...]} or {"series":[...]}) or CSV. Ctrl+S to render; Esc to cancel.`
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.ti = textinput.New()
	m.ti.Prompt = "stride: "
	m.ti.Placeholder = "1"
	m.ti.CharLimit = 8
	m.ti.Width = 10

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	if opts.Path != "" {
		m.selPath = opts.Path
	}
	return m
}

// Init loads the file given at launch, if any.
func (m Model) Init() tea.Cmd {
	if m.selPath == "" {
		return nil
	}
	path := m.selPath
	return func() tea.Msg { return openMsg{path: path} }
}

// openMsg asks the model to load a file from within the update loop.
type openMsg struct{ path string }

// hasChart reports whether a chart is active.
func (m Model) hasChart() bool { return m.curve != nil || m.grid != nil }

// renderer returns the overlay raster of the active chart.
func (m Model) renderer() *overlay.Renderer {
	switch {
	case m.curve != nil:
		return m.curve.Renderer()
	case m.grid != nil:
		return m.grid.Renderer()
	}
	return nil
}
