package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"plotview/internal/chart"
	"plotview/internal/dataset"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !dataset.IsSupported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a dataset file and shows it. Views of file charts are
// stored under the absolute path unless a chart id was given.
func (m *Model) loadPath(p string) tea.Cmd {
	m.selPath = p
	d, err := dataset.Load(p, dataset.Options{Sheet: m.sheet})
	if err != nil {
		m.status = "load error: " + err.Error()
		return nil
	}
	id := m.chartID
	if id == "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		id = "file:" + abs
		if m.sheet != "" {
			id += "#" + m.sheet
		}
	}
	cmd := m.show(d, id, true)
	m.status = "loaded: " + filepath.Base(p) + "  " + summary(d)
	return cmd
}

// loadText shows pasted data. Pasted charts are not persisted.
func (m *Model) loadText(text string) tea.Cmd {
	d, err := dataset.Parse(text)
	if err != nil {
		m.status = "paste error: " + err.Error()
		return nil
	}
	m.selPath = ""
	cmd := m.show(d, "", false)
	m.status = "rendered paste  " + summary(d)
	return cmd
}

// show hands d to a chart of the right family. The active chart is reused
// when identity and family match; otherwise it is unmounted and replaced.
func (m *Model) show(d dataset.Data, id string, persist bool) tea.Cmd {
	m.data, m.loaded = d, true
	m.hoverText, m.showTop, m.dragging = "", false, false

	if id != "" {
		if d.Kind == dataset.KindCurves && m.curve != nil && m.curve.ID() == id {
			return m.curve.SetDataset(d.Curves)
		}
		if d.Kind == dataset.KindGrid && m.grid != nil && m.grid.ID() == id {
			return m.grid.SetDataset(d.Grid)
		}
	}
	m.unmountChart()

	opts := chart.Options{
		ID:            id,
		Surface:       m.surface(),
		FrameInterval: m.cfg.FrameInterval,
		Debounce:      m.cfg.PersistDebounce,
		IOTimeout:     m.cfg.IOTimeout,
	}
	if persist {
		opts.Store = m.store
	}
	if d.Kind == dataset.KindCurves {
		m.curve = chart.NewCurve(opts)
		return tea.Batch(m.curve.SetDataset(d.Curves), m.curve.Mount())
	}
	m.grid = chart.NewGrid(opts)
	return tea.Batch(m.grid.SetDataset(d.Grid), m.grid.Mount())
}

func (m *Model) unmountChart() {
	if m.curve != nil {
		m.curve.Unmount()
		m.curve = nil
	}
	if m.grid != nil {
		m.grid.Unmount()
		m.grid = nil
	}
}

func summary(d dataset.Data) string {
	if d.Kind == dataset.KindCurves {
		return fmt.Sprintf("series=%d points=%d", len(d.Curves.Series), d.Curves.PointCount())
	}
	return fmt.Sprintf("rows=%d cols=%d", len(d.Grid.Rows), d.Grid.ColumnCount())
}
