package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"plotview/internal/geom"
	"plotview/internal/overlay"
	"plotview/internal/viewstore"
)

// engine is the part of a chart the update loop drives without caring
// about its family.
type engine interface {
	BeginSelection(geom.Point) tea.Cmd
	UpdateSelection(geom.Point) tea.Cmd
	EndSelection() tea.Cmd
	ClearSelection() tea.Cmd
	ZoomIntoSelection() tea.Cmd
	ResetZoom() tea.Cmd
	Resize(geom.Surface) tea.Cmd
	Leave() tea.Cmd
	Update(tea.Msg) tea.Cmd
}

func (m Model) active() engine {
	switch {
	case m.curve != nil:
		return m.curve
	case m.grid != nil:
		return m.grid
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		return m, m.resizeChart()
	case openMsg:
		return m, m.loadPath(msg.path)
	case overlay.FrameMsg, viewstore.FlushMsg, viewstore.RestoredMsg:
		if e := m.active(); e != nil {
			return m, e.Update(msg)
		}
		return m, nil
	case viewstore.SavedMsg:
		if msg.Err != nil {
			m.status = "view save error: " + msg.Err.Error()
		}
		return m, nil
	case viewstore.DeletedMsg:
		if msg.Err != nil {
			m.status = "view delete error: " + msg.Err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m, m.updateMouse(msg)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			m.status = "view mode"
			return m, nil
		case "ctrl+s":
			text := strings.TrimSpace(m.ta.Value())
			if text == "" {
				m.status = "paste: empty"
				return m, nil
			}
			m.pasteMode = false
			m.ta.Blur()
			return m, m.loadText(text)
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}
	if m.strideMode {
		switch msg.String() {
		case "esc":
			m.strideMode = false
			m.ti.Blur()
			return m, nil
		case "enter":
			m.strideMode = false
			m.ti.Blur()
			if m.grid == nil {
				return m, nil
			}
			cmd := m.grid.SetStrideText(m.ti.Value())
			m.status = fmt.Sprintf("stride: %d", m.grid.Store().Stride())
			return m, cmd
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	if m.showTop {
		if msg.String() == "esc" || key.Matches(msg, m.keys.Top) {
			m.showTop = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	e := m.active()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.unmountChart()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		return m, m.resizeChart()
	case key.Matches(msg, m.keys.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				return m, m.loadPath(it.path)
			}
		}
	case key.Matches(msg, m.keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
	case e == nil:
		m.status = "load a dataset first (tab to browse, p to paste)"
	case key.Matches(msg, m.keys.Zoom):
		m.dragging = false
		m.status = "zoomed"
		return m, e.ZoomIntoSelection()
	case key.Matches(msg, m.keys.Clear):
		m.dragging = false
		m.status = "selection cleared"
		return m, e.ClearSelection()
	case key.Matches(msg, m.keys.Reset):
		m.dragging = false
		m.status = "view reset"
		return m, e.ResetZoom()
	case key.Matches(msg, m.keys.Stride):
		if m.grid == nil {
			m.status = "stride applies to grid charts"
			return m, nil
		}
		m.strideMode = true
		m.ti.SetValue(fmt.Sprint(m.grid.Store().Stride()))
		m.ti.CursorEnd()
		return m, m.ti.Focus()
	case key.Matches(msg, m.keys.Export):
		path, err := m.exportThumbnail()
		if err != nil {
			m.status = "export error: " + err.Error()
		} else {
			m.status = "exported: " + path
		}
	case key.Matches(msg, m.keys.Top):
		m.showTop = m.refreshTopValues()
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) tea.Cmd {
	lo := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}
	e := m.active()
	if e == nil || m.pasteMode || m.showTop {
		return nil
	}
	inside := lo.inChart(msg.X, msg.Y)
	p := lo.pointAt(msg.X, msg.Y)

	var cmds []tea.Cmd
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inside {
			m.dragging = true
			cmds = append(cmds, e.BeginSelection(p))
		}
	case tea.MouseActionMotion:
		if m.dragging {
			cmds = append(cmds, e.UpdateSelection(p))
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			cmds = append(cmds, e.UpdateSelection(p), e.EndSelection())
		}
	}
	if inside {
		cmds = append(cmds, m.hover(p))
	} else {
		m.hoverText = ""
		cmds = append(cmds, e.Leave())
	}
	return tea.Batch(cmds...)
}

// hover resolves the pointer on the active chart and updates the footer.
func (m *Model) hover(p geom.Point) tea.Cmd {
	switch {
	case m.curve != nil:
		h, cmd := m.curve.Hover(p)
		m.hoverText = ""
		if h != nil {
			parts := []string{fmt.Sprintf("x=%g", h.X)}
			for i, v := range h.Values {
				mark := ""
				if i == h.Nearest {
					mark = "*"
				}
				parts = append(parts, fmt.Sprintf("%s%s=%.4g", mark, v.Series, v.Y))
			}
			m.hoverText = strings.Join(parts, "  ")
		}
		return cmd
	case m.grid != nil:
		h, cmd := m.grid.Hover(p)
		m.hoverText = ""
		if h != nil {
			val := "-"
			if h.Present && h.Value.Y != nil {
				val = fmt.Sprintf("%.4g", *h.Value.Y)
			}
			m.hoverText = fmt.Sprintf("row=%s col=%d x=%s y=%s", h.Row, h.Cell.Col, h.Value.X, val)
			if h.Value.Label != "" {
				m.hoverText += "  " + h.Value.Label
			}
		}
		return cmd
	}
	return nil
}

func (m Model) resizeChart() tea.Cmd {
	if e := m.active(); e != nil && m.width > 0 && m.height > 0 {
		return e.Resize(m.surface())
	}
	return nil
}
