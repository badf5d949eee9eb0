package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"plotview/internal/geom"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	header := titleStyle.Render(" plotview ─ interactive chart viewer ")
	if m.hasChart() {
		header += dimStyle.Render("  " + m.chartTitle())
	}
	header = lipgloss.NewStyle().Width(lo.contentW).MaxHeight(1).Render(header)

	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var chartView string
	switch {
	case m.showTop:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.chartW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.chartH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		chartView = lipgloss.Place(lo.chartW, lo.chartH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lo.chartW)
		m.ta.SetHeight(min(lo.chartH, 12))
		chartView = lipgloss.NewStyle().Width(lo.chartW).Height(lo.chartH).Render(m.ta.View())
	case m.hasChart():
		chartView = m.renderChart(lo.chartW, lo.chartH)
	default:
		msg := dimStyle.Render("no dataset  (tab: browse files, p: paste)")
		chartView = lipgloss.Place(lo.chartW, lo.chartH, lipgloss.Center, lipgloss.Center, msg)
	}

	body := chartView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", chartView)
	}

	// Footer: status and help on the left, hover readout on the right.
	statusStyle := dimStyle
	if strings.Contains(m.status, "error") {
		statusStyle = errStyle
	}
	status := statusStyle.Render(" " + m.status + " ")
	if m.strideMode {
		status = " " + m.ti.View() + " "
	}
	left := status
	if m.helpVisible {
		left = lipgloss.JoinHorizontal(lipgloss.Bottom, status, " ", m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	coords := ""
	if m.hoverText != "" {
		coords = dimStyle.Render("  " + m.hoverText + "  ")
	}
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

// chartTitle describes the visible window of the active chart.
func (m Model) chartTitle() string {
	name := "paste"
	if m.selPath != "" {
		name = filepath.Base(m.selPath)
	}
	switch {
	case m.curve != nil:
		x := m.curve.Store().Range(geom.AxisX)
		y := m.curve.Store().Range(geom.AxisY)
		return fmt.Sprintf("%s  x=[%.4g, %.4g]  y=[%.4g, %.4g]", name, x.Lo, x.Hi, y.Lo, y.Hi)
	case m.grid != nil:
		s := m.grid.Store()
		cols, rows := s.Range(geom.AxisX), s.Range(geom.AxisY)
		return fmt.Sprintf("%s  cols=[%d, %d]  rows=[%d, %d]  stride=%d", name, cols.Lo, cols.Hi, rows.Lo, rows.Hi, s.Stride())
	}
	return name
}
