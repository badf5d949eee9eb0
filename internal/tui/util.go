package tui

import "plotview/internal/geom"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2

	// Each terminal cell is a 2x4 braille micro-grid; one dot is one CSS
	// pixel of the chart surface.
	dotsX = 2
	dotsY = 4
)

// layout is the screen geometry shared by View and the mouse handler.
type layout struct {
	contentW, contentH int
	chartX, chartY     int
	chartW, chartH     int
}

func (m Model) layout() layout {
	contentH := max(4, m.height-headerHeight-footerHeight)
	contentW := max(10, m.width)
	lo := layout{contentW: contentW, contentH: contentH, chartY: headerHeight}
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		lo.chartX = sidebarWidth + 1
	}
	lo.chartW = max(10, contentW-sw-1)
	lo.chartH = contentH
	return lo
}

// inChart reports whether a screen cell lies over the chart area.
func (lo layout) inChart(x, y int) bool {
	return x >= lo.chartX && x < lo.chartX+lo.chartW && y >= lo.chartY && y < lo.chartY+lo.chartH
}

// pointAt maps a screen cell to the centre of its dots in chart pixels.
func (lo layout) pointAt(x, y int) geom.Point {
	return geom.Point{
		X: float64((x-lo.chartX)*dotsX) + dotsX/2.0,
		Y: float64((y-lo.chartY)*dotsY) + dotsY/2.0,
	}
}

// surface is the chart drawing surface for the current layout.
func (m Model) surface() geom.Surface {
	lo := m.layout()
	return geom.Surface{
		Size:    geom.Size{Width: float64(lo.chartW * dotsX), Height: float64(lo.chartH * dotsY)},
		DPR:     m.cfg.DevicePixelRatio,
		Margins: m.cfg.Margins,
	}
}
