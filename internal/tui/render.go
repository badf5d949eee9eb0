package tui

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"

	"plotview/internal/geom"
)

// alphaThreshold is the overlay coverage (16-bit alpha) a dot needs to show.
const alphaThreshold = 0x4000

// renderChart draws the plot ink for the active chart and traces the
// overlay raster on top of it.
func (m Model) renderChart(w, h int) string {
	cv := canvas.New(w, h)
	switch {
	case m.curve != nil:
		m.drawCurves(&cv, w, h)
	case m.grid != nil:
		m.drawGrid(&cv, w, h)
	}
	m.drawOverlay(&cv, w, h)
	return cv.View()
}

func (m Model) drawCurves(cv *canvas.Model, w, h int) {
	g := m.curve.Geometry()
	hover := m.curve.Hovered()
	height := float64(h * dotsY)

	ink := m.ink
	if ink == nil {
		ink = &inkGrid{}
	}
	bGrid := ink.sized(w, h)
	for i, s := range m.curve.Store().Filtered().Series {
		bGrid.Clear()
		var prev *canvas.Point
		for _, p := range s.Points {
			px := g.ToPixel(geom.Point{X: p.X, Y: p.Y})
			if !g.Contains(px) {
				prev = nil
				continue
			}
			gp := bGrid.GridPoint(canvas.Float64Point{X: px.X, Y: height - px.Y})
			if prev == nil {
				bGrid.Set(gp)
			} else {
				for _, lp := range graph.GetLinePoints(*prev, gp) {
					bGrid.Set(lp)
				}
			}
			prev = &gp
		}
		style := seriesStyle(i)
		if hover != nil && hover.Nearest >= 0 && hover.Values[hover.Nearest].Series == s.ID {
			style = style.Bold(true)
		}
		graph.DrawBraillePatterns(cv, canvas.Point{}, bGrid.BraillePatterns(), style)
	}

	// Mark the hovered point of the nearest series.
	if hover != nil && hover.Nearest >= 0 {
		v := hover.Values[hover.Nearest]
		px := g.ToPixel(geom.Point{X: hover.X, Y: v.Y})
		if g.Contains(px) {
			cell := canvas.Point{X: int(px.X) / dotsX, Y: int(px.Y) / dotsY}
			cv.SetCell(cell, canvas.NewCellWithStyle('◯', hoverStyle))
		}
	}
}

// inkGrid holds the braille grid curves are plotted into, rebuilt only
// when the chart area changes size.
type inkGrid struct {
	grid *graph.BrailleGrid
	w, h int
}

func (g *inkGrid) sized(w, h int) *graph.BrailleGrid {
	if g.grid == nil || g.w != w || g.h != h {
		g.grid = graph.NewBrailleGrid(w, h, 0, float64(w*dotsX), 0, float64(h*dotsY))
		g.w, g.h = w, h
	}
	return g.grid
}

func (m Model) drawGrid(cv *canvas.Model, w, h int) {
	g := m.grid.Geometry()
	grid := m.grid.Store().Grid()
	vr := grid.ValueRange()

	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			p := geom.Point{X: float64(cx*dotsX) + dotsX/2.0, Y: float64(cy*dotsY) + dotsY/2.0}
			cell, ok := g.CellAt(p)
			if !ok {
				continue
			}
			c, present := grid.At(cell.Row, cell.Col)
			if !present || c.Y == nil {
				cv.SetCell(canvas.Point{X: cx, Y: cy}, canvas.NewCellWithStyle('·', dimStyle))
				continue
			}
			t := 0.5
			if vr.Span() > 0 {
				t = (*c.Y - vr.Lo) / vr.Span()
			}
			cv.SetCell(canvas.Point{X: cx, Y: cy}, canvas.NewCellWithStyle('█', heatStyle(t)))
		}
	}
}

// drawOverlay copies the overlay raster into the canvas as braille dots.
func (m Model) drawOverlay(cv *canvas.Model, w, h int) {
	rd := m.renderer()
	if rd == nil || rd.Draws() == 0 {
		return
	}
	buf := newBrailleBuf(w, h)
	buf.traceImage(rd.Image(), rd.Surface().DPR, alphaThreshold)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r := buf.cell(x, y); r != 0 {
				cv.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(r, overlayStyle))
			}
		}
	}
}

// heatLevel maps t in [0,1] to a palette index.
func heatLevel(t float64) int {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Min(1, math.Max(0, t))
	return int(math.Round(t * float64(len(heatPalette)-1)))
}
