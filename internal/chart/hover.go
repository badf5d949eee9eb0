package chart

import (
	"math"

	"plotview/internal/dataset"
	"plotview/internal/geom"
)

// SeriesValue is one series' value at the hovered x.
type SeriesValue struct {
	Series string
	Y      float64
}

// CurveHover is the tooltip state of a curve chart. Nearest indexes Values
// and is -1 when no series has a value at X.
type CurveHover struct {
	X       float64
	Values  []SeriesValue
	Nearest int
}

// ResolveCurveHover finds the visible x nearest the pointer and the series
// whose value there is closest to the pointer's y. It returns nil outside
// the plotted area or when nothing is visible.
func ResolveCurveHover(g geom.CurveGeometry, c dataset.Curves, p geom.Point) *CurveHover {
	if !g.Contains(p) {
		return nil
	}
	d := g.ToData(p)

	best, bestD, found := 0.0, math.Inf(1), false
	for _, s := range c.Series {
		for _, pt := range s.Points {
			if dx := math.Abs(pt.X - d.X); dx < bestD {
				best, bestD, found = pt.X, dx, true
			}
		}
	}
	if !found {
		return nil
	}

	h := &CurveHover{X: best, Nearest: -1}
	nearestD := math.Inf(1)
	for _, s := range c.Series {
		for _, pt := range s.Points {
			if pt.X != best {
				continue
			}
			if dy := math.Abs(pt.Y - d.Y); dy < nearestD {
				nearestD = dy
				h.Nearest = len(h.Values)
			}
			h.Values = append(h.Values, SeriesValue{Series: s.ID, Y: pt.Y})
			break
		}
	}
	return h
}

// GridHover is the tooltip state of a grid chart.
type GridHover struct {
	Cell    geom.Cell
	Value   dataset.Cell
	Present bool
	Row     string
}

// ResolveGridHover returns the cell under the pointer, or nil outside the
// plotted area.
func ResolveGridHover(g geom.GridGeometry, grid dataset.Grid, p geom.Point) *GridHover {
	cell, ok := g.CellAt(p)
	if !ok {
		return nil
	}
	h := &GridHover{Cell: cell}
	h.Value, h.Present = grid.At(cell.Row, cell.Col)
	if cell.Row < len(grid.Rows) {
		h.Row = grid.Rows[cell.Row].Name
	}
	return h
}
