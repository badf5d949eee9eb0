package geom

import (
	"math"
	"sort"
)

// Surface is the pixel side of a geometry descriptor: the CSS size of the
// drawing surface, its device pixel ratio and the plot margins.
type Surface struct {
	Size    Size
	DPR     float64
	Margins Margins
}

// Inner returns the plotted area in CSS pixels. Width and height are
// floored at 1 so no caller ever divides by zero.
func (s Surface) Inner() Rect {
	left := s.Margins.Left
	top := s.Margins.Top
	w := math.Max(1, s.Size.Width-s.Margins.Left-s.Margins.Right)
	h := math.Max(1, s.Size.Height-s.Margins.Top-s.Margins.Bottom)
	return Rect{Min: Point{X: left, Y: top}, Max: Point{X: left + w, Y: top + h}}
}

// Physical is the raster size in device pixels.
func (s Surface) Physical() (int, int) {
	dpr := s.ratio()
	w := max(1, int(math.Ceil(s.Size.Width*dpr)))
	h := max(1, int(math.Ceil(s.Size.Height*dpr)))
	return w, h
}

// ToPhysical maps a CSS-pixel rectangle to device pixels.
func (s Surface) ToPhysical(r Rect) Rect {
	dpr := s.ratio()
	r = r.Normalize()
	return Rect{
		Min: Point{X: math.Floor(r.Min.X * dpr), Y: math.Floor(r.Min.Y * dpr)},
		Max: Point{X: math.Ceil(r.Max.X * dpr), Y: math.Ceil(r.Max.Y * dpr)},
	}
}

func (s Surface) ratio() float64 {
	if !(s.DPR > 0) || math.IsInf(s.DPR, 0) {
		return 1
	}
	return s.DPR
}

// CurveGeometry maps between CSS pixels and data units for a curve chart.
// It is valid for one combination of surface and visible ranges and is
// never cached across changes to either.
type CurveGeometry struct {
	Surface
	X     Range
	Y     Range
	inner Rect
}

func ResolveCurve(s Surface, x, y Range) CurveGeometry {
	return CurveGeometry{Surface: s, X: x.Normalize(), Y: y.Normalize(), inner: s.Inner()}
}

// Inner returns the plotted area in CSS pixels.
func (g CurveGeometry) Inner() Rect { return g.inner }

// Contains reports whether p lies in the plotted area.
func (g CurveGeometry) Contains(p Point) bool { return g.inner.Contains(p) }

// PixelToData converts a pixel coordinate along a to data units. The y axis
// grows upward in data space and downward in pixel space.
func (g CurveGeometry) PixelToData(a Axis, px float64) float64 {
	if a == AxisY {
		t := (px - g.inner.Min.Y) / g.inner.Height()
		return g.Y.Hi - t*g.Y.Span()
	}
	t := (px - g.inner.Min.X) / g.inner.Width()
	return g.X.Lo + t*g.X.Span()
}

// DataToPixel is the inverse of PixelToData.
func (g CurveGeometry) DataToPixel(a Axis, v float64) float64 {
	if a == AxisY {
		span := g.Y.Span()
		if span == 0 {
			return g.inner.Min.Y + g.inner.Height()/2
		}
		return g.inner.Min.Y + (g.Y.Hi-v)/span*g.inner.Height()
	}
	span := g.X.Span()
	if span == 0 {
		return g.inner.Min.X + g.inner.Width()/2
	}
	return g.inner.Min.X + (v-g.X.Lo)/span*g.inner.Width()
}

func (g CurveGeometry) ToPixel(p Point) Point {
	return Point{X: g.DataToPixel(AxisX, p.X), Y: g.DataToPixel(AxisY, p.Y)}
}

func (g CurveGeometry) ToData(p Point) Point {
	return Point{X: g.PixelToData(AxisX, p.X), Y: g.PixelToData(AxisY, p.Y)}
}

// GridGeometry maps between CSS pixels and cells for a grid chart. Columns
// holds the absolute indices of the sampled columns, one per drawn slot.
type GridGeometry struct {
	Surface
	Rows    Span
	Columns []int
	CellW   float64
	CellH   float64
	inner   Rect
}

func ResolveGrid(s Surface, rows Span, columns []int) GridGeometry {
	inner := s.Inner()
	rows = rows.Normalize()
	slots := max(1, len(columns))
	return GridGeometry{
		Surface: s,
		Rows:    rows,
		Columns: columns,
		CellW:   inner.Width() / float64(slots),
		CellH:   inner.Height() / float64(rows.Len()),
		inner:   inner,
	}
}

func (g GridGeometry) Inner() Rect { return g.inner }

// CellAt returns the cell under p. Positions outside the plotted area, or
// over an empty grid, report false rather than an edge cell.
func (g GridGeometry) CellAt(p Point) (Cell, bool) {
	if len(g.Columns) == 0 || !g.inner.Contains(p) {
		return Cell{}, false
	}
	slot := int(math.Floor((p.X - g.inner.Min.X) / g.CellW))
	row := int(math.Floor((p.Y - g.inner.Min.Y) / g.CellH))
	// The far edges belong to the last cell.
	slot = min(slot, len(g.Columns)-1)
	row = min(row, g.Rows.Len()-1)
	return Cell{Row: g.Rows.Lo + row, Col: g.Columns[slot]}, true
}

// slotOf returns the drawn slot holding column col: the first sampled
// column at or after col, or the last slot.
func (g GridGeometry) slotOf(col int) int {
	i := sort.SearchInts(g.Columns, col)
	if i >= len(g.Columns) {
		i = len(g.Columns) - 1
	}
	return max(0, i)
}

// CellRect returns the pixel rectangle of a cell in the current layout.
func (g GridGeometry) CellRect(c Cell) Rect {
	slot := 0
	if len(g.Columns) > 0 {
		slot = g.slotOf(c.Col)
	}
	row := min(max(c.Row, g.Rows.Lo), g.Rows.Hi) - g.Rows.Lo
	x := g.inner.Min.X + float64(slot)*g.CellW
	y := g.inner.Min.Y + float64(row)*g.CellH
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + g.CellW, Y: y + g.CellH}}
}

// Project returns the pixel rectangle covering a cell-index rectangle.
func (g GridGeometry) Project(r CellRect) Rect {
	r = r.Normalize()
	a := g.CellRect(Cell{Row: r.MinRow, Col: r.MinCol})
	b := g.CellRect(Cell{Row: r.MaxRow, Col: r.MaxCol})
	return a.Union(b)
}
