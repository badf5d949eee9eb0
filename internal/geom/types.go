package geom

import "math"

// Axis selects the horizontal or vertical dimension of a chart.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Range is a closed data window [Lo, Hi] along one axis.
type Range struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// Normalize swaps the ends so that Lo <= Hi.
func (r Range) Normalize() Range {
	if r.Lo > r.Hi {
		return Range{Lo: r.Hi, Hi: r.Lo}
	}
	return r
}

func (r Range) Span() float64 { return r.Hi - r.Lo }

func (r Range) Contains(v float64) bool { return v >= r.Lo && v <= r.Hi }

// Finite reports whether both ends are real numbers.
func (r Range) Finite() bool { return isFinite(r.Lo) && isFinite(r.Hi) }

// Within clamps r into b. The second result is false when the two ranges
// do not overlap at all.
func (r Range) Within(b Range) (Range, bool) {
	r = r.Normalize()
	b = b.Normalize()
	lo := math.Max(r.Lo, b.Lo)
	hi := math.Min(r.Hi, b.Hi)
	if lo > hi {
		return b, false
	}
	return Range{Lo: lo, Hi: hi}, true
}

// Bounds is the data extent of a curve chart, or the index extent of a
// grid chart with X holding columns and Y holding rows.
type Bounds struct {
	X Range `json:"x" yaml:"x"`
	Y Range `json:"y" yaml:"y"`
}

// DefaultBounds is used when a dataset has no usable extent.
var DefaultBounds = Bounds{X: Range{Lo: 0, Hi: 1}, Y: Range{Lo: 0, Hi: 1}}

func (b Bounds) Axis(a Axis) Range {
	if a == AxisY {
		return b.Y
	}
	return b.X
}

func (b *Bounds) SetAxis(a Axis, r Range) {
	if a == AxisY {
		b.Y = r
		return
	}
	b.X = r
}

// Extend grows b to include (x, y). The first call on an empty accumulator
// must go through NewBoundsAt.
func (b *Bounds) Extend(x, y float64) {
	if x < b.X.Lo {
		b.X.Lo = x
	}
	if y < b.Y.Lo {
		b.Y.Lo = y
	}
	if x > b.X.Hi {
		b.X.Hi = x
	}
	if y > b.Y.Hi {
		b.Y.Hi = y
	}
}

func NewBoundsAt(x, y float64) Bounds {
	return Bounds{X: Range{Lo: x, Hi: x}, Y: Range{Lo: y, Hi: y}}
}

// Widen replaces zero-width axes with a unit span centred on the value and
// non-finite axes with the default span.
func (b Bounds) Widen() Bounds {
	widen := func(r, def Range) Range {
		if !r.Finite() {
			return def
		}
		r = r.Normalize()
		if r.Span() == 0 {
			return Range{Lo: r.Lo - 0.5, Hi: r.Hi + 0.5}
		}
		return r
	}
	return Bounds{X: widen(b.X, DefaultBounds.X), Y: widen(b.Y, DefaultBounds.Y)}
}

// Span is an inclusive integer index window.
type Span struct {
	Lo int `json:"lo" yaml:"lo"`
	Hi int `json:"hi" yaml:"hi"`
}

func (s Span) Normalize() Span {
	if s.Lo > s.Hi {
		return Span{Lo: s.Hi, Hi: s.Lo}
	}
	return s
}

// Len is the number of indices covered, never less than 1.
func (s Span) Len() int {
	s = s.Normalize()
	return max(1, s.Hi-s.Lo+1)
}

func (s Span) Contains(i int) bool { return i >= s.Lo && i <= s.Hi }

// Within clamps s into b; false when they do not overlap.
func (s Span) Within(b Span) (Span, bool) {
	s = s.Normalize()
	b = b.Normalize()
	lo := max(s.Lo, b.Lo)
	hi := min(s.Hi, b.Hi)
	if lo > hi {
		return b, false
	}
	return Span{Lo: lo, Hi: hi}, true
}

func (s Span) Range() Range { return Range{Lo: float64(s.Lo), Hi: float64(s.Hi)} }

// SpanOf rounds a persisted range back to indices.
func SpanOf(r Range) Span {
	return Span{Lo: int(math.Round(r.Lo)), Hi: int(math.Round(r.Hi))}.Normalize()
}

// Point is a position in CSS pixels or data units depending on context.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle. Min and Max are not required to be
// ordered; callers normalize on read.
type Rect struct {
	Min Point
	Max Point
}

func (r Rect) Normalize() Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, r.Max.X), Y: math.Min(r.Min.Y, r.Max.Y)},
		Max: Point{X: math.Max(r.Min.X, r.Max.X), Y: math.Max(r.Min.Y, r.Max.Y)},
	}
}

func (r Rect) Width() float64  { return math.Abs(r.Max.X - r.Min.X) }
func (r Rect) Height() float64 { return math.Abs(r.Max.Y - r.Min.Y) }

func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return p.X >= n.Min.X && p.X <= n.Max.X && p.Y >= n.Min.Y && p.Y <= n.Max.Y
}

// Union returns the smallest rectangle covering both.
func (r Rect) Union(o Rect) Rect {
	a, b := r.Normalize(), o.Normalize()
	return Rect{
		Min: Point{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y)},
		Max: Point{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y)},
	}
}

// Cell addresses one grid cell by row and absolute column index.
type Cell struct {
	Row int
	Col int
}

// CellRect is a rectangle in cell-index space.
type CellRect struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

func CellRectOf(a, b Cell) CellRect {
	return CellRect{MinRow: a.Row, MaxRow: b.Row, MinCol: a.Col, MaxCol: b.Col}
}

func (r CellRect) Normalize() CellRect {
	return CellRect{
		MinRow: min(r.MinRow, r.MaxRow), MaxRow: max(r.MinRow, r.MaxRow),
		MinCol: min(r.MinCol, r.MaxCol), MaxCol: max(r.MinCol, r.MaxCol),
	}
}

func (r CellRect) Rows() Span { return Span{Lo: r.MinRow, Hi: r.MaxRow}.Normalize() }
func (r CellRect) Cols() Span { return Span{Lo: r.MinCol, Hi: r.MaxCol}.Normalize() }

// Size is a drawing-surface size in CSS pixels.
type Size struct {
	Width  float64
	Height float64
}

// Margins reserve space around the plotted area, in CSS pixels.
type Margins struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
