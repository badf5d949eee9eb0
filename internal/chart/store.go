package chart

import (
	"math"
	"strconv"
	"strings"

	"plotview/internal/dataset"
	"plotview/internal/geom"
)

// DefaultStride samples roughly ten columns across the given visible width.
func DefaultStride(width int) int {
	return max(1, width/10)
}

// GridStore owns the visible row and column window of a grid chart and the
// column sampling stride.
type GridStore struct {
	grid   dataset.Grid
	rowsB  geom.Span
	colsB  geom.Span
	rows   geom.Span
	cols   geom.Span
	stride int
}

func NewGridStore() *GridStore {
	s := &GridStore{}
	s.SetDataset(dataset.Grid{})
	return s
}

// SetDataset replaces the grid and re-seeds the window and stride.
func (s *GridStore) SetDataset(g dataset.Grid) {
	s.grid = g
	s.rowsB, s.colsB = g.Bounds()
	s.ResetToBounds()
}

func (s *GridStore) Grid() dataset.Grid { return s.grid }

// Bounds returns the full row and column extent.
func (s *GridStore) Bounds() (rows, cols geom.Span) { return s.rowsB, s.colsB }

// Range returns the visible span for an axis; AxisX is columns.
func (s *GridStore) Range(a geom.Axis) geom.Span {
	if a == geom.AxisY {
		return s.rows
	}
	return s.cols
}

// SetRange clamps r into the bounds and applies it. It reports false and
// leaves the window unchanged when r lies entirely outside the bounds.
func (s *GridStore) SetRange(a geom.Axis, r geom.Span) bool {
	if a == geom.AxisY {
		rows, ok := r.Within(s.rowsB)
		if !ok {
			return false
		}
		s.rows = rows
		return true
	}
	cols, ok := r.Within(s.colsB)
	if !ok {
		return false
	}
	s.cols = cols
	s.stride = s.clampStride(s.stride)
	return true
}

func (s *GridStore) Stride() int { return s.stride }

// SetStride clamps n to [1, visible column span] and returns the value used.
func (s *GridStore) SetStride(n int) int {
	s.stride = s.clampStride(n)
	return s.stride
}

// SetStrideText parses user input; anything that is not an integer is
// treated as 1.
func (s *GridStore) SetStrideText(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		n = 1
	}
	return s.SetStride(n)
}

func (s *GridStore) clampStride(n int) int {
	return min(max(1, n), s.cols.Len())
}

// ResetToBounds shows the full grid at the default stride.
func (s *GridStore) ResetToBounds() {
	s.rows = s.rowsB
	s.cols = s.colsB
	s.stride = DefaultStride(s.cols.Len())
}

// Columns returns the sampled absolute column indices: every stride-th
// column counted from the low end of the visible window.
func (s *GridStore) Columns() []int {
	out := make([]int, 0, s.cols.Len()/s.stride+1)
	for c := s.cols.Lo; c <= s.cols.Hi; c += s.stride {
		out = append(out, c)
	}
	return out
}

// Filtered returns the visible rows with only the sampled columns. Slot i
// of every row corresponds to Columns()[i]; missing cells are empty.
func (s *GridStore) Filtered() dataset.Grid {
	cols := s.Columns()
	out := dataset.Grid{ID: s.grid.ID}
	for r := s.rows.Lo; r <= s.rows.Hi && r < len(s.grid.Rows); r++ {
		src := s.grid.Rows[r]
		row := dataset.Row{Name: src.Name, Cells: make([]dataset.Cell, len(cols))}
		for i, c := range cols {
			if c < len(src.Cells) {
				row.Cells[i] = src.Cells[c]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// groupEnd is the last column the sampled slot starting at col stands for.
func (s *GridStore) groupEnd(col int) int {
	return min(col+s.stride-1, s.cols.Hi)
}

// CurveStore owns the visible data window of a curve chart.
type CurveStore struct {
	curves dataset.Curves
	bounds geom.Bounds
	view   geom.Bounds

	// derived is rebuilt on first read after the data or the x window
	// changes; nil means stale.
	derived *curveView
}

type curveView struct {
	filtered dataset.Curves
	xs       []float64
}

func NewCurveStore() *CurveStore {
	s := &CurveStore{}
	s.SetDataset(dataset.Curves{})
	return s
}

func (s *CurveStore) SetDataset(c dataset.Curves) {
	s.curves = c
	s.bounds = c.Bounds()
	s.ResetToBounds()
}

// replace swaps the data under the current window, keeping bounds and
// ranges.
func (s *CurveStore) replace(c dataset.Curves) {
	s.curves = c
	s.derived = nil
}

func (s *CurveStore) Curves() dataset.Curves { return s.curves }

func (s *CurveStore) Bounds() geom.Bounds { return s.bounds }

func (s *CurveStore) Range(a geom.Axis) geom.Range { return s.view.Axis(a) }

// SetRange clamps r into the bounds and applies it. Non-finite ranges and
// ranges outside the bounds are rejected.
func (s *CurveStore) SetRange(a geom.Axis, r geom.Range) bool {
	if !r.Finite() {
		return false
	}
	v, ok := r.Within(s.bounds.Axis(a))
	if !ok {
		return false
	}
	s.view.SetAxis(a, v)
	s.derived = nil
	return true
}

func (s *CurveStore) ResetToBounds() {
	s.view = s.bounds
	s.derived = nil
}

// Filtered keeps the points of each series whose x lies in the visible
// x window. The y window only scales the axis. The result is shared until
// the next change and must not be modified.
func (s *CurveStore) Filtered() dataset.Curves { return s.visible().filtered }

// VisibleX returns the distinct visible x values in series order, then
// point order. The slice is shared like Filtered.
func (s *CurveStore) VisibleX() []float64 { return s.visible().xs }

func (s *CurveStore) visible() *curveView {
	if s.derived != nil {
		return s.derived
	}
	d := &curveView{filtered: dataset.Curves{ID: s.curves.ID, Series: make([]dataset.Series, 0, len(s.curves.Series))}}
	seen := map[float64]bool{}
	for _, sr := range s.curves.Series {
		kept := dataset.Series{ID: sr.ID}
		for _, p := range sr.Points {
			if !s.view.X.Contains(p.X) {
				continue
			}
			kept.Points = append(kept.Points, p)
			if !seen[p.X] {
				seen[p.X] = true
				d.xs = append(d.xs, p.X)
			}
		}
		d.filtered.Series = append(d.filtered.Series, kept)
	}
	s.derived = d
	return d
}

// SnapX returns the visible data x nearest to v. Of two equally near
// values the one closer to anchor wins, so a marquee shrinks toward its
// anchor rather than growing away from it. With nothing visible v is
// returned as is.
func (s *CurveStore) SnapX(v, anchor float64) float64 {
	xs := s.VisibleX()
	x, ok := nearest(xs, v)
	if !ok {
		return v
	}
	d := math.Abs(x - v)
	tol := 1e-9 * math.Max(1, math.Abs(v))
	for _, o := range xs {
		if math.Abs(math.Abs(o-v)-d) <= tol && math.Abs(o-anchor) < math.Abs(x-anchor) {
			x = o
		}
	}
	return x
}

func nearest(xs []float64, v float64) (float64, bool) {
	best, bestD := 0.0, math.Inf(1)
	for _, x := range xs {
		if d := math.Abs(x - v); d < bestD {
			best, bestD = x, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}
