package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"plotview/internal/geom"
)

// Kind tells which chart family a dataset feeds.
type Kind int

const (
	KindGrid Kind = iota
	KindCurves
)

func (k Kind) String() string {
	if k == KindCurves {
		return "curves"
	}
	return "grid"
}

type TopValue struct {
	Text        string  `json:"text"`
	Probability float64 `json:"probability"`
}

// Cell is one scalar of a grid row. X is the column key as given by the
// producer (a position or a token), Y is nil for a missing value.
type Cell struct {
	X         string     `json:"x"`
	Y         *float64   `json:"y"`
	Label     string     `json:"label,omitempty"`
	TopValues []TopValue `json:"topValues,omitempty"`
}

// UnmarshalJSON accepts x as a number or a string.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var raw struct {
		X         any        `json:"x"`
		Y         *float64   `json:"y"`
		Label     string     `json:"label"`
		TopValues []TopValue `json:"topValues"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch x := raw.X.(type) {
	case nil:
		c.X = ""
	case string:
		c.X = x
	case float64:
		c.X = strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Errorf("cell x: unsupported type %T", raw.X)
	}
	c.Y, c.Label, c.TopValues = raw.Y, raw.Label, raw.TopValues
	if c.Y != nil && (math.IsNaN(*c.Y) || math.IsInf(*c.Y, 0)) {
		c.Y = nil
	}
	return nil
}

type Row struct {
	Name  string `json:"name,omitempty"`
	Cells []Cell `json:"cells"`
}

// Grid is a rows-of-cells dataset. Column i of every row shares the same
// index even when rows have different lengths.
type Grid struct {
	ID   string `json:"-"`
	Rows []Row  `json:"rows"`
}

// ColumnCount is the length of the longest row.
func (g Grid) ColumnCount() int {
	n := 0
	for _, r := range g.Rows {
		n = max(n, len(r.Cells))
	}
	return n
}

// Bounds returns the row and column index extent. An empty grid reports a
// single cell so layouts never collapse.
func (g Grid) Bounds() (rows, cols geom.Span) {
	return geom.Span{Lo: 0, Hi: max(0, len(g.Rows)-1)}, geom.Span{Lo: 0, Hi: max(0, g.ColumnCount()-1)}
}

// At returns the cell at (row, col) if present.
func (g Grid) At(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.Rows) {
		return Cell{}, false
	}
	cells := g.Rows[row].Cells
	if col < 0 || col >= len(cells) {
		return Cell{}, false
	}
	return cells[col], true
}

// ValueRange is the min/max of all present cell values.
func (g Grid) ValueRange() geom.Range {
	r := geom.Range{Lo: math.Inf(1), Hi: math.Inf(-1)}
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			if c.Y == nil {
				continue
			}
			r.Lo = math.Min(r.Lo, *c.Y)
			r.Hi = math.Max(r.Hi, *c.Y)
		}
	}
	if !r.Finite() {
		return geom.DefaultBounds.Y
	}
	return r
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Series struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
}

// Curves is a set of id-tagged point series drawn on shared axes.
type Curves struct {
	ID     string   `json:"-"`
	Series []Series `json:"series"`
}

// Bounds derives the data extent from all points. Empty or degenerate
// datasets fall back to a fixed span.
func (c Curves) Bounds() geom.Bounds {
	var b geom.Bounds
	seen := false
	for _, s := range c.Series {
		for _, p := range s.Points {
			if !isFinite(p.X) || !isFinite(p.Y) {
				continue
			}
			if !seen {
				b = geom.NewBoundsAt(p.X, p.Y)
				seen = true
				continue
			}
			b.Extend(p.X, p.Y)
		}
	}
	if !seen {
		return geom.DefaultBounds
	}
	return b.Widen()
}

// PointCount is the total number of points over all series.
func (c Curves) PointCount() int {
	n := 0
	for _, s := range c.Series {
		n += len(s.Points)
	}
	return n
}

// Data is whatever a loader produced; exactly one of Grid or Curves is set
// according to Kind.
type Data struct {
	Kind   Kind
	Grid   Grid
	Curves Curves
}

// ID is the dataset identity used to decide whether chart state resets.
func (d Data) ID() string {
	if d.Kind == KindCurves {
		return d.Curves.ID
	}
	return d.Grid.ID
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
