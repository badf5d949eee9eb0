package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSurface() Surface {
	return Surface{
		Size:    Size{Width: 220, Height: 120},
		DPR:     2,
		Margins: Margins{Top: 10, Right: 10, Bottom: 10, Left: 10},
	}
}

func TestCurveGeometry_RoundTrip(t *testing.T) {
	g := ResolveCurve(testSurface(), Range{Lo: -5, Hi: 15}, Range{Lo: 0, Hi: 1})

	for _, v := range []float64{-5, 0, 2.5, 15} {
		px := g.DataToPixel(AxisX, v)
		require.InDelta(t, v, g.PixelToData(AxisX, px), 1e-9)
	}
	for _, v := range []float64{0, 0.25, 1} {
		py := g.DataToPixel(AxisY, v)
		require.InDelta(t, v, g.PixelToData(AxisY, py), 1e-9)
	}

	// Left edge is the low end of x, top edge the high end of y.
	require.InDelta(t, 10.0, g.DataToPixel(AxisX, -5), 1e-9)
	require.InDelta(t, 210.0, g.DataToPixel(AxisX, 15), 1e-9)
	require.InDelta(t, 10.0, g.DataToPixel(AxisY, 1), 1e-9)
	require.InDelta(t, 110.0, g.DataToPixel(AxisY, 0), 1e-9)
}

func TestCurveGeometry_NeverDividesByZero(t *testing.T) {
	s := Surface{Size: Size{Width: 4, Height: 4}, Margins: Margins{Left: 10, Right: 10, Top: 10, Bottom: 10}}
	g := ResolveCurve(s, Range{Lo: 3, Hi: 3}, Range{Lo: 1, Hi: 1})

	v := g.PixelToData(AxisX, 12)
	require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	px := g.DataToPixel(AxisX, 3)
	require.False(t, math.IsNaN(px) || math.IsInf(px, 0))
	require.Equal(t, 1.0, g.Inner().Width())
}

func TestSurface_Physical(t *testing.T) {
	s := Surface{Size: Size{Width: 100.5, Height: 40}, DPR: 1.5}
	w, h := s.Physical()
	require.Equal(t, 151, w)
	require.Equal(t, 60, h)

	s.DPR = 0
	w, h = s.Physical()
	require.Equal(t, 101, w)
	require.Equal(t, 40, h)
}

func TestGridGeometry_CellAt(t *testing.T) {
	s := Surface{Size: Size{Width: 120, Height: 60}}
	g := ResolveGrid(s, Span{Lo: 0, Hi: 2}, []int{2, 5, 8})

	require.InDelta(t, 40.0, g.CellW, 1e-9)
	require.InDelta(t, 20.0, g.CellH, 1e-9)

	c, ok := g.CellAt(Point{X: 45, Y: 5})
	require.True(t, ok)
	require.Equal(t, Cell{Row: 0, Col: 5}, c)

	c, ok = g.CellAt(Point{X: 120, Y: 60})
	require.True(t, ok)
	require.Equal(t, Cell{Row: 2, Col: 8}, c)

	_, ok = g.CellAt(Point{X: -1, Y: 5})
	require.False(t, ok)
	_, ok = g.CellAt(Point{X: 50, Y: 61})
	require.False(t, ok)
}

func TestGridGeometry_CellRectContainsItsCentre(t *testing.T) {
	s := Surface{Size: Size{Width: 90, Height: 30}, Margins: Margins{Left: 6, Top: 3}}
	g := ResolveGrid(s, Span{Lo: 4, Hi: 6}, []int{0, 1, 2, 3})

	for _, col := range g.Columns {
		for row := 4; row <= 6; row++ {
			r := g.CellRect(Cell{Row: row, Col: col})
			centre := Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
			got, ok := g.CellAt(centre)
			require.True(t, ok)
			require.Equal(t, Cell{Row: row, Col: col}, got)
		}
	}
}

func TestGridGeometry_ProjectCoversCorners(t *testing.T) {
	s := Surface{Size: Size{Width: 100, Height: 50}}
	g := ResolveGrid(s, Span{Lo: 0, Hi: 4}, []int{0, 1, 2, 3, 4})

	r := g.Project(CellRect{MinRow: 3, MaxRow: 1, MinCol: 4, MaxCol: 2})
	require.InDelta(t, 40.0, r.Min.X, 1e-9)
	require.InDelta(t, 100.0, r.Max.X, 1e-9)
	require.InDelta(t, 10.0, r.Min.Y, 1e-9)
	require.InDelta(t, 40.0, r.Max.Y, 1e-9)
}

func TestRange_Within(t *testing.T) {
	r, ok := Range{Lo: 8, Hi: -2}.Within(Range{Lo: 0, Hi: 5})
	require.True(t, ok)
	require.Equal(t, Range{Lo: 0, Hi: 5}, r)

	_, ok = Range{Lo: 6, Hi: 9}.Within(Range{Lo: 0, Hi: 5})
	require.False(t, ok)
}

func TestBounds_Widen(t *testing.T) {
	b := NewBoundsAt(3, 7).Widen()
	require.Equal(t, Range{Lo: 2.5, Hi: 3.5}, b.X)
	require.Equal(t, Range{Lo: 6.5, Hi: 7.5}, b.Y)

	b = Bounds{X: Range{Lo: math.Inf(1), Hi: math.Inf(-1)}}.Widen()
	require.Equal(t, DefaultBounds.X, b.X)
}
