package chart

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"plotview/internal/dataset"
	"plotview/internal/geom"
	"plotview/internal/viewstore"
)

type updater interface {
	Update(tea.Msg) tea.Cmd
}

// run executes cmd and everything it leads to, feeding each message back
// into u. Messages are returned in delivery order.
func run(u updater, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		out = append(out, msg)
		queue = append(queue, u.Update(msg))
	}
	return out
}

func curveOpts(store viewstore.Store) Options {
	return Options{
		ID: "curve-1",
		Surface: geom.Surface{
			Size:    geom.Size{Width: 220, Height: 120},
			DPR:     1,
			Margins: geom.Margins{Top: 10, Right: 10, Bottom: 10, Left: 10},
		},
		FrameInterval: time.Millisecond,
		Store:         store,
		Debounce:      time.Millisecond,
	}
}

func gridOpts(store viewstore.Store) Options {
	return Options{
		ID:            "grid-1",
		Surface:       geom.Surface{Size: geom.Size{Width: 120, Height: 40}, DPR: 2},
		FrameInterval: time.Millisecond,
		Store:         store,
		Debounce:      time.Millisecond,
	}
}

func centre(r geom.Rect) geom.Point {
	return geom.Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

func TestCurveChart_ZoomSnapsToDataX(t *testing.T) {
	c := NewCurve(curveOpts(nil))
	run(c, c.SetDataset(testCurves()))

	g := c.Geometry()
	y := g.Inner().Min.Y + 10
	run(c, c.BeginSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 0.5), Y: y}))
	run(c, c.UpdateSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 1.5), Y: y + 60}))
	run(c, c.EndSelection())
	require.Equal(t, Committed, c.Phase())

	run(c, c.ZoomIntoSelection())
	require.Equal(t, Idle, c.Phase())

	x := c.Store().Range(geom.AxisX)
	require.InDelta(t, 0.5, x.Lo, 1e-9)
	require.InDelta(t, 1.0, x.Hi, 1e-9)

	pts := c.Store().Filtered().Series[0].Points
	require.Equal(t, []dataset.Point{{X: 1, Y: 0.4}}, pts)
}

func TestCurveChart_ZoomSnapsToDataXRightToLeft(t *testing.T) {
	c := NewCurve(curveOpts(nil))
	run(c, c.SetDataset(testCurves()))

	g := c.Geometry()
	y := g.Inner().Min.Y + 10
	run(c, c.BeginSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 1.5), Y: y + 60}))
	run(c, c.UpdateSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 0.5), Y: y}))
	run(c, c.EndSelection())
	run(c, c.ZoomIntoSelection())

	x := c.Store().Range(geom.AxisX)
	require.InDelta(t, 1.0, x.Lo, 1e-9)
	require.InDelta(t, 1.5, x.Hi, 1e-9)

	pts := c.Store().Filtered().Series[0].Points
	require.Equal(t, []dataset.Point{{X: 1, Y: 0.4}}, pts)
}

func TestCurveChart_FullAreaZoomIsNoop(t *testing.T) {
	c := NewCurve(curveOpts(nil))
	run(c, c.SetDataset(testCurves()))
	before := c.Geometry()

	in := before.Inner()
	run(c, c.BeginSelection(in.Min))
	run(c, c.UpdateSelection(in.Max))
	run(c, c.EndSelection())
	run(c, c.ZoomIntoSelection())

	for _, a := range []geom.Axis{geom.AxisX, geom.AxisY} {
		want, got := before.X, c.Store().Range(a)
		if a == geom.AxisY {
			want = before.Y
		}
		require.InDelta(t, want.Lo, got.Lo, 1e-9)
		require.InDelta(t, want.Hi, got.Hi, 1e-9)
	}
}

func TestCurveChart_DegenerateAxisKeepsRange(t *testing.T) {
	c := NewCurve(curveOpts(nil))
	run(c, c.SetDataset(testCurves()))
	g := c.Geometry()
	y := g.DataToPixel(geom.AxisY, 0.5)

	run(c, c.BeginSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 0), Y: y}))
	run(c, c.UpdateSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 1), Y: y}))
	run(c, c.EndSelection())
	run(c, c.ZoomIntoSelection())

	require.Equal(t, geom.Range{Lo: 0, Hi: 1}, c.Store().Range(geom.AxisX))
	require.Equal(t, c.Store().Bounds().Y, c.Store().Range(geom.AxisY))
}

func TestCurveChart_SelectionFollowsResize(t *testing.T) {
	c := NewCurve(curveOpts(nil))
	run(c, c.SetDataset(testCurves()))
	g := c.Geometry()
	run(c, c.BeginSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 0), Y: 20}))
	run(c, c.UpdateSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 1), Y: 80}))
	run(c, c.EndSelection())

	s := c.Surface()
	s.Size.Width = 420
	run(c, c.Resize(s))

	r, ok := c.SelectionRect()
	require.True(t, ok)
	g = c.Geometry()
	require.InDelta(t, g.DataToPixel(geom.AxisX, 0), r.Min.X, 1e-9)
	require.InDelta(t, g.DataToPixel(geom.AxisX, 1), r.Max.X, 1e-9)
}

func TestCurveChart_Hover(t *testing.T) {
	c := NewCurve(curveOpts(nil))
	curves := testCurves()
	curves.Series = append(curves.Series, dataset.Series{ID: "b", Points: []dataset.Point{{X: 1, Y: 0.8}}})
	run(c, c.SetDataset(curves))
	g := c.Geometry()

	h, _ := c.Hover(g.ToPixel(geom.Point{X: 1, Y: 0.4}))
	require.NotNil(t, h)
	require.Equal(t, 1.0, h.X)
	require.Len(t, h.Values, 2)
	require.Equal(t, "a", h.Values[h.Nearest].Series)

	h, _ = c.Hover(g.ToPixel(geom.Point{X: 1.1, Y: 0.75}))
	require.Equal(t, "b", h.Values[h.Nearest].Series)

	h, _ = c.Hover(geom.Point{X: 2, Y: 2})
	require.Nil(t, h)
	require.Nil(t, c.Hovered())

	c.Hover(g.ToPixel(geom.Point{X: 2, Y: 0.9}))
	require.NotNil(t, c.Hovered())
	run(c, c.Leave())
	require.Nil(t, c.Hovered())
}

func TestGridChart_HoverAndBounds(t *testing.T) {
	c := NewGrid(gridOpts(nil))
	run(c, c.SetDataset(testGrid(4, 12)))
	g := c.Geometry()

	h, _ := c.Hover(centre(g.CellRect(geom.Cell{Row: 2, Col: 7})))
	require.NotNil(t, h)
	require.Equal(t, geom.Cell{Row: 2, Col: 7}, h.Cell)
	require.True(t, h.Present)
	require.Equal(t, "r2", h.Row)
	require.Equal(t, 31.0, *h.Value.Y)

	h, _ = c.Hover(geom.Point{X: 121, Y: 5})
	require.Nil(t, h)
}

func TestGridChart_FullAreaZoomIsNoop(t *testing.T) {
	c := NewGrid(gridOpts(nil))
	run(c, c.SetDataset(testGrid(4, 12)))
	run(c, c.SetStride(5))
	require.Equal(t, []int{0, 5, 10}, c.Store().Columns())

	in := c.Geometry().Inner()
	run(c, c.BeginSelection(in.Min))
	run(c, c.UpdateSelection(geom.Point{X: in.Max.X + 30, Y: in.Max.Y + 30}))
	run(c, c.EndSelection())
	run(c, c.ZoomIntoSelection())

	require.Equal(t, geom.Span{Lo: 0, Hi: 11}, c.Store().Range(geom.AxisX))
	require.Equal(t, geom.Span{Lo: 0, Hi: 3}, c.Store().Range(geom.AxisY))
	require.Equal(t, 5, c.Store().Stride())
}

func TestGridChart_SingleCellZoom(t *testing.T) {
	c := NewGrid(gridOpts(nil))
	run(c, c.SetDataset(testGrid(4, 12)))
	p := centre(c.Geometry().CellRect(geom.Cell{Row: 1, Col: 3}))

	run(c, c.BeginSelection(p))
	run(c, c.EndSelection())
	run(c, c.ZoomIntoSelection())

	require.Equal(t, geom.Span{Lo: 3, Hi: 3}, c.Store().Range(geom.AxisX))
	require.Equal(t, geom.Span{Lo: 1, Hi: 1}, c.Store().Range(geom.AxisY))
	require.Equal(t, 1, c.Store().Stride())
}

func TestGridChart_ViewRoundTrip(t *testing.T) {
	store := viewstore.NewMemoryStore()
	a := NewGrid(gridOpts(store))
	run(a, a.Mount())
	run(a, a.SetDataset(testGrid(4, 12)))

	g := a.Geometry()
	run(a, a.BeginSelection(centre(g.CellRect(geom.Cell{Row: 1, Col: 2}))))
	run(a, a.UpdateSelection(centre(g.CellRect(geom.Cell{Row: 3, Col: 8}))))
	run(a, a.EndSelection())
	run(a, a.ZoomIntoSelection())
	run(a, a.SetStride(3))
	require.Equal(t, []int{2, 5, 8}, a.Store().Columns())

	saved, err := store.Load(context.Background(), "grid-1")
	require.NoError(t, err)
	require.Equal(t, 3, *saved.Stride)

	// The restored annotation stands in for the committed selection on the
	// fresh instance; reselect on the original to compare.
	run(a, a.BeginSelection(centre(a.Geometry().CellRect(geom.Cell{Row: 1, Col: 2}))))
	run(a, a.UpdateSelection(centre(a.Geometry().CellRect(geom.Cell{Row: 3, Col: 8}))))
	run(a, a.EndSelection())

	b := NewGrid(gridOpts(store))
	run(b, b.Mount())
	run(b, b.SetDataset(testGrid(4, 12)))

	require.Equal(t, a.Store().Range(geom.AxisX), b.Store().Range(geom.AxisX))
	require.Equal(t, a.Store().Range(geom.AxisY), b.Store().Range(geom.AxisY))
	require.Equal(t, a.Store().Stride(), b.Store().Stride())
	require.Equal(t, a.Annotation(), b.Annotation())
	require.Equal(t, Committed, b.Phase())
}

func TestCurveChart_ViewRoundTrip(t *testing.T) {
	store := viewstore.NewMemoryStore()
	a := NewCurve(curveOpts(store))
	run(a, a.Mount())
	run(a, a.SetDataset(testCurves()))
	g := a.Geometry()
	run(a, a.BeginSelection(g.ToPixel(geom.Point{X: 0.25, Y: 0.8})))
	run(a, a.UpdateSelection(g.ToPixel(geom.Point{X: 1.9, Y: 0.2})))
	run(a, a.EndSelection())
	want := a.Annotation()
	run(a, a.ZoomIntoSelection())

	b := NewCurve(curveOpts(store))
	run(b, b.SetDataset(testCurves()))
	run(b, b.Mount())

	for _, axis := range []geom.Axis{geom.AxisX, geom.AxisY} {
		require.InDelta(t, a.Store().Range(axis).Lo, b.Store().Range(axis).Lo, 1e-9)
		require.InDelta(t, a.Store().Range(axis).Hi, b.Store().Range(axis).Hi, 1e-9)
	}
	got := b.Annotation()
	require.NotNil(t, got)
	require.InDelta(t, want.X.Lo, got.X.Lo, 1e-9)
	require.InDelta(t, want.X.Hi, got.X.Hi, 1e-9)
	require.InDelta(t, want.Y.Lo, got.Y.Lo, 1e-9)
	require.InDelta(t, want.Y.Hi, got.Y.Hi, 1e-9)
}

func TestChart_RestoreLosesToUserChange(t *testing.T) {
	store := viewstore.NewMemoryStore()
	stride := 4
	require.NoError(t, store.Save(context.Background(), "grid-1", viewstore.View{Stride: &stride}))

	c := NewGrid(gridOpts(store))
	restore := c.Mount()
	run(c, c.SetDataset(testGrid(2, 40)))
	run(c, c.SetStride(2))
	run(c, restore)

	require.Equal(t, 2, c.Store().Stride())
	run(c, c.Mount())
	require.Equal(t, 1, store.Count("load"), "restore runs once per chart")
}

func TestChart_RestoreAppliesOnce(t *testing.T) {
	store := viewstore.NewMemoryStore()
	stride := 7
	require.NoError(t, store.Save(context.Background(), "grid-1", viewstore.View{Stride: &stride}))

	c := NewGrid(gridOpts(store))
	run(c, c.Mount())
	run(c, c.SetDataset(testGrid(2, 40)))
	require.Equal(t, 7, c.Store().Stride())

	other := testGrid(2, 40)
	other.ID = "reloaded"
	run(c, c.SetDataset(other))
	require.Equal(t, DefaultStride(40), c.Store().Stride(), "a new dataset re-seeds once the restore is spent")
	require.Equal(t, 1, store.Count("load"))
}

func TestChart_ClearCancelsPendingAnnotation(t *testing.T) {
	store := viewstore.NewMemoryStore()
	c := NewGrid(gridOpts(store))
	run(c, c.SetDataset(testGrid(4, 12)))

	run(c, c.BeginSelection(centre(c.Geometry().CellRect(geom.Cell{Row: 0, Col: 0}))))
	pending := c.EndSelection()
	run(c, c.ClearSelection())
	run(c, pending)

	require.Zero(t, store.Count("save"))
	require.Equal(t, Idle, c.Phase())
}

func TestChart_ClearKeepsPendingWindow(t *testing.T) {
	store := viewstore.NewMemoryStore()
	c := NewCurve(curveOpts(store))
	run(c, c.SetDataset(testCurves()))

	g := c.Geometry()
	y := g.Inner().Min.Y + 10
	run(c, c.BeginSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 0.5), Y: y}))
	run(c, c.UpdateSelection(geom.Point{X: g.DataToPixel(geom.AxisX, 1.5), Y: y + 60}))
	run(c, c.EndSelection())
	zoom := c.ZoomIntoSelection()
	zoomed := c.Store().Range(geom.AxisX)

	run(c, c.ClearSelection())
	run(c, zoom)

	v, err := store.Load(context.Background(), "curve-1")
	require.NoError(t, err)
	require.NotNil(t, v.Window)
	require.Equal(t, zoomed, v.Window.X)
	require.Nil(t, v.Annotation)
}

func TestChart_ClearKeepsPendingStride(t *testing.T) {
	store := viewstore.NewMemoryStore()
	c := NewGrid(gridOpts(store))
	run(c, c.SetDataset(testGrid(4, 12)))

	pending := c.SetStride(3)
	run(c, c.ClearSelection())
	run(c, pending)

	v, err := store.Load(context.Background(), "grid-1")
	require.NoError(t, err)
	require.NotNil(t, v.Stride)
	require.Equal(t, 3, *v.Stride)
	require.Equal(t, 3, c.Store().Stride())
}

func TestChart_ResetDeletesStoredView(t *testing.T) {
	store := viewstore.NewMemoryStore()
	c := NewGrid(gridOpts(store))
	run(c, c.SetDataset(testGrid(4, 12)))
	run(c, c.SetStride(3))
	require.Equal(t, 1, store.Count("save"))

	run(c, c.ResetZoom())
	require.Equal(t, 1, store.Count("delete"))
	_, err := store.Load(context.Background(), "grid-1")
	require.ErrorIs(t, err, viewstore.ErrNotFound)
	require.Equal(t, 1, c.Store().Stride())
}

func TestChart_ResizeBurstDrawsOnce(t *testing.T) {
	c := NewGrid(gridOpts(nil))
	run(c, c.SetDataset(testGrid(4, 12)))
	draws := c.Renderer().Draws()

	var cmds []tea.Cmd
	for i := 0; i < 10; i++ {
		s := c.Surface()
		s.Size.Width = float64(100 + i)
		if cmd := c.Resize(s); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	require.Len(t, cmds, 1)
	run(c, cmds[0])

	require.Equal(t, draws+1, c.Renderer().Draws())
	w, _ := c.Renderer().Size()
	require.Equal(t, 218, w)
}

func TestChart_UnmountDropsDrag(t *testing.T) {
	c := NewCurve(curveOpts(nil))
	run(c, c.SetDataset(testCurves()))
	run(c, c.BeginSelection(c.Geometry().Inner().Min))
	require.Equal(t, Dragging, c.Phase())

	c.Unmount()
	require.Equal(t, Idle, c.Phase())
	require.False(t, c.Frames().Pending())
	require.Nil(t, c.UpdateSelection(geom.Point{X: 50, Y: 50}))
}
