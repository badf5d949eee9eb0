package chart

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"plotview/internal/dataset"
	"plotview/internal/geom"
	"plotview/internal/overlay"
	"plotview/internal/viewstore"
)

// CurveChart is the interaction engine of an overlaid value-vs-position
// chart. Selection corners are held in data units and projected through the
// live geometry whenever they are drawn or read as pixels.
type CurveChart struct {
	core[geom.Point]
	store *CurveStore
	hover *CurveHover
}

func NewCurve(opts Options) *CurveChart {
	return &CurveChart{core: newCore[geom.Point](opts), store: NewCurveStore()}
}

// Store exposes the range store.
func (c *CurveChart) Store() *CurveStore { return c.store }

// Geometry resolves the descriptor for the current surface and window. It
// is recomputed on every call.
func (c *CurveChart) Geometry() geom.CurveGeometry {
	return geom.ResolveCurve(c.surface, c.store.Range(geom.AxisX), c.store.Range(geom.AxisY))
}

// Mount starts the one-shot restore and schedules the first frame.
func (c *CurveChart) Mount() tea.Cmd { return c.mount() }

// Unmount drops any drag, selection, pending write and pending frame.
func (c *CurveChart) Unmount() {
	c.unmount()
	c.hover = nil
}

func (c *CurveChart) Resize(s geom.Surface) tea.Cmd { return c.resize(s) }

// SetDataset hands the chart new data. A new dataset identity re-seeds the
// window unless a restored view is waiting, which then wins once.
func (c *CurveChart) SetDataset(d dataset.Curves) tea.Cmd {
	if c.loaded && d.ID == c.datasetID {
		c.store.replace(d)
		return c.frames.Request()
	}
	c.datasetID = d.ID
	c.loaded = true
	c.sel.Clear()
	c.hover = nil
	c.store.SetDataset(d)
	if v := c.takeStash(); v != nil {
		c.ApplyView(*v)
	}
	return c.frames.Request()
}

// ApplyView installs a persisted view. Fields that do not fit the current
// bounds are ignored.
func (c *CurveChart) ApplyView(v viewstore.View) {
	if v.Window != nil {
		c.store.SetRange(geom.AxisX, v.Window.X)
		c.store.SetRange(geom.AxisY, v.Window.Y)
	}
	if v.Annotation != nil {
		a := v.Annotation
		c.sel.Commit(geom.Point{X: a.X.Lo, Y: a.Y.Lo}, geom.Point{X: a.X.Hi, Y: a.Y.Hi})
	}
	Logger().Debug("view applied", "chart", c.id, "x", c.store.Range(geom.AxisX), "y", c.store.Range(geom.AxisY))
}

// BeginSelection anchors a marquee at a pixel position inside the plotted
// area. The anchor is not snapped.
func (c *CurveChart) BeginSelection(p geom.Point) tea.Cmd {
	g := c.Geometry()
	if !g.Contains(p) {
		return nil
	}
	c.touched = true
	c.sel.Begin(g.ToData(p))
	return c.frames.Request()
}

// UpdateSelection moves the free corner. Its x snaps to the nearest visible
// data x, ties going toward the anchor; y is kept as pointed.
func (c *CurveChart) UpdateSelection(p geom.Point) tea.Cmd {
	if c.sel.Phase() != Dragging {
		return nil
	}
	origin, _, _ := c.sel.Corners()
	d := c.Geometry().ToData(p)
	d.X = c.store.SnapX(d.X, origin.X)
	c.sel.Update(d)
	return c.frames.Request()
}

// EndSelection commits the marquee and persists it as the annotation.
func (c *CurveChart) EndSelection() tea.Cmd {
	if !c.sel.End() {
		return nil
	}
	a := c.annotation()
	return tea.Batch(c.frames.Request(), c.bridge.Persist(viewstore.View{Annotation: a}))
}

// ClearSelection drops the selection and any pending annotation write.
func (c *CurveChart) ClearSelection() tea.Cmd {
	c.teardown()
	return c.frames.Request()
}

// ZoomIntoSelection makes the selection the visible window. An axis on
// which the selection has no extent keeps its current range.
func (c *CurveChart) ZoomIntoSelection() tea.Cmd {
	a := c.annotation()
	if a == nil {
		return nil
	}
	c.touched = true
	c.teardown()

	for _, axis := range []geom.Axis{geom.AxisX, geom.AxisY} {
		r := a.X
		if axis == geom.AxisY {
			r = a.Y
		}
		if !(r.Span() > 0) {
			continue
		}
		c.store.SetRange(axis, r)
	}
	Logger().Debug("zoom", "chart", c.id, "x", c.store.Range(geom.AxisX), "y", c.store.Range(geom.AxisY))

	w := &viewstore.Window{X: c.store.Range(geom.AxisX), Y: c.store.Range(geom.AxisY)}
	return tea.Batch(c.frames.Request(), c.bridge.Persist(viewstore.View{Window: w, Annotation: a}))
}

// ResetZoom shows the full bounds and deletes the stored view.
func (c *CurveChart) ResetZoom() tea.Cmd {
	c.touched = true
	c.teardown()
	c.store.ResetToBounds()
	Logger().Debug("reset", "chart", c.id)
	return tea.Batch(c.frames.Request(), c.bridge.ClearExternal())
}

// annotation returns the normalized selection in data units, or nil.
func (c *CurveChart) annotation() *viewstore.Annotation {
	a, b, ok := c.sel.Corners()
	if !ok {
		return nil
	}
	return &viewstore.Annotation{
		X: geom.Range{Lo: a.X, Hi: b.X}.Normalize(),
		Y: geom.Range{Lo: a.Y, Hi: b.Y}.Normalize(),
	}
}

// Annotation returns the current selection in data units.
func (c *CurveChart) Annotation() *viewstore.Annotation { return c.annotation() }

// SelectionRect projects the selection through the live geometry.
func (c *CurveChart) SelectionRect() (geom.Rect, bool) {
	a, b, ok := c.sel.Corners()
	if !ok {
		return geom.Rect{}, false
	}
	g := c.Geometry()
	return geom.Rect{Min: g.ToPixel(a), Max: g.ToPixel(b)}, true
}

// Hover resolves the pointer and keeps the result for the cross-hair.
func (c *CurveChart) Hover(p geom.Point) (*CurveHover, tea.Cmd) {
	h := ResolveCurveHover(c.Geometry(), c.store.Filtered(), p)
	if h == nil && c.hover == nil {
		return nil, nil
	}
	c.hover = h
	return h, c.frames.Request()
}

// Leave clears the hover state.
func (c *CurveChart) Leave() tea.Cmd {
	if c.hover == nil {
		return nil
	}
	c.hover = nil
	return c.frames.Request()
}

func (c *CurveChart) Hovered() *CurveHover { return c.hover }

// Update routes frame, persistence and restore messages.
func (c *CurveChart) Update(msg tea.Msg) tea.Cmd {
	if cmd, ok := c.route(msg, c.redraw); ok {
		return cmd
	}
	if msg, ok := msg.(viewstore.RestoredMsg); ok {
		if v := c.takeRestore(msg); v != nil {
			c.ApplyView(*v)
			return c.frames.Request()
		}
	}
	return nil
}

func (c *CurveChart) frame() overlay.Frame {
	g := c.Geometry()
	f := overlay.Frame{Inner: g.Inner()}
	if r, ok := c.SelectionRect(); ok {
		f.Selection = &r
	}
	if c.hover != nil {
		x := g.DataToPixel(geom.AxisX, c.hover.X)
		f.CrossX = &x
	}
	return f
}

func (c *CurveChart) redraw() { c.draw(c.frame()) }

// CaptureRect is the region handed to thumbnail capture.
func (c *CurveChart) CaptureRect() geom.Rect { return c.Geometry().Inner() }

// Snapshot redraws the overlay with the live state and composites it over
// the plot raster.
func (c *CurveChart) Snapshot(base image.Image) image.Image {
	return c.snapshot(base, c.redraw)
}
