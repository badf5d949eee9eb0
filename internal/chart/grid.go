package chart

import (
	"image"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"plotview/internal/dataset"
	"plotview/internal/geom"
	"plotview/internal/overlay"
	"plotview/internal/viewstore"
)

// GridChart is the interaction engine of a row/column grid chart. The
// selection lives in cell-index space.
type GridChart struct {
	core[geom.Cell]
	store *GridStore
	hover *GridHover
}

func NewGrid(opts Options) *GridChart {
	return &GridChart{core: newCore[geom.Cell](opts), store: NewGridStore()}
}

func (c *GridChart) Store() *GridStore { return c.store }

// Geometry resolves the descriptor for the current surface, window and
// stride. It is recomputed on every call.
func (c *GridChart) Geometry() geom.GridGeometry {
	return geom.ResolveGrid(c.surface, c.store.Range(geom.AxisY), c.store.Columns())
}

func (c *GridChart) Mount() tea.Cmd { return c.mount() }

func (c *GridChart) Unmount() {
	c.unmount()
	c.hover = nil
}

func (c *GridChart) Resize(s geom.Surface) tea.Cmd { return c.resize(s) }

// SetDataset hands the chart new data. A new dataset identity re-seeds the
// window and stride unless a restored view is waiting, which then wins once.
func (c *GridChart) SetDataset(d dataset.Grid) tea.Cmd {
	if c.loaded && d.ID == c.datasetID {
		c.store.grid = d
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

// ApplyView installs a persisted view. The window is applied before the
// stride so the stride is clamped against the restored column span.
func (c *GridChart) ApplyView(v viewstore.View) {
	if v.Window != nil {
		c.store.SetRange(geom.AxisX, geom.SpanOf(v.Window.X))
		c.store.SetRange(geom.AxisY, geom.SpanOf(v.Window.Y))
	}
	if v.Stride != nil {
		c.store.SetStride(*v.Stride)
	}
	if v.Annotation != nil {
		cols, rows := geom.SpanOf(v.Annotation.X), geom.SpanOf(v.Annotation.Y)
		c.sel.Commit(geom.Cell{Row: rows.Lo, Col: cols.Lo}, geom.Cell{Row: rows.Hi, Col: cols.Hi})
	}
	Logger().Debug("view applied", "chart", c.id,
		"cols", c.store.Range(geom.AxisX), "rows", c.store.Range(geom.AxisY), "stride", c.store.Stride())
}

// cellAt maps p to a cell, clamping positions past the plotted area to the
// nearest edge cell. Used while dragging only.
func (c *GridChart) cellAt(g geom.GridGeometry, p geom.Point) (geom.Cell, bool) {
	in := g.Inner()
	p.X = math.Min(math.Max(p.X, in.Min.X), in.Max.X)
	p.Y = math.Min(math.Max(p.Y, in.Min.Y), in.Max.Y)
	return g.CellAt(p)
}

// BeginSelection anchors a marquee on the cell under p.
func (c *GridChart) BeginSelection(p geom.Point) tea.Cmd {
	cell, ok := c.Geometry().CellAt(p)
	if !ok {
		return nil
	}
	c.touched = true
	c.sel.Begin(cell)
	return c.frames.Request()
}

func (c *GridChart) UpdateSelection(p geom.Point) tea.Cmd {
	if c.sel.Phase() != Dragging {
		return nil
	}
	cell, ok := c.cellAt(c.Geometry(), p)
	if !ok {
		return nil
	}
	c.sel.Update(cell)
	return c.frames.Request()
}

func (c *GridChart) EndSelection() tea.Cmd {
	if !c.sel.End() {
		return nil
	}
	return tea.Batch(c.frames.Request(), c.bridge.Persist(viewstore.View{Annotation: c.annotation()}))
}

func (c *GridChart) ClearSelection() tea.Cmd {
	c.teardown()
	return c.frames.Request()
}

// Selected returns the normalized selection in cell-index space.
func (c *GridChart) Selected() (geom.CellRect, bool) {
	a, b, ok := c.sel.Corners()
	if !ok {
		return geom.CellRect{}, false
	}
	return geom.CellRectOf(a, b).Normalize(), true
}

// ZoomIntoSelection makes the selected cells the visible window. The last
// selected column extends to the end of its sampling group so a selection
// of every drawn cell keeps the window unchanged.
func (c *GridChart) ZoomIntoSelection() tea.Cmd {
	r, ok := c.Selected()
	if !ok {
		return nil
	}
	a := c.annotation()
	c.touched = true
	c.teardown()

	cols := geom.Span{Lo: r.MinCol, Hi: c.store.groupEnd(r.MaxCol)}
	c.store.SetRange(geom.AxisX, cols)
	c.store.SetRange(geom.AxisY, r.Rows())
	Logger().Debug("zoom", "chart", c.id,
		"cols", c.store.Range(geom.AxisX), "rows", c.store.Range(geom.AxisY), "stride", c.store.Stride())

	w := &viewstore.Window{X: c.store.Range(geom.AxisX).Range(), Y: c.store.Range(geom.AxisY).Range()}
	s := c.store.Stride()
	return tea.Batch(c.frames.Request(), c.bridge.Persist(viewstore.View{Window: w, Stride: &s, Annotation: a}))
}

// ResetZoom shows the full grid at the default stride and deletes the
// stored view.
func (c *GridChart) ResetZoom() tea.Cmd {
	c.touched = true
	c.teardown()
	c.store.ResetToBounds()
	Logger().Debug("reset", "chart", c.id)
	return tea.Batch(c.frames.Request(), c.bridge.ClearExternal())
}

// SetStride applies a user stride and persists it.
func (c *GridChart) SetStride(n int) tea.Cmd {
	return c.strideChanged(c.store.SetStride(n))
}

// SetStrideText applies a stride typed by the user.
func (c *GridChart) SetStrideText(text string) tea.Cmd {
	return c.strideChanged(c.store.SetStrideText(text))
}

func (c *GridChart) strideChanged(n int) tea.Cmd {
	c.touched = true
	Logger().Debug("stride", "chart", c.id, "stride", n)
	return tea.Batch(c.frames.Request(), c.bridge.Persist(viewstore.View{Stride: &n}))
}

func (c *GridChart) annotation() *viewstore.Annotation {
	r, ok := c.Selected()
	if !ok {
		return nil
	}
	return &viewstore.Annotation{X: r.Cols().Range(), Y: r.Rows().Range()}
}

func (c *GridChart) Annotation() *viewstore.Annotation { return c.annotation() }

// SelectionRect projects the selection through the live geometry.
func (c *GridChart) SelectionRect() (geom.Rect, bool) {
	r, ok := c.Selected()
	if !ok {
		return geom.Rect{}, false
	}
	return c.Geometry().Project(r), true
}

func (c *GridChart) Hover(p geom.Point) (*GridHover, tea.Cmd) {
	h := ResolveGridHover(c.Geometry(), c.store.Grid(), p)
	if h == nil && c.hover == nil {
		return nil, nil
	}
	c.hover = h
	return h, c.frames.Request()
}

func (c *GridChart) Leave() tea.Cmd {
	if c.hover == nil {
		return nil
	}
	c.hover = nil
	return c.frames.Request()
}

func (c *GridChart) Hovered() *GridHover { return c.hover }

// Update routes frame, persistence and restore messages.
func (c *GridChart) Update(msg tea.Msg) tea.Cmd {
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

func (c *GridChart) frame() overlay.Frame {
	g := c.Geometry()
	f := overlay.Frame{Inner: g.Inner()}
	if r, ok := c.SelectionRect(); ok {
		f.Selection = &r
	}
	if c.hover != nil {
		r := g.CellRect(c.hover.Cell)
		x := (r.Min.X + r.Max.X) / 2
		f.CrossX = &x
	}
	return f
}

func (c *GridChart) redraw() { c.draw(c.frame()) }

func (c *GridChart) CaptureRect() geom.Rect { return c.Geometry().Inner() }

func (c *GridChart) Snapshot(base image.Image) image.Image {
	return c.snapshot(base, c.redraw)
}
