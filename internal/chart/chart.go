// Package chart is the interaction engine shared by grid and curve charts:
// visible window and stride, marquee selection and zoom, hover, the overlay
// layer and view persistence.
package chart

import (
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"plotview/internal/geom"
	"plotview/internal/overlay"
	"plotview/internal/viewstore"
)

// Options configure a chart instance.
type Options struct {
	// ID is the chart identity views are stored under. A random id is used
	// when empty, which makes persistence session-local.
	ID            string
	Surface       geom.Surface
	FrameInterval time.Duration
	Store         viewstore.Store
	Debounce      time.Duration
	IOTimeout     time.Duration
}

// core is the state both chart families share. P is the selection corner
// type.
type core[P any] struct {
	id       string
	surface  geom.Surface
	renderer *overlay.Renderer
	frames   *overlay.Scheduler
	bridge   *viewstore.Bridge
	sel      Selection[P]

	datasetID string
	loaded    bool
	mounted   bool

	// touched is set by any user change to the view; a restore arriving
	// afterwards is dropped.
	touched  bool
	restored bool
	stash    *viewstore.View

	lastErr error
}

func newCore[P any](opts Options) core[P] {
	id := opts.ID
	if id == "" {
		id = "chart:" + uuid.NewString()
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return core[P]{
		id:       id,
		surface:  opts.Surface,
		renderer: overlay.NewRenderer(opts.Surface),
		frames:   overlay.NewScheduler(id, interval),
		bridge: viewstore.NewBridge(opts.Store, id, viewstore.BridgeOptions{
			Debounce: opts.Debounce,
			Timeout:  opts.IOTimeout,
			Logger:   Logger(),
		}),
	}
}

func (c *core[P]) ID() string { return c.id }

func (c *core[P]) Surface() geom.Surface { return c.surface }

// Phase reports the selection lifecycle.
func (c *core[P]) Phase() Phase { return c.sel.Phase() }

// Renderer exposes the overlay raster.
func (c *core[P]) Renderer() *overlay.Renderer { return c.renderer }

// Frames exposes the redraw scheduler.
func (c *core[P]) Frames() *overlay.Scheduler { return c.frames }

// Err returns the last overlay error, if any.
func (c *core[P]) Err() error { return c.lastErr }

// teardown is the single path for everything that invalidates a pending
// annotation write: clear, reset, zoom and unmount. Window and stride writes
// survive it; reset and unmount drop those too.
func (c *core[P]) teardown() {
	c.bridge.CancelAnnotation()
	c.sel.Clear()
}

// resize adopts a new surface size or density.
func (c *core[P]) resize(s geom.Surface) tea.Cmd {
	c.surface = s
	if err := c.renderer.Resize(s); err != nil {
		c.lastErr = err
		Logger().Warn("resize overlay", "chart", c.id, "err", err)
	}
	return c.frames.Request()
}

func (c *core[P]) mount() tea.Cmd {
	c.mounted = true
	return tea.Batch(c.bridge.Restore(), c.frames.Request())
}

func (c *core[P]) unmount() {
	c.teardown()
	c.bridge.Cancel()
	c.frames.Cancel()
	c.mounted = false
}

// takeRestore decides what to do with a restored view: it returns the view
// to apply now, or nil when it was dropped or stashed until data arrives.
func (c *core[P]) takeRestore(msg viewstore.RestoredMsg) *viewstore.View {
	if msg.ID != c.id || c.restored {
		return nil
	}
	c.restored = true
	if msg.Err != nil {
		c.lastErr = msg.Err
		return nil
	}
	if !msg.Found {
		return nil
	}
	if c.touched {
		Logger().Debug("restore dropped after user change", "chart", c.id)
		return nil
	}
	if !c.loaded {
		v := msg.View
		c.stash = &v
		return nil
	}
	v := msg.View
	return &v
}

// takeStash returns the stashed view once.
func (c *core[P]) takeStash() *viewstore.View {
	v := c.stash
	c.stash = nil
	if c.touched {
		return nil
	}
	return v
}

// route handles the messages every chart consumes. handled reports whether
// msg belonged to this chart.
func (c *core[P]) route(msg tea.Msg, draw func()) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case overlay.FrameMsg:
		if msg.Owner != c.id {
			return nil, false
		}
		if c.frames.Accept(msg) {
			draw()
		}
		return nil, true
	case viewstore.FlushMsg:
		if msg.ID != c.id {
			return nil, false
		}
		return c.bridge.Flush(msg), true
	}
	return nil, false
}

// snapshot composites the plot raster with the overlay.
func (c *core[P]) snapshot(base image.Image, draw func()) image.Image {
	draw()
	return c.renderer.Snapshot(base)
}

func (c *core[P]) draw(f overlay.Frame) {
	if err := c.renderer.Draw(f); err != nil {
		c.lastErr = err
		Logger().Warn("draw overlay", "chart", c.id, "err", err)
	}
}
