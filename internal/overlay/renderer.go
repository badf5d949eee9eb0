package overlay

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gg"

	"plotview/internal/geom"
)

// Frame is everything one overlay draw needs, already projected through the
// live geometry. Coordinates are CSS pixels.
type Frame struct {
	Selection *geom.Rect
	CrossX    *float64
	Inner     geom.Rect
}

// Renderer owns the overlay raster. The raster is sized in device pixels
// and drawing is issued in CSS pixels through a scale transform.
type Renderer struct {
	dc      *gg.Context
	surface geom.Surface
	draws   int
}

func NewRenderer(s geom.Surface) *Renderer {
	w, h := s.Physical()
	r := &Renderer{dc: gg.NewContext(w, h), surface: s}
	r.applyTransform()
	return r
}

// Resize matches the raster to a new surface size or density. The raster
// is cleared; callers must schedule a redraw.
func (r *Renderer) Resize(s geom.Surface) error {
	w, h := s.Physical()
	if err := r.dc.Resize(w, h); err != nil {
		return fmt.Errorf("resize overlay: %w", err)
	}
	r.surface = s
	r.applyTransform()
	r.dc.Clear()
	return nil
}

func (r *Renderer) applyTransform() {
	r.dc.Identity()
	dpr := r.surface.DPR
	if !(dpr > 0) {
		dpr = 1
	}
	r.dc.Scale(dpr, dpr)
}

// Size returns the raster size in device pixels.
func (r *Renderer) Size() (int, int) { return r.dc.Width(), r.dc.Height() }

// Surface returns the surface the raster was last sized for.
func (r *Renderer) Surface() geom.Surface { return r.surface }

// Draws counts completed draws.
func (r *Renderer) Draws() int { return r.draws }

// Draw clears the raster and paints f.
func (r *Renderer) Draw(f Frame) error {
	r.dc.Clear()
	r.draws++

	if f.Selection != nil {
		sel := f.Selection.Normalize()
		r.dc.SetRGBA(0.2, 0.55, 1, 0.18)
		r.dc.DrawRectangle(sel.Min.X, sel.Min.Y, sel.Width(), sel.Height())
		if err := r.dc.Fill(); err != nil {
			return fmt.Errorf("fill selection: %w", err)
		}
		r.dc.SetRGBA(0.2, 0.55, 1, 1)
		r.dc.SetLineWidth(1)
		r.dc.SetDash(4, 3)
		r.dc.DrawRectangle(sel.Min.X, sel.Min.Y, sel.Width(), sel.Height())
		if err := r.dc.Stroke(); err != nil {
			return fmt.Errorf("stroke selection: %w", err)
		}
		r.dc.SetDash()
	}

	if f.CrossX != nil {
		x := *f.CrossX
		r.dc.SetRGBA(0.85, 0.85, 0.85, 0.9)
		r.dc.SetLineWidth(1)
		r.dc.DrawLine(x, f.Inner.Min.Y, x, f.Inner.Max.Y)
		if err := r.dc.Stroke(); err != nil {
			return fmt.Errorf("stroke crosshair: %w", err)
		}
	}
	return nil
}

// Image returns the overlay raster.
func (r *Renderer) Image() image.Image { return r.dc.Image() }

// Snapshot composites the overlay over base. base is scaled to the raster
// size when the two differ; a nil base yields the overlay on a transparent
// background.
func (r *Renderer) Snapshot(base image.Image) image.Image {
	w, h := r.Size()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	dc := gg.NewContextForImage(out)
	if base != nil {
		dc.DrawImageEx(gg.ImageBufFromImage(base), gg.DrawImageOptions{
			DstWidth:  float64(w),
			DstHeight: float64(h),
			Opacity:   1,
			BlendMode: gg.BlendNormal,
		})
	}
	dc.DrawImage(gg.ImageBufFromImage(r.Image()), 0, 0)
	return dc.Image()
}

// Crop cuts rect, given in CSS pixels, out of a raster sized for s.
func Crop(img image.Image, s geom.Surface, rect geom.Rect) image.Image {
	p := s.ToPhysical(rect)
	want := image.Rect(int(p.Min.X), int(p.Min.Y), int(p.Max.X), int(p.Max.Y)).Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, want.Dx(), want.Dy()))
	draw.Draw(out, out.Bounds(), img, want.Min, draw.Src)
	return out
}
