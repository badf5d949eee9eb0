package tui

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"plotview/internal/geom"
	"plotview/internal/overlay"
)

// plotRaster paints the plotted ink of the active chart at device
// resolution so it can be composited with the overlay.
func (m Model) plotRaster(s geom.Surface) (image.Image, error) {
	w, h := s.Physical()
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex("#0B0F14"))
	dpr := s.DPR
	if !(dpr > 0) {
		dpr = 1
	}
	dc.Scale(dpr, dpr)

	switch {
	case m.curve != nil:
		g := m.curve.Geometry()
		for i, sr := range m.curve.Store().Filtered().Series {
			if len(sr.Points) == 0 {
				continue
			}
			dc.SetHexColor(seriesHex[i%len(seriesHex)])
			dc.SetLineWidth(1.5)
			for j, p := range sr.Points {
				px := g.ToPixel(geom.Point{X: p.X, Y: p.Y})
				if j == 0 {
					dc.MoveTo(px.X, px.Y)
					continue
				}
				dc.LineTo(px.X, px.Y)
			}
			if err := dc.Stroke(); err != nil {
				return nil, fmt.Errorf("stroke series %s: %w", sr.ID, err)
			}
		}
	case m.grid != nil:
		g := m.grid.Geometry()
		grid := m.grid.Store().Grid()
		vr := grid.ValueRange()
		for row := g.Rows.Lo; row <= g.Rows.Hi; row++ {
			for _, col := range g.Columns {
				c, ok := grid.At(row, col)
				if !ok || c.Y == nil {
					continue
				}
				t := 0.5
				if vr.Span() > 0 {
					t = (*c.Y - vr.Lo) / vr.Span()
				}
				r := g.CellRect(geom.Cell{Row: row, Col: col})
				dc.SetHexColor(heatHex[heatLevel(t)])
				dc.DrawRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
				if err := dc.Fill(); err != nil {
					return nil, fmt.Errorf("fill cell: %w", err)
				}
			}
		}
	}
	return dc.Image(), nil
}

// exportThumbnail writes the composited plot and overlay, cropped to the
// chart's capture rectangle, as a PNG in the working directory.
func (m Model) exportThumbnail() (string, error) {
	if !m.hasChart() {
		return "", fmt.Errorf("nothing to export")
	}
	s := m.surface()
	base, err := m.plotRaster(s)
	if err != nil {
		return "", err
	}
	var snap image.Image
	var capture geom.Rect
	if m.curve != nil {
		snap, capture = m.curve.Snapshot(base), m.curve.CaptureRect()
	} else {
		snap, capture = m.grid.Snapshot(base), m.grid.CaptureRect()
	}
	thumb := overlay.Crop(snap, s, capture)

	path := filepath.Join(m.cwd, "plotview-"+time.Now().Format("20060102-150405")+".png")
	dc := gg.NewContextForImage(thumb)
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return path, nil
}

var seriesHex = []string{"#5FD7D7", "#FF87FF", "#FFD75F", "#87D7FF", "#AFFF87", "#FF875F", "#AFAFFF", "#FF5F5F"}

var heatHex = []string{
	"#00005F", "#000087", "#0000AF", "#005FAF", "#0087AF", "#00AFAF",
	"#00D7AF", "#5FD7AF", "#87D7AF", "#AFD7AF", "#D7D7AF", "#FFFFAF",
}
