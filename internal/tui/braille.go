package tui

import (
	"image"
	"math"
)

// dotBits maps a dot inside a cell (column, row) to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/dotsX, mx%dotsX
	cy, ry := my/dotsY, my%dotsY
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
}

// traceImage sets every dot whose device pixels reach alpha threshold in
// img. One dot covers dpr x dpr device pixels.
func (b *brailleBuf) traceImage(img image.Image, dpr float64, threshold uint32) {
	if !(dpr > 0) {
		dpr = 1
	}
	bounds := img.Bounds()
	for my := 0; my < b.h*dotsY; my++ {
		y0 := int(math.Floor(float64(my) * dpr))
		y1 := max(y0+1, int(math.Floor(float64(my+1)*dpr)))
		for mx := 0; mx < b.w*dotsX; mx++ {
			x0 := int(math.Floor(float64(mx) * dpr))
			x1 := max(x0+1, int(math.Floor(float64(mx+1)*dpr)))
		scan:
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					if !(image.Point{X: x, Y: y}).In(bounds) {
						continue
					}
					if _, _, _, a := img.At(x, y).RGBA(); a >= threshold {
						b.setPixel(mx, my)
						break scan
					}
				}
			}
		}
	}
}

// cell returns the braille rune of a cell, or 0 when it has no dots.
func (b *brailleBuf) cell(x, y int) rune {
	mask := b.m[y][x]
	if mask == 0 {
		return 0
	}
	return rune(0x2800 + int(mask))
}
