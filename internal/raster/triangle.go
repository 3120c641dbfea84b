package raster

import (
	"image"
	"image/color"
	"math"

	"ogre-meshxml/internal/mathutil"
)

// edgeTolerance lets pixel centres just outside a shared edge be drawn by
// both faces, so adjacent triangles leave no hairline gaps.
const edgeTolerance = -1e-3

// corner is a scene vertex after the view transform. view is in model units
// centred on the scene with +Z towards the camera; sx, sy are pixel
// coordinates.
type corner struct {
	view   mathutil.Vec3
	sx, sy float64
	uv     *[2]float32
}

// material is what the faces of one submesh are painted with.
type material struct {
	tex  *image.NRGBA
	base color.NRGBA
}

// edge is twice the signed area of (a, b, p).
func edge(a, b corner, px, py float64) float64 {
	return (b.sx-a.sx)*(py-a.sy) - (b.sy-a.sy)*(px-a.sx)
}

// drawTriangle fills one flat-lit triangle. Pixels are sampled at their
// centres; either winding is accepted.
func (fb *FrameBuffer) drawTriangle(t [3]corner, m material, lc *LightConfig) {
	a, b, c := t[0], t[1], t[2]

	area := edge(a, b, c.sx, c.sy)
	if math.Abs(area) < 1e-8 {
		return
	}
	normal := b.view.Sub(a.view).Cross(c.view.Sub(a.view))
	if normal.Len() < 1e-12 {
		return
	}
	shade := lc.ComputeShade(normal.Normalize())

	minX := max(int(math.Floor(min(a.sx, b.sx, c.sx))), 0)
	maxX := min(int(math.Ceil(max(a.sx, b.sx, c.sx))), fb.Width-1)
	minY := max(int(math.Floor(min(a.sy, b.sy, c.sy))), 0)
	maxY := min(int(math.Ceil(max(a.sy, b.sy, c.sy))), fb.Height-1)

	textured := m.tex != nil && a.uv != nil && b.uv != nil && c.uv != nil
	inv := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			wa := edge(b, c, px, py) * inv
			wb := edge(c, a, px, py) * inv
			wc := 1 - wa - wb
			if wa < edgeTolerance || wb < edgeTolerance || wc < edgeTolerance {
				continue
			}

			i := y*fb.Width + x
			z := wa*a.view[2] + wb*b.view[2] + wc*c.view[2]
			if z <= fb.ZBuf[i] {
				continue
			}

			col := m.base
			if textured {
				u := wa*float64(a.uv[0]) + wb*float64(b.uv[0]) + wc*float64(c.uv[0])
				v := wa*float64(a.uv[1]) + wb*float64(b.uv[1]) + wc*float64(c.uv[1])
				col.R, col.G, col.B, col.A = SampleTexture(m.tex, u, v)
			}
			// cut-out texels
			if col.A < 8 {
				continue
			}

			fb.ZBuf[i] = z
			fb.set(i, lc.Tone(col, shade))
		}
	}
}
