package raster

import (
	"image"
	"image/color"
	"math"

	"ogre-meshxml/internal/mathutil"
	"ogre-meshxml/internal/scene"
	"ogre-meshxml/internal/texture"
)

// DefaultView is the three-quarter camera used for previews:
// Rx(-20°) @ Ry(35°).
var DefaultView = mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(-20)), mathutil.RotY(mathutil.Deg2Rad(35)))

// RenderScene renders every triangle of s to a square NRGBA image of
// size*supersample pixels. Non-triangle faces are skipped.
func RenderScene(s *scene.Scene, texResolver texture.Resolver, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample
	R := DefaultView

	// Bounding box of all rotated vertices
	box := mathutil.EmptyBounds()
	for i := range s.SubMeshes {
		for _, v := range s.SubMeshes[i].Vertices {
			box.Extend(R.MulVec3(mathutil.FromFloat32(v.Position)))
		}
	}
	if box.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	center := box.Center()
	extent := box.Size()
	span := math.Max(extent[0], extent[1])
	if span < 0.001 {
		span = 0.001
	}

	margin := renderSize / 16
	scale := float64(renderSize-2*margin) / span

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()
	half := float64(renderSize) / 2

	for i := range s.SubMeshes {
		sub := &s.SubMeshes[i]
		if len(sub.Vertices) == 0 {
			continue
		}

		corners := make([]corner, len(sub.Vertices))
		for j, v := range sub.Vertices {
			p := R.MulVec3(mathutil.FromFloat32(v.Position)).Sub(center)
			corners[j] = corner{
				view: p,
				sx:   half + p[0]*scale,
				sy:   half - p[1]*scale,
				uv:   v.TexCoord,
			}
		}
		m := materialFor(sub, texResolver)

		for _, f := range sub.Faces {
			if len(f.Indices) != 3 {
				continue
			}
			var tri [3]corner
			ok := true
			for k, idx := range f.Indices {
				if int(idx) >= len(corners) {
					ok = false
					break
				}
				tri[k] = corners[idx]
			}
			if ok {
				fb.drawTriangle(tri, m, &lc)
			}
		}
	}

	return fb.Image()
}

// materialFor resolves the submesh texture. Untextured submeshes are painted
// a neutral grey, textured ones fall back to the texture's average color on
// faces without coordinates.
func materialFor(sub *scene.SubMesh, texResolver texture.Resolver) material {
	m := material{base: color.NRGBA{R: 160, G: 160, B: 170, A: 255}}
	if texResolver == nil {
		return m
	}
	if m.tex = texResolver.Resolve(sub.Texture); m.tex != nil {
		m.base = averageColor(m.tex)
	}
	return m
}

func averageColor(tex *image.NRGBA) color.NRGBA {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return color.NRGBA{R: 160, G: 160, B: 170, A: 255}
	}

	var sumR, sumG, sumB float64
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return color.NRGBA{R: uint8(sumR/n + 0.5), G: uint8(sumG/n + 0.5), B: uint8(sumB/n + 0.5), A: 255}
}
