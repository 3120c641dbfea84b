package raster

import "image"

// SampleTexture returns the bilinearly filtered texel at (u, v). Coordinates
// wrap, and v grows downwards as in OGRE texture space.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w, h := tex.Rect.Dx(), tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	fx := wrap(u) * float64(w-1)
	fy := wrap(v) * float64(h-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := (x0+1)%w, (y0+1)%h
	dx, dy := fx-float64(x0), fy-float64(y0)

	row0 := y0 * tex.Stride
	row1 := y1 * tex.Stride
	taps := [4]int{row0 + x0*4, row0 + x1*4, row1 + x0*4, row1 + x1*4}
	weights := [4]float64{(1 - dx) * (1 - dy), dx * (1 - dy), (1 - dx) * dy, dx * dy}

	var acc [4]float64
	for t, off := range taps {
		for c := 0; c < 4; c++ {
			acc[c] += float64(tex.Pix[off+c]) * weights[t]
		}
	}
	return uint8(acc[0] + 0.5), uint8(acc[1] + 0.5), uint8(acc[2] + 0.5), uint8(acc[3] + 0.5)
}

func wrap(x float64) float64 {
	x -= float64(int(x))
	if x < 0 {
		x++
	}
	return x
}
