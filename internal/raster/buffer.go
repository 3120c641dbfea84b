package raster

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer is a square render target with a depth buffer. Larger Z is
// closer to the viewer.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA, row-major
	ZBuf   []float64 // one depth per pixel
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		ZBuf:   make([]float64, w*h),
	}
	for i := range fb.ZBuf {
		fb.ZBuf[i] = math.Inf(-1)
	}
	return fb
}

func (fb *FrameBuffer) set(i int, c color.NRGBA) {
	p := fb.Color[i*4 : i*4+4 : i*4+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
