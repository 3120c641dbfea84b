package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
)

// decoders picks the decoder by extension. The tga package registers with an
// empty magic string, so image.Decode cannot be trusted to sniff formats.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".ozj":  jpeg.Decode,
	".tga":  tga.Decode,
	".ozt":  tga.Decode,
}

// LoadTexture reads an image file and returns it as NRGBA.
// TGA, PNG and JPEG are decoded directly; the OZJ/OZT containers used by
// BMD models wrap JPEG and TGA data behind a short header.
func LoadTexture(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: unsupported format %s", path)
	}

	imgData := raw
	switch ext {
	case ".ozj":
		// OZJ: 24-byte header + JPEG data
		if len(raw) <= 24 {
			return nil, fmt.Errorf("texture: OZJ too short: %s", path)
		}
		imgData = raw[24:]
	case ".ozt":
		// OZT: 4-byte header + TGA data
		if len(raw) <= 4 {
			return nil, fmt.Errorf("texture: OZT too short: %s", path)
		}
		imgData = raw[4:]
	}

	img, err := decode(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha: draw and force it opaque
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[dst.PixOffset(x, y)+3] = 255
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
