package raster

import (
	"image/color"
	"math"

	"ogre-meshxml/internal/mathutil"
)

// LightConfig describes the preview lighting rig: one key light, one rim
// light and a hemisphere fill, evaluated per face.
type LightConfig struct {
	Key      mathutil.Vec3
	Rim      mathutil.Vec3
	half     mathutil.Vec3
	Ambient  float64
	Fill     float64
	KeyGain  float64
	RimGain  float64
	Specular float64
	Shine    float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns the rig used for all previews.
func DefaultLightConfig() LightConfig {
	key := mathutil.Vec3{0.45, 0.65, 0.6}.Normalize()
	view := mathutil.Vec3{0, 0, 1}

	return LightConfig{
		Key:      key,
		Rim:      mathutil.Vec3{-0.5, 0.4, -0.75}.Normalize(),
		half:     key.Add(view).Normalize(),
		Ambient:  0.45,
		Fill:     0.40,
		KeyGain:  1.25,
		RimGain:  0.45,
		Specular: 0.30,
		Shine:    16,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the light intensity for a unit face normal. Faces are
// lit from both sides since exported meshes often have mixed winding.
func (lc *LightConfig) ComputeShade(n mathutil.Vec3) float64 {
	key := math.Abs(n.Dot(lc.Key))
	rim := math.Abs(n.Dot(lc.Rim))
	fill := (1-math.Abs(n[1]))*0.5 + 0.5

	spec := 0.0
	if h := math.Abs(n.Dot(lc.half)); h > 0 {
		spec = math.Pow(h, lc.Shine) * lc.Specular
	}
	return lc.Ambient + fill*lc.Fill + key*lc.KeyGain + rim*lc.RimGain + spec
}

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255, 2.2)
	}
}

// ACESTonemap maps a linear HDR value into [0,1] with the ACES filmic curve.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// Tone lights an sRGB color by shade and maps it back to sRGB through the
// ACES curve. Alpha passes through.
func (lc *LightConfig) Tone(c color.NRGBA, shade float64) color.NRGBA {
	k := shade * lc.Exposure
	ch := func(v uint8) uint8 {
		t := ACESTonemap(srgbToLinear[v] * k)
		return clamp255(math.Pow(t, lc.InvGamma) * 255)
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
