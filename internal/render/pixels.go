package render

import (
	"image/color"
	"math"
)

// surface selects the tint applied to a texel.
type surface uint8

const (
	surfaceWall surface = iota
	surfaceUpper
	surfaceLower
	surfaceFloor
	surfaceCeiling
)

var tints = [...]color.RGBA{
	surfaceWall:    {R: 0xE0, G: 0xC8, B: 0xA0, A: 0xFF},
	surfaceUpper:   {R: 0xA0, G: 0xA0, B: 0xE0, A: 0xFF},
	surfaceLower:   {R: 0xE0, G: 0x90, B: 0x70, A: 0xFF},
	surfaceFloor:   {R: 0x70, G: 0xA0, B: 0x60, A: 0xFF},
	surfaceCeiling: {R: 0xD0, G: 0xD0, B: 0xD0, A: 0xFF},
}

var (
	skyTop     = color.RGBA{R: 0x18, G: 0x20, B: 0x48, A: 0xFF}
	skyHorizon = color.RGBA{R: 0x70, G: 0x90, B: 0xC8, A: 0xFF}
	groundFill = color.RGBA{R: 0x2A, G: 0x30, B: 0x22, A: 0xFF}
)

// brightness is the inverse-distance falloff clamped to [0,1].
func brightness(k, dist float64) float64 {
	if dist <= 0 {
		return 1
	}
	b := k / dist
	if b > 1 {
		return 1
	}
	if b < 0 || math.IsNaN(b) {
		return 0
	}
	return b
}

// quantize maps a world coordinate onto an 8-bit texel coordinate.
func quantize(v, scale float64) uint8 {
	return uint8(int64(math.Floor(v * scale)))
}

// xorTexel is the placeholder texture: the XOR of two quantized coordinates.
func xorTexel(u, v, scale float64) uint8 {
	return quantize(u, scale) ^ quantize(v, scale)
}

// shadeTexel tints a texel and darkens it by b.
func shadeTexel(s surface, texel uint8, b float64) color.RGBA {
	tint := tints[s]
	f := (0.5 + 0.5*float64(texel)/255) * b
	return color.RGBA{
		R: uint8(float64(tint.R) * f),
		G: uint8(float64(tint.G) * f),
		B: uint8(float64(tint.B) * f),
		A: 0xFF,
	}
}

// fillBackground paints rows [y0, y1) of column x with the sky gradient
// above the horizon and the plain ground colour below it.
func fillBackground(f *Frame, x, y0, y1 int, horizon float64) {
	bpp := f.Format.BytesPerPixel
	stride := f.W * bpp
	i := (y0*f.W + x) * bpp
	for y := y0; y < y1; y++ {
		if float64(y) < horizon {
			f.put(i, skyColor(float64(y), horizon))
		} else {
			f.put(i, groundFill)
		}
		i += stride
	}
}

func skyColor(y, horizon float64) color.RGBA {
	t := 1.0
	if horizon > 0 {
		t = y / horizon
	}
	if t < 0 {
		t = 0
	}
	lerp := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t) }
	return color.RGBA{
		R: lerp(skyTop.R, skyHorizon.R),
		G: lerp(skyTop.G, skyHorizon.G),
		B: lerp(skyTop.B, skyHorizon.B),
		A: 0xFF,
	}
}
