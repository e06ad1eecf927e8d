package render

import (
	"fmt"
	"strings"
)

// PixelFormat describes how a colour is laid out in a frame buffer. R, G
// and B are byte offsets within one pixel; A is -1 for formats without an
// alpha channel.
type PixelFormat struct {
	Name          string
	BytesPerPixel int
	R, G, B, A    int
}

var (
	// FormatRGB24 is packed 3-byte RGB.
	FormatRGB24 = PixelFormat{Name: "rgb24", BytesPerPixel: 3, R: 0, G: 1, B: 2, A: -1}
	// FormatRGBA32 matches image.RGBA and ebiten.Image.WritePixels.
	FormatRGBA32 = PixelFormat{Name: "rgba32", BytesPerPixel: 4, R: 0, G: 1, B: 2, A: 3}
	// FormatARGB32 stores alpha first, in big-endian byte order.
	FormatARGB32 = PixelFormat{Name: "argb32", BytesPerPixel: 4, R: 1, G: 2, B: 3, A: 0}
	// FormatBGRA32 is a 0xAARRGGBB word stored little-endian (SDL ARGB8888).
	FormatBGRA32 = PixelFormat{Name: "bgra32", BytesPerPixel: 4, R: 2, G: 1, B: 0, A: 3}
)

var formats = []PixelFormat{FormatRGB24, FormatRGBA32, FormatARGB32, FormatBGRA32}

// ParsePixelFormat looks up a format by name.
func ParsePixelFormat(name string) (PixelFormat, error) {
	for _, f := range formats {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return PixelFormat{}, fmt.Errorf("unknown pixel format %q", name)
}

func (p PixelFormat) valid() bool {
	n := p.BytesPerPixel
	in := func(o int) bool { return o >= 0 && o < n }
	return n > 0 && in(p.R) && in(p.G) && in(p.B) && (p.A == -1 || in(p.A))
}
