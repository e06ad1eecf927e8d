package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/cespare/xxhash/v2"
)

// ErrFrameSize is returned when a pixel buffer does not match its
// declared dimensions.
var ErrFrameSize = errors.New("frame buffer size mismatch")

// Frame is a row-major pixel buffer the renderer paints into.
type Frame struct {
	Pix    []byte
	W, H   int
	Format PixelFormat
}

// NewFrame allocates a w*h frame in the given format.
func NewFrame(w, h int, format PixelFormat) (*Frame, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", w, h, ErrFrameSize)
	}
	if !format.valid() {
		return nil, fmt.Errorf("invalid pixel format %q", format.Name)
	}
	return &Frame{Pix: make([]byte, w*h*format.BytesPerPixel), W: w, H: h, Format: format}, nil
}

// WrapFrame adopts a caller-owned buffer, e.g. a locked streaming texture.
func WrapFrame(pix []byte, w, h int, format PixelFormat) (*Frame, error) {
	if !format.valid() {
		return nil, fmt.Errorf("invalid pixel format %q", format.Name)
	}
	if w <= 0 || h <= 0 || len(pix) != w*h*format.BytesPerPixel {
		return nil, fmt.Errorf("%dx%d %s needs %d bytes, got %d: %w",
			w, h, format.Name, w*h*format.BytesPerPixel, len(pix), ErrFrameSize)
	}
	return &Frame{Pix: pix, W: w, H: h, Format: format}, nil
}

// Set writes one pixel; out-of-bounds writes are ignored.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	f.put((y*f.W+x)*f.Format.BytesPerPixel, c)
}

// At reads one pixel back.
func (f *Frame) At(x, y int) color.RGBA {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return color.RGBA{}
	}
	i := (y*f.W + x) * f.Format.BytesPerPixel
	c := color.RGBA{R: f.Pix[i+f.Format.R], G: f.Pix[i+f.Format.G], B: f.Pix[i+f.Format.B], A: 0xFF}
	if f.Format.A >= 0 {
		c.A = f.Pix[i+f.Format.A]
	}
	return c
}

// Clear fills the whole frame with c.
func (f *Frame) Clear(c color.RGBA) {
	bpp := f.Format.BytesPerPixel
	for i := 0; i < len(f.Pix); i += bpp {
		f.put(i, c)
	}
}

// Image copies the frame into an *image.RGBA for encoding.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			img.SetRGBA(x, y, f.At(x, y))
		}
	}
	return img
}

// Digest returns a 64-bit hash of the pixel bytes.
func (f *Frame) Digest() uint64 {
	return xxhash.Sum64(f.Pix)
}

func (f *Frame) put(i int, c color.RGBA) {
	p := f.Pix[i : i+f.Format.BytesPerPixel]
	p[f.Format.R] = c.R
	p[f.Format.G] = c.G
	p[f.Format.B] = c.B
	if f.Format.A >= 0 {
		p[f.Format.A] = c.A
	}
}
