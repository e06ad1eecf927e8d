//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// FramePainter uploads RGBA frames into an ebiten image and draws them.
type FramePainter struct {
	w, h int
	img  *ebiten.Image
}

// NewFramePainter allocates a painter for frames of size w*h.
func NewFramePainter(w, h int) *FramePainter {
	return &FramePainter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Blit uploads f and draws it onto dst scaled by scale. Frames that do not
// match the painter size are skipped; non-RGBA32 frames are converted.
func (fp *FramePainter) Blit(dst *ebiten.Image, f *Frame, scale int) {
	if f.W != fp.w || f.H != fp.h {
		return
	}
	if f.Format == FormatRGBA32 {
		fp.img.WritePixels(f.Pix)
	} else {
		fp.img.WritePixels(f.Image().Pix)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}
