package render

import (
	"image/color"
	"math"

	"rustycast/internal/world"
	"rustycast/pkg/geom"
)

var (
	mapBackground = color.RGBA{A: 0xFF}
	mapSolid      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	mapPortal     = color.RGBA{R: 0x40, G: 0xA0, B: 0xFF, A: 0xFF}
	mapCurrent    = color.RGBA{R: 0xFF, G: 0xD0, B: 0x40, A: 0xFF}
	mapViewer     = color.RGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}
)

// MapTransform returns the world-to-screen transform of the overhead map:
// the viewer sits at the centre of the frame, facing up, and one world unit
// spans zoom pixels.
func MapTransform(v View, w, h int, zoom float64) geom.Mat3 {
	center := geom.V(float64(w)/2, float64(h)/2)
	return geom.Translation(center).
		Mul(geom.Scaling(geom.V(zoom, zoom))).
		Mul(geom.Rotation(-v.Facing)).
		Mul(geom.Translation(v.Pos.Neg()))
}

// DrawMap clears f and draws every wall of w as seen from above. Portal
// walls are drawn once, in a separate colour; the walls of the viewer's
// sector are highlighted.
func DrawMap(w *world.World, v View, f *Frame, zoom float64) {
	f.Clear(mapBackground)
	m := MapTransform(v, f.W, f.H, zoom)
	for i := 0; i < w.Len(); i++ {
		s := w.Sector(i)
		for j, wl := range s.Walls {
			c := mapSolid
			if wl.Portal != nil {
				// Each portal is listed by both sectors; draw it from the lower index.
				if wl.Portal.Sector < i || (wl.Portal.Sector == i && wl.Portal.Wall < j) {
					continue
				}
				c = mapPortal
			}
			drawSeg(f, wl.Seg.Transform(m), c)
		}
	}
	for _, wl := range w.Sector(v.Sector).Walls {
		if wl.Portal == nil {
			drawSeg(f, wl.Seg.Transform(m), mapCurrent)
		}
	}

	// Viewer marker: a short tick pointing up, the facing direction.
	cx, cy := float64(f.W)/2, float64(f.H)/2
	drawSeg(f, geom.Seg(cx, cy, cx, cy-6), mapViewer)
	drawSeg(f, geom.Seg(cx-2, cy, cx+2, cy), mapViewer)
}

// drawSeg plots a screen-space segment by sampling it once per pixel of
// length, after clipping it to the frame.
func drawSeg(f *Frame, s geom.LineSeg, c color.RGBA) {
	s, ok := clipSeg(s, float64(f.W), float64(f.H))
	if !ok {
		return
	}
	n := int(math.Ceil(s.Len()))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		p := s.At(t)
		f.Set(int(math.Floor(p.X)), int(math.Floor(p.Y)), c)
	}
}

// clipSeg clips s to the rectangle [0,w]x[0,h] (Liang-Barsky).
func clipSeg(s geom.LineSeg, w, h float64) (geom.LineSeg, bool) {
	d := s.B.Sub(s.A)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, s.A.X},
		{d.X, w - s.A.X},
		{-d.Y, s.A.Y},
		{d.Y, h - s.A.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return geom.LineSeg{}, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return geom.LineSeg{}, false
		}
	}
	return geom.LineSeg{A: s.At(t0), B: s.At(t1)}, true
}
