package world

import (
	"math"

	"rustycast/pkg/geom"
)

// TieEpsilon is the squared-distance window within which two candidate
// hits count as equally near. The first enumerated wall wins a tie.
const TieEpsilon = 1e-9

// Limits bounds a single traversal through the portal graph.
type Limits struct {
	// RayLength is the total distance a ray may travel across all sectors.
	RayLength float64
	// MaxHops caps the number of walls a ray may report.
	MaxHops int
}

// DefaultLimits returns the limits used by the renderer unless configured.
func DefaultLimits() Limits {
	return Limits{RayLength: 1000, MaxHops: 64}
}

func (l Limits) normalized() Limits {
	d := DefaultLimits()
	if l.RayLength <= 0 {
		l.RayLength = d.RayLength
	}
	if l.MaxHops <= 0 {
		l.MaxHops = d.MaxHops
	}
	return l
}

// Hit is one wall crossing along a ray, ordered near to far.
type Hit struct {
	// Along is the hit position measured along the wall from its start.
	Along float64
	// Dist is the straight-line distance from the ray origin.
	Dist float64
	Pos  geom.Vec2
	// In is the sector the ray travelled through to reach the wall.
	In SectorInfo
	// Out is the sector beyond the wall; only meaningful when Portal is set.
	Out    SectorInfo
	Portal bool

	Sector int
	Wall   int
}

// OutInfo returns the sector beyond the wall and whether there is one.
func (h Hit) OutInfo() (SectorInfo, bool) {
	return h.Out, h.Portal
}

// CastRay traces a ray from pos in the given sector and returns every wall
// it meets, nearest first, following portals until a solid wall, empty
// space or the limits end it. truncated reports that MaxHops cut the
// sequence short.
func (w *World) CastRay(sector int, pos geom.Vec2, angle float64, lim Limits) (hits []Hit, truncated bool) {
	return w.AppendRay(nil, sector, pos, angle, lim)
}

// AppendRay is CastRay appending to dst so callers can reuse a buffer.
func (w *World) AppendRay(dst []Hit, sector int, pos geom.Vec2, angle float64, lim Limits) ([]Hit, bool) {
	lim = lim.normalized()
	dir := Direction(angle)
	origin := pos
	source := -1
	travelled := 0.0

	for hops := 0; ; hops++ {
		remaining := lim.RayLength - travelled
		if remaining <= 0 {
			return dst, false
		}
		if hops >= lim.MaxHops {
			return dst, true
		}
		s := &w.sectors[sector]
		ray := geom.LineSeg{A: origin, B: origin.Add(dir.Scale(remaining))}

		best, bestT := nearestCrossing(s, w.winding[sector], ray, source, false)
		if best < 0 {
			return dst, false
		}

		wall := &s.Walls[best]
		hitPos := wall.Seg.At(bestT)
		h := Hit{
			Along:  bestT * wall.Seg.Len(),
			Dist:   hitPos.Sub(pos).Len(),
			Pos:    hitPos,
			In:     s.Info,
			Sector: sector,
			Wall:   best,
		}
		if wall.Portal != nil {
			h.Portal = true
			h.Out = w.sectors[wall.Portal.Sector].Info
		}
		dst = append(dst, h)
		if wall.Portal == nil {
			return dst, false
		}

		travelled += hitPos.Sub(origin).Len()
		sector, source, origin = wall.Portal.Sector, wall.Portal.Wall, hitPos
	}
}

// nearestCrossing returns the wall of s crossed by seg closest to seg.A and
// the parameter along that wall, or -1. Only walls seg leaves s through are
// considered, so a wall that merely touches seg.A is skipped unless seg
// heads out through it. The source wall is always skipped.
func nearestCrossing(s *Sector, winding float64, seg geom.LineSeg, source int, portalsOnly bool) (int, float64) {
	best, bestT, bestD2 := -1, 0.0, math.Inf(1)
	dir := seg.B.Sub(seg.A)
	for i := range s.Walls {
		if i == source {
			continue
		}
		wl := &s.Walls[i]
		if portalsOnly && wl.Portal == nil {
			continue
		}
		if wl.Seg.B.Sub(wl.Seg.A).Cross(dir)*winding > 0 {
			continue
		}
		t, ok := seg.Intersect(wl.Seg)
		if !ok {
			continue
		}
		d2 := wl.Seg.At(t).Sub(seg.A).LenSq()
		if d2 < bestD2-TieEpsilon {
			best, bestT, bestD2 = i, t, d2
		}
	}
	return best, bestT
}
