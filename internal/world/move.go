package world

import "rustycast/pkg/geom"

// MaxMoveHops caps how many portals a single movement step may cross.
const MaxMoveHops = 16

// MoveObject returns the sector an object ends up in after moving from
// oldPos to newPos, starting in sector. When the step crosses several
// portal walls of one sector, the crossing nearest oldPos wins; the first
// enumerated wall wins a tie. A step that crosses no portal leaves the
// sector unchanged. Solid walls are ignored here; see Blocked.
func (w *World) MoveObject(sector int, oldPos, newPos geom.Vec2) int {
	sector, _ = w.trace(sector, oldPos, newPos, false)
	return sector
}

// Blocked reports whether the movement from oldPos to newPos runs into a
// solid wall, following portals along the way.
func (w *World) Blocked(sector int, oldPos, newPos geom.Vec2) bool {
	_, blocked := w.trace(sector, oldPos, newPos, true)
	return blocked
}

func (w *World) trace(sector int, from, to geom.Vec2, solidStops bool) (int, bool) {
	if from == to {
		return sector, false
	}
	source := -1
	origin := from
	for hop := 0; hop < MaxMoveHops; hop++ {
		s := &w.sectors[sector]
		seg := geom.LineSeg{A: origin, B: to}
		best, t := nearestCrossing(s, w.winding[sector], seg, source, !solidStops)
		if best < 0 {
			return sector, false
		}
		wall := &s.Walls[best]
		if wall.Portal == nil {
			return sector, true
		}
		origin = wall.Seg.At(t)
		sector, source = wall.Portal.Sector, wall.Portal.Wall
	}
	return sector, false
}
