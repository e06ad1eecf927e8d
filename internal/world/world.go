// Package world holds the sector/portal map model and the queries the
// renderer and movement code run against it.
//
// A World is built once through New, which validates every sector and
// portal link, and is read-only afterwards. All indices handed out by a
// World stay valid for its lifetime.
package world

import (
	"errors"
	"fmt"
	"math"

	"rustycast/pkg/geom"
)

// EndpointEpsilon is the tolerance used when matching portal endpoints and
// closing sector loops.
const EndpointEpsilon = 1e-6

var (
	// ErrEmptyWorld is returned when no sectors are supplied.
	ErrEmptyWorld = errors.New("world has no sectors")
	// ErrInvalidSector flags bad elevations, too few walls or zero-length walls.
	ErrInvalidSector = errors.New("invalid sector")
	// ErrOpenLoop flags walls that do not form a closed chain.
	ErrOpenLoop = errors.New("sector walls do not form a closed loop")
	// ErrNotConvex flags sectors whose boundary turns both ways.
	ErrNotConvex = errors.New("sector is not convex")
	// ErrBadPortal flags dangling, self-referencing or non-mirrored portals.
	ErrBadPortal = errors.New("bad portal")
)

// SectorInfo carries the vertical extent of a sector.
type SectorInfo struct {
	Floor   float64
	Ceiling float64
}

// WallRef addresses a wall by sector and wall index.
type WallRef struct {
	Sector int
	Wall   int
}

// Wall is one boundary edge of a sector. A non-nil Portal links it to the
// mirrored wall of the neighbouring sector.
type Wall struct {
	Seg    geom.LineSeg
	Portal *WallRef
}

// IsPortal reports whether the wall can be passed through.
func (w Wall) IsPortal() bool { return w.Portal != nil }

// Sector is a convex region bounded by its walls in order.
type Sector struct {
	Name  string
	Info  SectorInfo
	Walls []Wall
}

// World is an immutable, validated collection of sectors.
type World struct {
	sectors []Sector
	// winding is +1 for counter-clockwise sectors (y up) and -1 otherwise.
	winding []float64
}

// New validates the sectors and returns a World that owns private copies
// of them. Every defect found is reported in the returned error.
func New(sectors []Sector) (*World, error) {
	if len(sectors) == 0 {
		return nil, ErrEmptyWorld
	}
	owned := make([]Sector, len(sectors))
	for i, s := range sectors {
		walls := make([]Wall, len(s.Walls))
		for j, wl := range s.Walls {
			walls[j] = Wall{Seg: wl.Seg}
			if wl.Portal != nil {
				ref := *wl.Portal
				walls[j].Portal = &ref
			}
		}
		owned[i] = Sector{Name: s.Name, Info: s.Info, Walls: walls}
	}

	var errs []error
	for i := range owned {
		errs = append(errs, validateShape(i, &owned[i])...)
	}
	for i := range owned {
		errs = append(errs, validatePortals(owned, i)...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	w := &World{sectors: owned, winding: make([]float64, len(owned))}
	for i := range owned {
		w.winding[i] = winding(&owned[i])
	}
	return w, nil
}

// winding returns the sign of the sector's signed area.
func winding(s *Sector) float64 {
	area := 0.0
	for _, wl := range s.Walls {
		area += wl.Seg.A.Cross(wl.Seg.B)
	}
	if area < 0 {
		return -1
	}
	return 1
}

func sectorLabel(i int, s *Sector) string {
	if s.Name == "" {
		return fmt.Sprintf("sector %d", i)
	}
	return fmt.Sprintf("sector %d (%s)", i, s.Name)
}

func validateShape(i int, s *Sector) []error {
	label := sectorLabel(i, s)
	var errs []error
	if !(s.Info.Floor < s.Info.Ceiling) {
		errs = append(errs, fmt.Errorf("%s: floor %g must be below ceiling %g: %w",
			label, s.Info.Floor, s.Info.Ceiling, ErrInvalidSector))
	}
	n := len(s.Walls)
	if n < 3 {
		return append(errs, fmt.Errorf("%s: %d walls, need at least 3: %w", label, n, ErrInvalidSector))
	}
	for j, wl := range s.Walls {
		if wl.Seg.LenSq() < EndpointEpsilon*EndpointEpsilon {
			errs = append(errs, fmt.Errorf("%s wall %d: zero length: %w", label, j, ErrInvalidSector))
		}
		next := s.Walls[(j+1)%n]
		if !wl.Seg.B.ApproxEqual(next.Seg.A, EndpointEpsilon) {
			errs = append(errs, fmt.Errorf("%s wall %d ends at %v but wall %d starts at %v: %w",
				label, j, wl.Seg.B, (j+1)%n, next.Seg.A, ErrOpenLoop))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	// Consecutive edges must all turn the same way; collinear runs are fine.
	sign := 0
	for j, wl := range s.Walls {
		e0 := wl.Seg.B.Sub(wl.Seg.A)
		next := s.Walls[(j+1)%n].Seg
		e1 := next.B.Sub(next.A)
		c := e0.Cross(e1)
		if math.Abs(c) < EndpointEpsilon {
			continue
		}
		turn := 1
		if c < 0 {
			turn = -1
		}
		if sign == 0 {
			sign = turn
			continue
		}
		if turn != sign {
			return append(errs, fmt.Errorf("%s: turns the other way at wall %d: %w", label, (j+1)%n, ErrNotConvex))
		}
	}
	if sign == 0 {
		errs = append(errs, fmt.Errorf("%s: all walls are collinear: %w", label, ErrNotConvex))
	}
	return errs
}

func validatePortals(sectors []Sector, i int) []error {
	s := &sectors[i]
	label := sectorLabel(i, s)
	var errs []error
	for j, wl := range s.Walls {
		p := wl.Portal
		if p == nil {
			continue
		}
		if p.Sector < 0 || p.Sector >= len(sectors) {
			errs = append(errs, fmt.Errorf("%s wall %d: target sector %d out of range: %w", label, j, p.Sector, ErrBadPortal))
			continue
		}
		if p.Sector == i {
			errs = append(errs, fmt.Errorf("%s wall %d: portal into its own sector: %w", label, j, ErrBadPortal))
			continue
		}
		target := &sectors[p.Sector]
		if p.Wall < 0 || p.Wall >= len(target.Walls) {
			errs = append(errs, fmt.Errorf("%s wall %d: target wall %d out of range for %s: %w",
				label, j, p.Wall, sectorLabel(p.Sector, target), ErrBadPortal))
			continue
		}
		mirror := target.Walls[p.Wall]
		if !wl.Seg.SameEndpoints(mirror.Seg, EndpointEpsilon) {
			errs = append(errs, fmt.Errorf("%s wall %d: endpoints do not match %s wall %d: %w",
				label, j, sectorLabel(p.Sector, target), p.Wall, ErrBadPortal))
			continue
		}
		if mirror.Portal == nil || mirror.Portal.Sector != i || mirror.Portal.Wall != j {
			errs = append(errs, fmt.Errorf("%s wall %d: %s wall %d does not link back: %w",
				label, j, sectorLabel(p.Sector, target), p.Wall, ErrBadPortal))
		}
	}
	return errs
}

// Len returns the number of sectors.
func (w *World) Len() int { return len(w.sectors) }

// Sector returns the sector at index i. The returned value shares its wall
// slice with the World and must not be modified.
func (w *World) Sector(i int) Sector { return w.sectors[i] }

// Info returns the elevations of sector i.
func (w *World) Info(i int) SectorInfo { return w.sectors[i].Info }

// Elevation returns the floor height of sector i.
func (w *World) Elevation(i int) float64 { return w.sectors[i].Info.Floor }

// Valid reports whether i addresses a sector.
func (w *World) Valid(i int) bool { return i >= 0 && i < len(w.sectors) }

// Contains reports whether p lies inside (or on the boundary of) sector i.
func (w *World) Contains(i int, p geom.Vec2) bool {
	s := &w.sectors[i]
	sign := 0
	for _, wl := range s.Walls {
		c := wl.Seg.B.Sub(wl.Seg.A).Cross(p.Sub(wl.Seg.A))
		if math.Abs(c) < EndpointEpsilon {
			continue
		}
		side := 1
		if c < 0 {
			side = -1
		}
		if sign == 0 {
			sign = side
		} else if side != sign {
			return false
		}
	}
	return true
}

// Locate returns the first sector containing p, or -1.
func (w *World) Locate(p geom.Vec2) int {
	for i := range w.sectors {
		if w.Contains(i, p) {
			return i
		}
	}
	return -1
}

// Direction returns the unit vector for a facing angle. Angle 0 looks along
// -Y and increasing angles turn clockwise on a y-down map.
func Direction(angle float64) geom.Vec2 {
	sin, cos := math.Sincos(angle)
	return geom.Vec2{X: sin, Y: -cos}
}
