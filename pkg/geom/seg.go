package geom

import "math"

// ParallelEpsilon is the cross-product magnitude below which two segments
// are treated as parallel.
const ParallelEpsilon = 1e-12

// LineSeg is a directed segment from A to B.
type LineSeg struct {
	A, B Vec2
}

// Seg builds a segment from raw coordinates.
func Seg(x0, y0, x1, y1 float64) LineSeg {
	return LineSeg{A: Vec2{x0, y0}, B: Vec2{x1, y1}}
}

// LenSq returns the squared length.
func (s LineSeg) LenSq() float64 { return s.B.Sub(s.A).LenSq() }

// Len returns the length.
func (s LineSeg) Len() float64 { return s.B.Sub(s.A).Len() }

// At returns the point at parameter t; t=0 is A and t=1 is B.
func (s LineSeg) At(t float64) Vec2 { return s.A.Add(s.B.Sub(s.A).Scale(t)) }

// Transform applies m to both endpoints.
func (s LineSeg) Transform(m Mat3) LineSeg {
	return LineSeg{A: m.Apply(s.A), B: m.Apply(s.B)}
}

// SameEndpoints reports whether s and o share both endpoints in either order.
func (s LineSeg) SameEndpoints(o LineSeg, eps float64) bool {
	if s.A.ApproxEqual(o.A, eps) && s.B.ApproxEqual(o.B, eps) {
		return true
	}
	return s.A.ApproxEqual(o.B, eps) && s.B.ApproxEqual(o.A, eps)
}

// Intersect tests s against target and returns the parameter of the
// crossing along target (not s). Both parameters must lie in [0,1].
// Parallel and degenerate segments never intersect.
func (s LineSeg) Intersect(target LineSeg) (float64, bool) {
	r := s.B.Sub(s.A)
	q := target.B.Sub(target.A)
	denom := r.Cross(q)
	if math.Abs(denom) < ParallelEpsilon {
		return 0, false
	}
	d := target.A.Sub(s.A)
	ua := d.Cross(q) / denom
	ub := d.Cross(r) / denom
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return 0, false
	}
	return ub, true
}
