// Package geom holds the 2D math shared by the world model, the ray caster
// and the overhead map: vectors, affine 3x3 matrices and line segments.
package geom

import "math"

// Vec2 is a point or direction in the map plane.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// LenSq returns the squared length.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - o.X*v.Y }

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Project returns the projection of v onto o. Projecting onto the zero
// vector yields the zero vector.
func (v Vec2) Project(o Vec2) Vec2 {
	l2 := o.LenSq()
	if l2 == 0 {
		return Vec2{}
	}
	return o.Scale(v.Dot(o) / l2)
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
