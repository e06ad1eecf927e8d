package geom

import "math"

// Mat3 is a 3x3 affine transform in row-major order:
//
//	| A00 A01 A02 |
//	| A10 A11 A12 |
//	| A20 A21 A22 |
//
// Points are treated as column vectors (x, y, 1).
type Mat3 struct {
	A00, A01, A02 float64
	A10, A11, A12 float64
	A20, A21, A22 float64
}

// Identity returns the identity transform.
func Identity() Mat3 {
	return Mat3{
		A00: 1, A11: 1, A22: 1,
	}
}

// Rotation returns a counter-clockwise rotation by theta radians (in a
// y-up frame).
func Rotation(theta float64) Mat3 {
	sin, cos := math.Sincos(theta)
	return Mat3{
		A00: cos, A01: -sin,
		A10: sin, A11: cos,
		A22: 1,
	}
}

// Translation returns a transform that offsets points by t.
func Translation(t Vec2) Mat3 {
	return Mat3{
		A00: 1, A02: t.X,
		A11: 1, A12: t.Y,
		A22: 1,
	}
}

// Scaling returns a per-axis scale transform.
func Scaling(s Vec2) Mat3 {
	return Mat3{
		A00: s.X,
		A11: s.Y,
		A22: 1,
	}
}

// Mul returns m * o, i.e. o is applied first.
func (m Mat3) Mul(o Mat3) Mat3 {
	return Mat3{
		A00: m.A00*o.A00 + m.A01*o.A10 + m.A02*o.A20,
		A01: m.A00*o.A01 + m.A01*o.A11 + m.A02*o.A21,
		A02: m.A00*o.A02 + m.A01*o.A12 + m.A02*o.A22,

		A10: m.A10*o.A00 + m.A11*o.A10 + m.A12*o.A20,
		A11: m.A10*o.A01 + m.A11*o.A11 + m.A12*o.A21,
		A12: m.A10*o.A02 + m.A11*o.A12 + m.A12*o.A22,

		A20: m.A20*o.A00 + m.A21*o.A10 + m.A22*o.A20,
		A21: m.A20*o.A01 + m.A21*o.A11 + m.A22*o.A21,
		A22: m.A20*o.A02 + m.A21*o.A12 + m.A22*o.A22,
	}
}

// Apply transforms the point v.
func (m Mat3) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m.A00*v.X + m.A01*v.Y + m.A02,
		Y: m.A10*v.X + m.A11*v.Y + m.A12,
	}
}

// Det returns the determinant.
func (m Mat3) Det() float64 {
	return m.A00*(m.A11*m.A22-m.A12*m.A21) -
		m.A01*(m.A10*m.A22-m.A12*m.A20) +
		m.A02*(m.A10*m.A21-m.A11*m.A20)
}

// Inverse returns the inverse transform. ok is false for singular matrices.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Det()
	if math.Abs(det) < 1e-12 {
		return Mat3{}, false
	}
	d := 1 / det
	return Mat3{
		A00: (m.A11*m.A22 - m.A12*m.A21) * d,
		A01: (m.A02*m.A21 - m.A01*m.A22) * d,
		A02: (m.A01*m.A12 - m.A02*m.A11) * d,

		A10: (m.A12*m.A20 - m.A10*m.A22) * d,
		A11: (m.A00*m.A22 - m.A02*m.A20) * d,
		A12: (m.A02*m.A10 - m.A00*m.A12) * d,

		A20: (m.A10*m.A21 - m.A11*m.A20) * d,
		A21: (m.A01*m.A20 - m.A00*m.A21) * d,
		A22: (m.A00*m.A11 - m.A01*m.A10) * d,
	}, true
}
