package evergreen

import "math"

// Affine is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// IdentityAffine is the identity matrix.
var IdentityAffine = Affine{1, 0, 0, 1, 0, 0}

// Mul returns m * o (o is applied first).
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Translated returns m with a translation by (x, y) applied in local space.
func (m Affine) Translated(x, y float64) Affine {
	return m.Mul(Affine{1, 0, 0, 1, x, y})
}

// Rotated returns m with a rotation by theta radians applied in local space.
func (m Affine) Rotated(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return m.Mul(Affine{cos, sin, -sin, cos, 0, 0})
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) Vec2 {
	return Vec2{m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]}
}

// ScaleFactor is the geometric mean of the axis scales. Used to convert
// local lengths (line widths, radii) to device lengths.
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[2]*m[1]))
}
