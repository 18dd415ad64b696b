package bramble

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// shapeTransform computes the affine matrix applied to polygon points about
// the pivot (px, py). Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-px, -py) -> Flip -> Scale -> Rotate -> Translate(px, py)
func shapeTransform(rotation, sx, sy float64, flipX, flipY bool, px, py float64) [6]float64 {
	if flipX {
		sx = -sx
	}
	if flipY {
		sy = -sy
	}
	sin, cos := math.Sincos(rotation)
	scale := [6]float64{sx, 0, 0, sy, 0, 0}
	rotate := [6]float64{cos, sin, -sin, cos, 0, 0}
	m := multiplyAffine(rotate, scale)
	m = multiplyAffine(m, [6]float64{1, 0, 0, 1, -px, -py})
	return multiplyAffine([6]float64{1, 0, 0, 1, px, py}, m)
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine returns the inverse of m, or the identity when m is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	inv := 1 / det
	a, b := m[3]*inv, -m[1]*inv
	c, d := -m[2]*inv, m[0]*inv
	return [6]float64{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
