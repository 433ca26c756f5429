package polyedit

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

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

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// matrixScale returns the uniform scale factor of m (the square root of
// the absolute determinant). Used to convert pixel sizes into world units.
func matrixScale(m [6]float64) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[2]*m[1]))
}

// projectionMatrix builds the matrix that maps entity world units to screen
// pixels: view * Translate(offset) * Scale(pixelsPerUnit).
//
// Hit-testing uses its inverse and drawing uses it directly; both go through
// PolygonFollower.projection so the two can never disagree.
func projectionMatrix(view [6]float64, offset Vec2, pixelsPerUnit float64) [6]float64 {
	local := [6]float64{pixelsPerUnit, 0, 0, pixelsPerUnit, offset.X, offset.Y}
	return multiplyAffine(view, local)
}

// entityTransform applies an entity's non-uniform scale and flip flags to
// model-space points, producing entity world units.
type entityTransform struct {
	sx, sy float64
}

// newEntityTransform reads scale and flip from ts. A nil source yields the
// identity.
func newEntityTransform(ts TransformSource) entityTransform {
	if ts == nil {
		return entityTransform{1, 1}
	}
	sx, sy := ts.Scale()
	fx, fy := ts.Flip()
	if fx {
		sx = -sx
	}
	if fy {
		sy = -sy
	}
	return entityTransform{sx, sy}
}

func (e entityTransform) apply(p Vec2) Vec2 {
	return Vec2{p.X * e.sx, p.Y * e.sy}
}

// invert maps entity world units back to model space. A zero scale axis
// collapses to 0 on that axis.
func (e entityTransform) invert(p Vec2) Vec2 {
	var out Vec2
	if e.sx != 0 {
		out.X = p.X / e.sx
	}
	if e.sy != 0 {
		out.Y = p.Y / e.sy
	}
	return out
}
