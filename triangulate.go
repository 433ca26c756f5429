package polyedit

// Triangulator splits an outline into triangles for the guide overlay.
type Triangulator interface {
	Triangulate(points []Vec2) ([][3]Vec2, error)
}

// FanTriangulator triangulates around the first vertex. The result is exact
// for convex outlines; concave outlines need a real tessellator such as the
// one in the tess module.
type FanTriangulator struct{}

// Triangulate implements Triangulator. N points yield N-2 triangles.
func (FanTriangulator) Triangulate(points []Vec2) ([][3]Vec2, error) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	tris := make([][3]Vec2, n-2)
	for i := 0; i < n-2; i++ {
		tris[i] = [3]Vec2{points[0], points[i+1], points[i+2]}
	}
	return tris, nil
}
