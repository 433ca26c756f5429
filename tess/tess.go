// Package tess provides a polyedit.Triangulator backed by libtess2. Unlike
// the default fan triangulator it is correct for concave outlines.
//
// The package uses cgo.
package tess

import (
	"fmt"

	"github.com/hajimehoshi/go-libtess2"
	"github.com/phanxgames/polyedit"
)

// Triangulator tessellates an outline with the odd winding rule.
type Triangulator struct{}

var _ polyedit.Triangulator = Triangulator{}

// Triangulate implements polyedit.Triangulator. Fewer than three points
// yield no triangles. Coordinates pass through float32.
func (Triangulator) Triangulate(points []polyedit.Vec2) ([][3]polyedit.Vec2, error) {
	if len(points) < 3 {
		return nil, nil
	}
	contour := make([]libtess2.Vertex, len(points))
	for i, p := range points {
		contour[i] = libtess2.Vertex{X: float32(p.X), Y: float32(p.Y)}
	}

	t := libtess2.NewTesselator()
	t.AddContour(contour)
	elems, verts, err := t.Tesselate()
	if err != nil {
		return nil, fmt.Errorf("tess: %w", err)
	}

	tris := make([][3]polyedit.Vec2, 0, len(elems)/3)
	for i := 0; i+2 < len(elems); i += 3 {
		var tri [3]polyedit.Vec2
		ok := true
		for j := range 3 {
			k := elems[i+j]
			if k < 0 || k >= len(verts) {
				ok = false
				break
			}
			tri[j] = polyedit.Vec2{X: float64(verts[k].X), Y: float64(verts[k].Y)}
		}
		if ok {
			tris = append(tris, tri)
		}
	}
	return tris, nil
}
