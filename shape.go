package polyedit

import (
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Shape is an in-memory polygon entity: rings plus scale and flip. It
// implements PolygonSource and TransformSource, so it can back a follower
// directly.
type Shape struct {
	Name string

	rings  [][]Vec2
	scaleX float64
	scaleY float64
	flipX  bool
	flipY  bool
}

// NewShape creates a shape with one ring and unit scale.
func NewShape(name string, outline []Vec2) *Shape {
	s := &Shape{Name: name, scaleX: 1, scaleY: 1}
	s.SetOutline(outline)
	return s
}

// Rings implements PolygonSource. The returned slices belong to the shape and
// must not be modified.
func (s *Shape) Rings() [][]Vec2 {
	if len(s.rings) == 0 {
		return nil
	}
	return s.rings
}

// Scale implements TransformSource.
func (s *Shape) Scale() (sx, sy float64) { return s.scaleX, s.scaleY }

// Flip implements TransformSource.
func (s *Shape) Flip() (fx, fy bool) { return s.flipX, s.flipY }

// SetScale sets the non-uniform scale.
func (s *Shape) SetScale(sx, sy float64) {
	s.scaleX = sx
	s.scaleY = sy
}

// SetFlip sets the flip flags.
func (s *Shape) SetFlip(fx, fy bool) {
	s.flipX = fx
	s.flipY = fy
}

// SetRings replaces all rings. Each ring is copied, and a ring authored
// closed (last point equal to the first) loses its closing point.
func (s *Shape) SetRings(rings [][]Vec2) {
	s.rings = s.rings[:0]
	for _, r := range rings {
		if r = openRing(r); len(r) == 0 {
			continue
		}
		s.rings = append(s.rings, slices.Clone(r))
	}
}

// SetOutline replaces all rings with a single ring, keeping every point as
// given. An empty outline clears the shape.
func (s *Shape) SetOutline(points []Vec2) {
	if len(points) == 0 {
		s.rings = nil
		return
	}
	s.rings = [][]Vec2{slices.Clone(points)}
}

// Outline returns the first ring, or nil.
func (s *Shape) Outline() []Vec2 {
	if len(s.rings) == 0 {
		return nil
	}
	return s.rings[0]
}

// MoveVertex moves vertex i of the outline to p. It reports whether i was in
// range.
func (s *Shape) MoveVertex(i int, p Vec2) bool {
	out := s.Outline()
	if i < 0 || i >= len(out) {
		return false
	}
	out[i] = p
	return true
}

// InsertVertex inserts p on edge e, between vertex e and vertex e+1 (the
// closing edge appends). It returns the new vertex index, or NoIndex when e
// is not an edge of the outline.
func (s *Shape) InsertVertex(e int, p Vec2) int {
	out := s.Outline()
	if e < 0 || e >= edgeCount(len(out)) {
		return NoIndex
	}
	s.rings[0] = slices.Insert(out, e+1, p)
	return e + 1
}

// RemoveVertex deletes vertex i. The outline never drops below three
// vertices; it reports whether a vertex was removed.
func (s *Shape) RemoveVertex(i int) bool {
	out := s.Outline()
	if i < 0 || i >= len(out) || len(out) <= 3 {
		return false
	}
	s.rings[0] = slices.Delete(out, i, i+1)
	return true
}

// shapeFile is the TOML form of a Shape:
//
//	name = "crate"
//	scale = [1.0, 1.0]
//	flip_x = false
//	flip_y = false
//
//	[[rings]]
//	points = [[0, 0], [1, 0], [1, 1]]
type shapeFile struct {
	Name  string          `toml:"name"`
	Scale *[2]float64     `toml:"scale"`
	FlipX bool            `toml:"flip_x"`
	FlipY bool            `toml:"flip_y"`
	Rings []shapeRingFile `toml:"rings"`
}

type shapeRingFile struct {
	Points [][2]float64 `toml:"points"`
}

// ParseShape decodes a shape from TOML. A missing scale means [1, 1] and a
// ring that repeats its first point at the end is stored open.
func ParseShape(data []byte) (*Shape, error) {
	var sf shapeFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse shape: %w", err)
	}
	s := &Shape{Name: sf.Name, scaleX: 1, scaleY: 1, flipX: sf.FlipX, flipY: sf.FlipY}
	if sf.Scale != nil {
		s.scaleX, s.scaleY = sf.Scale[0], sf.Scale[1]
	}
	for i, r := range sf.Rings {
		if len(r.Points) == 1 {
			return nil, fmt.Errorf("parse shape: ring %d has a single point", i)
		}
		ring := make([]Vec2, len(r.Points))
		for j, p := range r.Points {
			ring[j] = Vec2{p[0], p[1]}
		}
		if ring = openRing(ring); len(ring) > 0 {
			s.rings = append(s.rings, ring)
		}
	}
	return s, nil
}

// LoadShape reads and parses a TOML shape file.
func LoadShape(path string) (*Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load shape %s: %w", path, err)
	}
	s, err := ParseShape(data)
	if err != nil {
		return nil, fmt.Errorf("load shape %s: %w", path, err)
	}
	return s, nil
}
