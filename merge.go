package polyedit

import (
	"log/slog"
	"math"
	"slices"

	clipper "github.com/ctessum/go.clipper"
)

// RingMerger flattens a polygon's rings into the single ordered outline the
// follower edits.
type RingMerger interface {
	MergeTouchingRings(rings [][]Vec2) []Vec2
}

// defaultClipperPrecision is the number of integer steps per world unit.
const defaultClipperPrecision = 1e4

// ClipperMerger merges touching rings by polygon union (Vatti clipping).
// Rings that share edges collapse into their common outline.
type ClipperMerger struct {
	// Precision is the number of integer steps per world unit used for the
	// integer clipper. Zero means 1e4.
	Precision float64
	// Logger receives debug notes about degenerate merges. Nil uses Logger().
	Logger *slog.Logger
}

// MergeTouchingRings implements RingMerger. A single ring is returned as a
// point-for-point copy, so a vertex dragged onto the first one stays an
// anchor of its own. When the union yields several disjoint outlines, the
// one with the largest area is returned.
func (m ClipperMerger) MergeTouchingRings(rings [][]Vec2) []Vec2 {
	rings = slices.DeleteFunc(slices.Clone(rings), func(r []Vec2) bool { return len(r) < 2 })
	switch len(rings) {
	case 0:
		return nil
	case 1:
		return slices.Clone(rings[0])
	}
	rings = openRings(rings)

	scale := m.Precision
	if scale <= 0 {
		scale = defaultClipperPrecision
	}
	log := m.Logger
	if log == nil {
		log = Logger()
	}

	paths := make(clipper.Paths, 0, len(rings))
	for _, r := range rings {
		path := make(clipper.Path, len(r))
		for i, p := range r {
			path[i] = &clipper.IntPoint{
				X: clipper.CInt(math.Round(p.X * scale)),
				Y: clipper.CInt(math.Round(p.Y * scale)),
			}
		}
		paths = append(paths, path)
	}

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(paths, clipper.PtSubject, true)
	solution, ok := c.Execute1(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok || len(solution) == 0 {
		log.Debug("ring union failed, using first ring", "rings", len(rings))
		if len(rings) == 0 {
			return nil
		}
		return slices.Clone(rings[0])
	}
	if len(solution) > 1 {
		log.Debug("ring union produced disjoint outlines, keeping the largest", "outlines", len(solution))
	}

	best := solution[0]
	bestArea := math.Abs(clipper.Area(best))
	for _, path := range solution[1:] {
		if a := math.Abs(clipper.Area(path)); a > bestArea {
			best = path
			bestArea = a
		}
	}

	out := make([]Vec2, len(best))
	for i, ip := range best {
		out[i] = Vec2{X: float64(ip.X) / scale, Y: float64(ip.Y) / scale}
	}
	return out
}

// openRing returns r without a trailing point that repeats the first one.
func openRing(r []Vec2) []Vec2 {
	if n := len(r); n > 1 && r[0] == r[n-1] {
		return r[:n-1]
	}
	return r
}

// openRings prepares union input: closing points are dropped and rings with
// fewer than two distinct points are skipped. The result aliases rings.
func openRings(rings [][]Vec2) [][]Vec2 {
	out := make([][]Vec2, 0, len(rings))
	for _, r := range rings {
		if r = openRing(r); len(r) >= 2 {
			out = append(out, r)
		}
	}
	return out
}
