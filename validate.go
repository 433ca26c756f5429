package polyedit

// FindSelfIntersections returns, in ascending order, the indices of edges
// of the closed outline that cross or overlap a non-adjacent edge.
// Adjacent edges share a vertex and are never reported against each other.
func FindSelfIntersections(points []Vec2) []int {
	n := edgeCount(len(points))
	if n < 4 {
		// A triangle (or less) cannot self-intersect without a degenerate
		// overlap, which the adjacency rule excludes.
		return nil
	}
	flagged := make([]bool, n)
	for i := 0; i < n; i++ {
		a, b := edgeEnds(points, i)
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // closing edge is adjacent to edge 0
			}
			c, d := edgeEnds(points, j)
			if segmentsIntersect(a, b, c, d) {
				flagged[i] = true
				flagged[j] = true
			}
		}
	}
	var out []int
	for i, f := range flagged {
		if f {
			out = append(out, i)
		}
	}
	return out
}

// orient returns the sign of the cross product (b-a) x (c-a):
// 1 for counter-clockwise, -1 for clockwise, 0 for collinear.
func orient(a, b, c Vec2) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case v > epsilonArea:
		return 1
	case v < -epsilonArea:
		return -1
	default:
		return 0
	}
}

// epsilonArea absorbs rounding noise in orientation tests.
const epsilonArea = 1e-12

// onSegment reports whether p, known to be collinear with a-b, lies within
// the segment's bounding box.
func onSegment(a, b, p Vec2) bool {
	return p.X <= max(a.X, b.X) && p.X >= min(a.X, b.X) &&
		p.Y <= max(a.Y, b.Y) && p.Y >= min(a.Y, b.Y)
}

// segmentsIntersect reports whether segments a-b and c-d share any point.
func segmentsIntersect(a, b, c, d Vec2) bool {
	o1 := orient(a, b, c)
	o2 := orient(a, b, d)
	o3 := orient(c, d, a)
	o4 := orient(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == 0 && onSegment(a, b, c):
		return true
	case o2 == 0 && onSegment(a, b, d):
		return true
	case o3 == 0 && onSegment(c, d, a):
		return true
	case o4 == 0 && onSegment(c, d, b):
		return true
	}
	return false
}
