package polyedit

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// IntersectsSegment reports whether the segment a-b passes through the circle.
func (c HitCircle) IntersectsSegment(a, b Vec2) bool {
	return segmentDistanceSq(Vec2{c.CenterX, c.CenterY}, a, b) <= c.Radius*c.Radius
}

// HitResult is the outcome of a follower hit-test. Both indices are NoIndex
// when nothing was hit. When Anchor is set it takes priority over Edge.
type HitResult struct {
	Anchor int
	Edge   int
}

// noHit is the HitResult for a miss.
var noHit = HitResult{Anchor: NoIndex, Edge: NoIndex}

// Miss reports whether neither an anchor nor an edge was hit.
func (r HitResult) Miss() bool {
	return r.Anchor == NoIndex && r.Edge == NoIndex
}

// edgeCount returns the number of edges in a closed loop of n points.
// Two points form a single edge; the closing edge would duplicate it.
func edgeCount(n int) int {
	switch {
	case n < 2:
		return 0
	case n == 2:
		return 1
	default:
		return n
	}
}

// edgeEnds returns the endpoints of edge i: points[i] to points[(i+1)%n].
func edgeEnds(points []Vec2, i int) (Vec2, Vec2) {
	return points[i], points[(i+1)%len(points)]
}

// segmentDistanceSq returns the squared distance from p to the segment a-b.
func segmentDistanceSq(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return ap.Dot(ap)
	}
	t := ap.Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	d := ap.Sub(ab.Scale(t))
	return d.Dot(d)
}

// nearestAnchor returns the index of the point inside c closest to its
// center, or NoIndex. Ties resolve to the lower index.
func nearestAnchor(points []Vec2, c HitCircle) int {
	best := NoIndex
	var bestSq float64
	for i, pt := range points {
		if !c.Contains(pt.X, pt.Y) {
			continue
		}
		d := pt.Sub(Vec2{c.CenterX, c.CenterY})
		if dsq := d.Dot(d); best == NoIndex || dsq < bestSq {
			best = i
			bestSq = dsq
		}
	}
	return best
}

// nearestEdge returns the index of the edge crossing c closest to its
// center, or NoIndex. Ties resolve to the lower index.
func nearestEdge(points []Vec2, c HitCircle) int {
	best := NoIndex
	var bestSq float64
	center := Vec2{c.CenterX, c.CenterY}
	for i := range edgeCount(len(points)) {
		a, b := edgeEnds(points, i)
		if !c.IntersectsSegment(a, b) {
			continue
		}
		if dsq := segmentDistanceSq(center, a, b); best == NoIndex || dsq < bestSq {
			best = i
			bestSq = dsq
		}
	}
	return best
}

// hitPoints runs anchor and edge queries against points in world units.
func hitPoints(points []Vec2, p Vec2, radius float64) HitResult {
	if len(points) == 0 || radius <= 0 {
		return noHit
	}
	c := HitCircle{CenterX: p.X, CenterY: p.Y, Radius: radius}
	return HitResult{
		Anchor: nearestAnchor(points, c),
		Edge:   nearestEdge(points, c),
	}
}
