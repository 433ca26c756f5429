package polyedit

// anchorCoreColor fills the inside of an anchor marker, leaving a one pixel
// border in the anchor color.
var anchorCoreColor = Color{0, 0, 0, 1}

// Render draws the overlay onto d: triangulation guides (only while no edge
// is flagged), then outline edges, then anchor markers. Sizes come from the
// follower's Style and are screen pixels at any zoom. An empty follower draws
// nothing.
func (f *PolygonFollower) Render(d ShapeDrawer) {
	if d == nil || len(f.originalPoints) == 0 {
		return
	}
	m := f.projection()
	et := newEntityTransform(f.transform)
	toScreen := func(p Vec2) Vec2 {
		x, y := transformPoint(m, p.X, p.Y)
		return Vec2{x, y}
	}

	f.screenPoints = f.screenPoints[:0]
	for _, p := range f.syncDrawPoints() {
		f.screenPoints = append(f.screenPoints, toScreen(p))
	}
	pts := f.screenPoints
	st := &f.style

	if !f.HasProblems() {
		for _, tri := range f.guides {
			a := toScreen(et.apply(tri[0]))
			b := toScreen(et.apply(tri[1]))
			c := toScreen(et.apply(tri[2]))
			d.Line(a.X, a.Y, b.X, b.Y, st.GuideWidth, st.GuideColor)
			d.Line(b.X, b.Y, c.X, c.Y, st.GuideWidth, st.GuideColor)
			d.Line(c.X, c.Y, a.X, a.Y, st.GuideWidth, st.GuideColor)
		}
	}

	for i := range edgeCount(len(pts)) {
		a, b := edgeEnds(pts, i)
		d.Line(a.X, a.Y, b.X, b.Y, st.LineWidth, f.edgeColor(i))
	}

	half := st.AnchorSize / 2
	for i, p := range pts {
		c := st.AnchorColor
		if i == f.selected {
			c = st.SelectedAnchorColor
		}
		d.FilledRect(p.X-half, p.Y-half, st.AnchorSize, st.AnchorSize, c)
		if st.AnchorSize > 2 {
			d.FilledRect(p.X-half+1, p.Y-half+1, st.AnchorSize-2, st.AnchorSize-2, anchorCoreColor)
		}
	}
}

// edgeColor picks the outline color for edge i. Problem wins over hover, and
// hover is hidden while an anchor is being dragged.
func (f *PolygonFollower) edgeColor(i int) Color {
	switch {
	case f.IsProblemEdge(i):
		return f.style.ProblemColor
	case i == f.hoveredEdge && f.dragging == NoIndex:
		return f.style.HoverColor
	default:
		return f.style.OutlineColor
	}
}
