package polyedit

import (
	"log/slog"
	"math"
	"slices"
)

// PolygonSource supplies the rings of an entity's polygon. Rings returns nil
// when the entity has no geometry.
type PolygonSource interface {
	Rings() [][]Vec2
}

// TransformSource supplies the entity's non-uniform scale and flip flags.
type TransformSource interface {
	Scale() (sx, sy float64)
	Flip() (fx, fy bool)
}

// FollowerConfig wires a PolygonFollower to its collaborators. Every field is
// optional; see NewPolygonFollower for the fallbacks.
type FollowerConfig struct {
	Name         string
	Source       PolygonSource
	Transform    TransformSource
	View         View
	Merger       RingMerger
	Triangulator Triangulator
	Listener     EditListener
	Style        Style
	Logger       *slog.Logger
	// Offset is the parent container's pixel offset.
	Offset Vec2
}

// PolygonFollower is an editing overlay for one entity's polygon. It caches
// the merged outline, draws it with guides and anchors, and turns pointer
// input into edit intents delivered to its EditListener.
//
// A follower is not safe for concurrent use; drive it from the game loop.
type PolygonFollower struct {
	name         string
	source       PolygonSource
	transform    TransformSource
	view         View
	merger       RingMerger
	triangulator Triangulator
	listener     EditListener
	style        Style
	logger       *slog.Logger
	offset       Vec2

	originalPoints []Vec2    // merged outline, model space
	drawPoints     []Vec2    // originalPoints with scale/flip applied
	guides         [][3]Vec2 // triangulation of originalPoints, model space
	screenPoints   []Vec2    // per-frame render buffer

	selected    int
	dragging    int
	hoveredEdge int
	problems    map[int]struct{}
}

// NewPolygonFollower creates a follower and loads its geometry.
//
// Nil collaborators fall back to: no geometry, identity transform, identity
// view, ClipperMerger, FanTriangulator and a listener that ignores every
// call. A zero Style means DefaultStyle; zero sizes in a custom Style are
// filled from it. A nil Logger uses Logger().
func NewPolygonFollower(cfg FollowerConfig) *PolygonFollower {
	f := &PolygonFollower{
		name:         cfg.Name,
		source:       cfg.Source,
		transform:    cfg.Transform,
		view:         cfg.View,
		merger:       cfg.Merger,
		triangulator: cfg.Triangulator,
		listener:     cfg.Listener,
		style:        cfg.Style,
		logger:       cfg.Logger,
		offset:       cfg.Offset,
		selected:     NoIndex,
		dragging:     NoIndex,
		hoveredEdge:  NoIndex,
	}
	if f.view == nil {
		f.view = identityView{}
	}
	if f.merger == nil {
		f.merger = ClipperMerger{Logger: cfg.Logger}
	}
	if f.triangulator == nil {
		f.triangulator = FanTriangulator{}
	}
	if f.listener == nil {
		f.listener = ListenerFuncs{}
	}
	if f.style == (Style{}) {
		f.style = DefaultStyle()
	}
	f.style = f.style.withDefaults()
	if f.logger == nil {
		f.logger = Logger()
	}
	if f.name != "" {
		f.logger = f.logger.With("follower", f.name)
	}
	f.RefreshGeometry()
	return f
}

// Name returns the follower's name.
func (f *PolygonFollower) Name() string { return f.name }

// Style returns the follower's effective style.
func (f *PolygonFollower) Style() Style { return f.style }

// SetOffset sets the parent container's pixel offset.
func (f *PolygonFollower) SetOffset(offset Vec2) { f.offset = offset }

// Offset returns the parent container's pixel offset.
func (f *PolygonFollower) Offset() Vec2 { return f.offset }

// SetView replaces the camera the follower projects through. Nil restores
// the identity view.
func (f *PolygonFollower) SetView(v View) {
	if v == nil {
		v = identityView{}
	}
	f.view = v
}

// SetListener replaces the edit listener. Nil silences the follower.
func (f *PolygonFollower) SetListener(l EditListener) {
	if l == nil {
		l = ListenerFuncs{}
	}
	f.listener = l
}

// RefreshGeometry re-reads the source rings, merges them into one outline and
// rebuilds the draw cache and triangulation guides. Call it whenever the
// source polygon changes.
//
// With no source geometry the follower becomes empty and every index
// resets to NoIndex. Otherwise indices are clamped into the new bounds and
// the selection defaults to anchor 0. A drag in progress survives the
// refresh, so its release still reports AnchorUp.
func (f *PolygonFollower) RefreshGeometry() {
	var rings [][]Vec2
	if f.source != nil {
		rings = f.source.Rings()
	}
	if len(rings) == 0 {
		f.reset()
		return
	}

	f.originalPoints = f.merger.MergeTouchingRings(rings)
	n := len(f.originalPoints)
	if n == 0 {
		f.reset()
		return
	}
	f.syncDrawPoints()

	f.guides = f.guides[:0]
	tris, err := f.triangulator.Triangulate(f.originalPoints)
	if err != nil {
		f.logger.Debug("triangulation failed, guides disabled", "points", n, "err", err)
	} else {
		f.guides = append(f.guides, tris...)
	}

	switch {
	case f.selected < 0:
		f.selected = 0
	case f.selected >= n:
		f.selected = n - 1
	}
	if f.dragging >= n {
		f.dragging = n - 1
	}
	if f.hoveredEdge >= edgeCount(n) {
		f.hoveredEdge = NoIndex
	}
	for i := range f.problems {
		if i >= edgeCount(n) {
			delete(f.problems, i)
		}
	}
	f.logger.Debug("geometry refreshed", "rings", len(rings), "points", n, "guides", len(f.guides))
}

func (f *PolygonFollower) reset() {
	f.originalPoints = nil
	f.drawPoints = f.drawPoints[:0]
	f.guides = f.guides[:0]
	f.selected = NoIndex
	f.dragging = NoIndex
	f.hoveredEdge = NoIndex
	clear(f.problems)
}

// syncDrawPoints regenerates the draw cache from the original points using
// the current transform source, reusing the buffer.
func (f *PolygonFollower) syncDrawPoints() []Vec2 {
	et := newEntityTransform(f.transform)
	f.drawPoints = f.drawPoints[:0]
	for _, p := range f.originalPoints {
		f.drawPoints = append(f.drawPoints, et.apply(p))
	}
	return f.drawPoints
}

// worldBounds returns the outline's bounding rect in camera world pixels,
// before the view is applied. ok is false for an empty follower.
func (f *PolygonFollower) worldBounds() (r Rect, ok bool) {
	if len(f.originalPoints) == 0 {
		return Rect{}, false
	}
	ppu := f.style.PixelsPerUnit
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range f.syncDrawPoints() {
		x := p.X*ppu + f.offset.X
		y := p.Y*ppu + f.offset.Y
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// projection maps entity world units to screen pixels. Drawing applies it
// and hit-testing inverts it.
func (f *PolygonFollower) projection() [6]float64 {
	return projectionMatrix(f.view.Combined(), f.offset, f.style.PixelsPerUnit)
}

// screenToWorld converts a pointer position to entity world units and
// returns the hit radius in the same units: AnchorRadius pixels divided by
// pixels-per-unit and the view's zoom. ok is false when the projection is
// degenerate.
func (f *PolygonFollower) screenToWorld(x, y float64) (p Vec2, radius float64, ok bool) {
	m := f.projection()
	unit := f.style.PixelsPerUnit * f.view.ZoomFactor()
	if matrixScale(m) < 1e-12 || unit < 1e-12 {
		return Vec2{}, 0, false
	}
	wx, wy := transformPoint(invertAffine(m), x, y)
	return Vec2{wx, wy}, f.style.AnchorRadius / unit, true
}

// ScreenToModel converts a pointer position to the polygon's model space,
// the space edit events report in.
func (f *PolygonFollower) ScreenToModel(x, y float64) Vec2 {
	p, _, _ := f.screenToWorld(x, y)
	return newEntityTransform(f.transform).invert(p)
}

// ModelToScreen converts a model-space point to screen pixels.
func (f *PolygonFollower) ModelToScreen(p Vec2) Vec2 {
	w := newEntityTransform(f.transform).apply(p)
	sx, sy := transformPoint(f.projection(), w.X, w.Y)
	return Vec2{sx, sy}
}

// HitTest reports which anchor and edge lie under the screen position
// (x, y). The hit radius is Style.AnchorRadius pixels at any zoom. HitTest
// does not change hover state; the pointer handlers do that.
func (f *PolygonFollower) HitTest(x, y float64) HitResult {
	if len(f.originalPoints) == 0 {
		return noHit
	}
	p, radius, ok := f.screenToWorld(x, y)
	if !ok {
		return noHit
	}
	return hitPoints(f.syncDrawPoints(), p, radius)
}

// PointerMove updates hover state for a pointer at (x, y) with no button
// held. An anchor under the pointer clears the edge hover.
func (f *PolygonFollower) PointerMove(x, y float64) {
	f.setHover(f.HitTest(x, y))
}

// setHover records the edge under the pointer. Anchors win over edges.
func (f *PolygonFollower) setHover(hit HitResult) {
	if hit.Anchor != NoIndex {
		f.hoveredEdge = NoIndex
		return
	}
	f.hoveredEdge = hit.Edge
}

// PointerDown handles a press at (x, y). A left press on an anchor starts a
// drag and emits AnchorDown; a left press on an edge emits VertexDown.
// It reports whether the press landed on the follower's geometry.
func (f *PolygonFollower) PointerDown(x, y float64, button MouseButton) bool {
	hit := f.HitTest(x, y)
	f.setHover(hit)
	if hit.Miss() {
		return false
	}
	if button != MouseButtonLeft {
		return true
	}
	m := f.ScreenToModel(x, y)
	if hit.Anchor != NoIndex {
		f.dragging = hit.Anchor
		f.logger.Debug("anchor down", "anchor", hit.Anchor, "x", m.X, "y", m.Y)
		f.listener.AnchorDown(f, hit.Anchor, m.X, m.Y)
		return true
	}
	f.logger.Debug("vertex down", "edge", hit.Edge, "x", m.X, "y", m.Y)
	f.listener.VertexDown(f, hit.Edge, m.X, m.Y)
	return true
}

// PointerDrag handles pointer motion with a button held. While an anchor is
// being dragged it emits AnchorDragged and reports true.
func (f *PolygonFollower) PointerDrag(x, y float64) bool {
	if f.dragging == NoIndex {
		return false
	}
	m := f.ScreenToModel(x, y)
	f.listener.AnchorDragged(f, f.dragging, m.X, m.Y)
	return true
}

// PointerUp handles a release at (x, y). It emits AnchorUp for the dragged
// anchor, or else for an anchor under the pointer, or VertexUp for an edge
// under the pointer. The drag always ends, wherever the release happens.
func (f *PolygonFollower) PointerUp(x, y float64, button MouseButton) bool {
	hit := f.HitTest(x, y)
	f.setHover(hit)
	anchor := hit.Anchor
	if f.dragging != NoIndex {
		anchor = f.dragging
	}
	f.dragging = NoIndex

	m := f.ScreenToModel(x, y)
	switch {
	case anchor != NoIndex:
		f.logger.Debug("anchor up", "anchor", anchor, "button", button, "x", m.X, "y", m.Y)
		f.listener.AnchorUp(f, anchor, m.X, m.Y, button)
		return true
	case hit.Edge != NoIndex:
		f.logger.Debug("vertex up", "edge", hit.Edge, "x", m.X, "y", m.Y)
		f.listener.VertexUp(f, hit.Edge, m.X, m.Y)
		return true
	}
	return false
}

// CancelDrag ends an anchor drag without emitting AnchorUp.
func (f *PolygonFollower) CancelDrag() { f.dragging = NoIndex }

// BeginDrag starts dragging anchor i as though it had been pressed. Used by
// listeners that insert a vertex and want the same gesture to move it.
// Out-of-range indices are ignored.
func (f *PolygonFollower) BeginDrag(i int) {
	if i >= 0 && i < len(f.originalPoints) {
		f.dragging = i
		f.hoveredEdge = NoIndex
	}
}

// SetSelectedAnchor selects anchor i. Indices outside [0, n) are ignored.
func (f *PolygonFollower) SetSelectedAnchor(i int) {
	if i < 0 || i >= len(f.originalPoints) {
		return
	}
	f.selected = i
}

// SetProblemEdges replaces the set of edges flagged as self-intersecting.
// Nil or empty clears it. Indices are checked against the geometry loaded
// now: flags set on an empty follower are dropped, not kept for a later
// RefreshGeometry, which in turn drops flags on edges that no longer exist.
func (f *PolygonFollower) SetProblemEdges(edges []int) {
	clear(f.problems)
	n := edgeCount(len(f.originalPoints))
	for _, e := range edges {
		if e < 0 || e >= n {
			continue
		}
		if f.problems == nil {
			f.problems = make(map[int]struct{}, len(edges))
		}
		f.problems[e] = struct{}{}
	}
}

// Points returns a copy of the merged outline in model space.
func (f *PolygonFollower) Points() []Vec2 {
	return slices.Clone(f.originalPoints)
}

// Len returns the number of anchors.
func (f *PolygonFollower) Len() int { return len(f.originalPoints) }

// SelectedAnchor returns the selected anchor index or NoIndex.
func (f *PolygonFollower) SelectedAnchor() int { return f.selected }

// DraggingAnchor returns the anchor being dragged or NoIndex.
func (f *PolygonFollower) DraggingAnchor() int { return f.dragging }

// HoveredEdge returns the edge under the pointer or NoIndex.
func (f *PolygonFollower) HoveredEdge() int { return f.hoveredEdge }

// HasProblems reports whether any edge is flagged.
func (f *PolygonFollower) HasProblems() bool { return len(f.problems) > 0 }

// IsProblemEdge reports whether edge i is flagged.
func (f *PolygonFollower) IsProblemEdge(i int) bool {
	_, ok := f.problems[i]
	return ok
}

// ProblemEdges returns the flagged edge indices in ascending order.
func (f *PolygonFollower) ProblemEdges() []int {
	if len(f.problems) == 0 {
		return nil
	}
	out := make([]int, 0, len(f.problems))
	for i := range f.problems {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Guides returns the triangulation guides in model space.
func (f *PolygonFollower) Guides() [][3]Vec2 {
	return slices.Clone(f.guides)
}
