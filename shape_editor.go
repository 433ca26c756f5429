package polyedit

import (
	"log/slog"
	"slices"
)

// ShapeEditor is an EditListener that applies a follower's edit intents to a
// Shape:
//
//   - dragging an anchor moves the vertex, keeping the grab offset
//   - pressing on an edge inserts a vertex there and starts dragging it
//   - right-clicking an anchor removes the vertex (down to a triangle)
//
// After every change it refreshes the follower and re-flags self-intersecting
// edges.
type ShapeEditor struct {
	shape *Shape
	grab  Vec2

	// OnChange, if set, runs after every applied edit.
	OnChange func(f *PolygonFollower)
	// Logger receives debug lines for applied edits. Nil uses Logger().
	Logger *slog.Logger
}

// NewShapeEditor creates an editor for shape. Panics if shape is nil.
func NewShapeEditor(shape *Shape) *ShapeEditor {
	if shape == nil {
		panic("polyedit: nil shape in ShapeEditor")
	}
	return &ShapeEditor{shape: shape}
}

// Shape returns the edited shape.
func (e *ShapeEditor) Shape() *Shape { return e.shape }

// Validate flags f's self-intersecting edges.
func (e *ShapeEditor) Validate(f *PolygonFollower) {
	f.SetProblemEdges(FindSelfIntersections(f.Points()))
}

func (e *ShapeEditor) log() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return Logger()
}

// adopt makes the shape's single outline match the follower's merged
// points, so follower indices address shape vertices.
func (e *ShapeEditor) adopt(f *PolygonFollower) {
	pts := f.Points()
	if len(e.shape.rings) == 1 && slices.Equal(e.shape.Outline(), pts) {
		return
	}
	e.shape.SetOutline(pts)
}

func (e *ShapeEditor) changed(f *PolygonFollower) {
	f.RefreshGeometry()
	e.Validate(f)
	if e.OnChange != nil {
		e.OnChange(f)
	}
}

func (e *ShapeEditor) AnchorDown(f *PolygonFollower, anchor int, x, y float64) {
	f.SetSelectedAnchor(anchor)
	e.adopt(f)
	if out := e.shape.Outline(); anchor < len(out) {
		e.grab = out[anchor].Sub(Vec2{x, y})
	}
}

func (e *ShapeEditor) AnchorDragged(f *PolygonFollower, anchor int, x, y float64) {
	e.adopt(f)
	if !e.shape.MoveVertex(anchor, Vec2{x, y}.Add(e.grab)) {
		return
	}
	e.changed(f)
}

func (e *ShapeEditor) AnchorUp(f *PolygonFollower, anchor int, x, y float64, button MouseButton) {
	e.grab = Vec2{}
	if button != MouseButtonRight {
		return
	}
	e.adopt(f)
	if !e.shape.RemoveVertex(anchor) {
		return
	}
	e.log().Debug("vertex removed", "shape", e.shape.Name, "anchor", anchor)
	e.changed(f)
}

func (e *ShapeEditor) VertexDown(f *PolygonFollower, edge int, x, y float64) {
	e.adopt(f)
	i := e.shape.InsertVertex(edge, Vec2{x, y})
	if i == NoIndex {
		return
	}
	e.grab = Vec2{}
	e.log().Debug("vertex inserted", "shape", e.shape.Name, "edge", edge, "anchor", i)
	e.changed(f)
	f.SetSelectedAnchor(i)
	f.BeginDrag(i)
}

func (e *ShapeEditor) VertexUp(*PolygonFollower, int, float64, float64) {}
