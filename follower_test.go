package polyedit

import (
	"errors"
	"slices"
	"testing"
)

// eventRecorder collects edit events through EventListener.
type eventRecorder struct {
	events []EditEvent
}

func (r *eventRecorder) EmitEdit(e EditEvent) { r.events = append(r.events, e) }

func (r *eventRecorder) types() []EditEventType {
	out := make([]EditEventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// staticSource is a PolygonSource over fixed rings.
type staticSource [][]Vec2

func (s staticSource) Rings() [][]Vec2 { return s }

// failingTriangulator always returns an error.
type failingTriangulator struct{}

func (failingTriangulator) Triangulate([]Vec2) ([][3]Vec2, error) {
	return nil, errors.New("boom")
}

var triangle = []Vec2{{0, 0}, {1, 0}, {0, 1}}

// newTestFollower builds a follower over points with the default style
// (100 pixels per unit, 10 pixel hit radius) and no camera, so model (x, y)
// appears at screen (100x, 100y).
func newTestFollower(points []Vec2) (*PolygonFollower, *eventRecorder) {
	rec := &eventRecorder{}
	f := NewPolygonFollower(FollowerConfig{
		Name:     "test",
		Source:   staticSource{points},
		Listener: EventListener(rec),
	})
	return f, rec
}

func TestNewPolygonFollowerDefaults(t *testing.T) {
	f := NewPolygonFollower(FollowerConfig{})
	if f.Len() != 0 {
		t.Errorf("Len = %d, want 0", f.Len())
	}
	if f.SelectedAnchor() != NoIndex || f.DraggingAnchor() != NoIndex || f.HoveredEdge() != NoIndex {
		t.Error("indices should all be NoIndex for an empty follower")
	}
	if f.Style() != DefaultStyle() {
		t.Error("zero Style should become DefaultStyle")
	}
}

func TestRefreshGeometrySelectsFirstAnchor(t *testing.T) {
	f, _ := newTestFollower(triangle)
	if f.Len() != 3 {
		t.Fatalf("Len = %d, want 3", f.Len())
	}
	if f.SelectedAnchor() != 0 {
		t.Errorf("SelectedAnchor = %d, want 0", f.SelectedAnchor())
	}
	if got := len(f.Guides()); got != 1 {
		t.Errorf("guides = %d, want 1", got)
	}
}

func TestRefreshGeometryClampsIndices(t *testing.T) {
	shape := NewShape("s", []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {-1, 0.5}})
	f := NewPolygonFollower(FollowerConfig{Source: shape})
	f.SetSelectedAnchor(4)
	f.SetProblemEdges([]int{4})

	shape.SetOutline([]Vec2{{0, 0}, {1, 0}, {1, 1}})
	f.RefreshGeometry()

	if f.SelectedAnchor() != 2 {
		t.Errorf("SelectedAnchor = %d, want 2", f.SelectedAnchor())
	}
	if f.HasProblems() {
		t.Errorf("ProblemEdges = %v, want none", f.ProblemEdges())
	}
}

func TestRefreshGeometryEmptySource(t *testing.T) {
	shape := NewShape("s", triangle)
	f := NewPolygonFollower(FollowerConfig{Source: shape})
	f.SetProblemEdges([]int{1})

	shape.SetOutline(nil)
	f.RefreshGeometry()

	if f.Len() != 0 || f.Points() != nil {
		t.Errorf("Points = %v, want none", f.Points())
	}
	if f.SelectedAnchor() != NoIndex {
		t.Errorf("SelectedAnchor = %d, want NoIndex", f.SelectedAnchor())
	}
	if f.HasProblems() {
		t.Error("problems should clear with the geometry")
	}

	d := &recordingDrawer{}
	f.Render(d)
	if len(d.calls) != 0 {
		t.Errorf("Render drew %d shapes, want 0", len(d.calls))
	}
	for _, p := range []Vec2{{0, 0}, {50, 0}, {100, 0}, {-3, 7}} {
		if r := f.HitTest(p.X, p.Y); !r.Miss() {
			t.Errorf("HitTest(%v) = %+v, want miss", p, r)
		}
	}
	if f.PointerDown(0, 0, MouseButtonLeft) || f.PointerUp(0, 0, MouseButtonLeft) {
		t.Error("pointer handlers should not consume input on an empty follower")
	}
}

func TestTriangulatorErrorDisablesGuides(t *testing.T) {
	f := NewPolygonFollower(FollowerConfig{
		Source:       staticSource{triangle},
		Triangulator: failingTriangulator{},
	})
	if f.Len() != 3 {
		t.Fatalf("Len = %d, want 3", f.Len())
	}
	if len(f.Guides()) != 0 {
		t.Errorf("guides = %d, want 0", len(f.Guides()))
	}
}

func TestHitTestAnchorAtEveryPoint(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y, cam.Zoom, cam.Rotation = 30, -20, 2.5, 0.35

	tests := []struct {
		name   string
		points []Vec2
		ts     TransformSource
		view   View
	}{
		{"triangle", triangle, nil, nil},
		{"segment", []Vec2{{0, 0}, {2, 1}}, nil, nil},
		{"pentagon camera", []Vec2{{0, 0}, {2, 0}, {2.5, 1.5}, {1, 2.5}, {-0.5, 1.5}}, nil, cam},
		{"flipped scaled", []Vec2{{0, 0}, {1, 0}, {1, 2}, {0, 2}}, fixedTransform{sx: 1.5, sy: 0.5, fx: true}, cam},
		{"coincident", []Vec2{{0, 0}, {1, 0}, {1, 0}, {0, 1}}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPolygonFollower(FollowerConfig{
				Source:    staticSource{tt.points},
				Transform: tt.ts,
				View:      tt.view,
				Offset:    Vec2{300, 200},
			})
			for i, p := range tt.points {
				s := f.ModelToScreen(p)
				got := f.HitTest(s.X, s.Y).Anchor
				want := slices.Index(tt.points, p)
				if got != want {
					t.Errorf("HitTest at point %d = anchor %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestHitTestMissesBeyondRadius(t *testing.T) {
	f, _ := newTestFollower(triangle)
	// Screen outline: (0,0), (100,0), (0,100). Radius is 10 pixels.
	for _, p := range []Vec2{{-11, -11}, {111, 0}, {50, -10.5}, {60, 60}, {-10.5, 50}, {200, 200}} {
		if r := f.HitTest(p.X, p.Y); !r.Miss() {
			t.Errorf("HitTest(%v) = %+v, want miss", p, r)
		}
	}
}

func TestHitTestAnchorPriority(t *testing.T) {
	f, rec := newTestFollower(triangle)

	r := f.HitTest(100, 3)
	if r.Anchor != 1 {
		t.Fatalf("Anchor = %d, want 1", r.Anchor)
	}
	if r.Edge == NoIndex {
		t.Fatal("edge should also be in range at a vertex")
	}

	f.PointerDown(100, 3, MouseButtonLeft)
	if got := rec.types(); !slices.Equal(got, []EditEventType{EventAnchorDown}) {
		t.Errorf("events = %v, want [anchor-down]", got)
	}
}

func TestTriangleScenario(t *testing.T) {
	f, _ := newTestFollower(triangle)

	if r := f.HitTest(5, 5); r.Anchor != 0 {
		t.Errorf("near vertex 0: anchor = %d, want 0", r.Anchor)
	}

	// Midpoint of the edge from vertex 1 to vertex 2.
	r := f.HitTest(50, 50)
	if r.Anchor != NoIndex {
		t.Errorf("edge midpoint: anchor = %d, want NoIndex", r.Anchor)
	}
	if r.Edge != 1 {
		t.Errorf("edge midpoint: edge = %d, want 1", r.Edge)
	}
}

func TestHitTestIsPure(t *testing.T) {
	f, _ := newTestFollower(triangle)
	f.PointerMove(50, 0)
	if f.HoveredEdge() != 0 {
		t.Fatalf("HoveredEdge = %d, want 0", f.HoveredEdge())
	}
	f.HitTest(50, 50)
	f.HitTest(500, 500)
	if f.HoveredEdge() != 0 {
		t.Errorf("HitTest changed HoveredEdge to %d", f.HoveredEdge())
	}
}

func TestPointerMoveHover(t *testing.T) {
	f, rec := newTestFollower(triangle)

	f.PointerMove(50, 50)
	if f.HoveredEdge() != 1 {
		t.Errorf("over edge: HoveredEdge = %d, want 1", f.HoveredEdge())
	}
	f.PointerMove(0, 0)
	if f.HoveredEdge() != NoIndex {
		t.Errorf("over anchor: HoveredEdge = %d, want NoIndex", f.HoveredEdge())
	}
	f.PointerMove(50, 50)
	f.PointerMove(300, 300)
	if f.HoveredEdge() != NoIndex {
		t.Errorf("away: HoveredEdge = %d, want NoIndex", f.HoveredEdge())
	}
	if len(rec.events) != 0 {
		t.Errorf("PointerMove emitted %d events", len(rec.events))
	}
}

func TestAnchorPressClearsEdgeHover(t *testing.T) {
	f, _ := newTestFollower(triangle)
	st := f.Style()

	f.PointerMove(50, 0)
	if f.HoveredEdge() != 0 {
		t.Fatalf("HoveredEdge = %d, want 0", f.HoveredEdge())
	}
	// Edges 0 and 2 also pass within the radius of anchor 0.
	f.PointerDown(0, 0, MouseButtonLeft)
	if f.HoveredEdge() != NoIndex {
		t.Errorf("after press: HoveredEdge = %d, want NoIndex", f.HoveredEdge())
	}
	f.PointerUp(0, 0, MouseButtonLeft)
	if f.HoveredEdge() != NoIndex {
		t.Errorf("after release: HoveredEdge = %d, want NoIndex", f.HoveredEdge())
	}
	for i := range 3 {
		if c := f.edgeColor(i); c != st.OutlineColor {
			t.Errorf("edge %d color = %v, want outline", i, c)
		}
	}

	f.PointerDown(50, 0, MouseButtonLeft)
	f.PointerUp(50, 0, MouseButtonLeft)
	if f.HoveredEdge() != 0 {
		t.Errorf("edge release: HoveredEdge = %d, want 0", f.HoveredEdge())
	}
}

func TestRefreshKeepsDragInBounds(t *testing.T) {
	rec := &eventRecorder{}
	shape := NewShape("s", unitSquare)
	f := NewPolygonFollower(FollowerConfig{Source: shape, Listener: EventListener(rec)})

	f.PointerDown(0, 100, MouseButtonLeft)
	if f.DraggingAnchor() != 3 {
		t.Fatalf("DraggingAnchor = %d, want 3", f.DraggingAnchor())
	}
	shape.SetOutline(triangle)
	f.RefreshGeometry()
	if f.DraggingAnchor() != 2 {
		t.Fatalf("DraggingAnchor = %d after shrinking, want 2", f.DraggingAnchor())
	}

	f.PointerUp(500, 500, MouseButtonLeft)
	want := []EditEventType{EventAnchorDown, EventAnchorUp}
	if got := rec.types(); !slices.Equal(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if rec.events[1].Index != 2 {
		t.Errorf("anchor-up index = %d, want 2", rec.events[1].Index)
	}
}

func TestDragScenario(t *testing.T) {
	f, rec := newTestFollower(triangle)

	if !f.PointerDown(100, 0, MouseButtonLeft) {
		t.Fatal("PointerDown on anchor not consumed")
	}
	if f.DraggingAnchor() != 1 {
		t.Fatalf("DraggingAnchor = %d, want 1", f.DraggingAnchor())
	}
	for _, p := range []Vec2{{120, 10}, {140, 20}, {160, 30}} {
		if !f.PointerDrag(p.X, p.Y) {
			t.Fatalf("PointerDrag(%v) not consumed", p)
		}
	}
	// Release far from any geometry.
	if !f.PointerUp(900, 900, MouseButtonLeft) {
		t.Error("PointerUp after drag not consumed")
	}

	want := []EditEventType{EventAnchorDown, EventAnchorDragged, EventAnchorDragged, EventAnchorDragged, EventAnchorUp}
	if got := rec.types(); !slices.Equal(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i, e := range rec.events {
		if e.Index != 1 {
			t.Errorf("event %d index = %d, want 1", i, e.Index)
		}
		if e.Follower != "test" {
			t.Errorf("event %d follower = %q", i, e.Follower)
		}
	}
	for i := 2; i <= 3; i++ {
		prev, cur := rec.events[i-1], rec.events[i]
		if cur.X <= prev.X || cur.Y <= prev.Y {
			t.Errorf("drag %d did not advance: (%v,%v) -> (%v,%v)", i, prev.X, prev.Y, cur.X, cur.Y)
		}
	}
	assertNear(t, "last drag x", rec.events[3].X, 1.6)
	assertNear(t, "last drag y", rec.events[3].Y, 0.3)
	assertNear(t, "up x", rec.events[4].X, 9)
	if f.DraggingAnchor() != NoIndex {
		t.Errorf("DraggingAnchor = %d after release, want NoIndex", f.DraggingAnchor())
	}
}

func TestPointerDownOnEdgeEmitsVertexDown(t *testing.T) {
	f, rec := newTestFollower(triangle)
	if !f.PointerDown(50, 50, MouseButtonLeft) {
		t.Fatal("PointerDown on edge not consumed")
	}
	if f.DraggingAnchor() != NoIndex {
		t.Error("edge press should not start a drag")
	}
	if len(rec.events) != 1 || rec.events[0].Type != EventVertexDown || rec.events[0].Index != 1 {
		t.Fatalf("events = %+v, want one vertex-down on edge 1", rec.events)
	}
	assertNear(t, "x", rec.events[0].X, 0.5)
	assertNear(t, "y", rec.events[0].Y, 0.5)

	f.PointerUp(50, 50, MouseButtonLeft)
	if last := rec.events[len(rec.events)-1]; last.Type != EventVertexUp || last.Index != 1 {
		t.Errorf("last event = %+v, want vertex-up on edge 1", last)
	}
}

func TestPointerDownMiss(t *testing.T) {
	f, rec := newTestFollower(triangle)
	f.PointerMove(50, 0)
	if f.PointerDown(400, 400, MouseButtonLeft) {
		t.Error("PointerDown away from geometry consumed")
	}
	if f.HoveredEdge() != NoIndex {
		t.Errorf("HoveredEdge = %d, want NoIndex", f.HoveredEdge())
	}
	if f.PointerDrag(410, 410) {
		t.Error("PointerDrag without a drag consumed")
	}
	if len(rec.events) != 0 {
		t.Errorf("events = %v, want none", rec.types())
	}
}

func TestRightButtonDoesNotDrag(t *testing.T) {
	f, rec := newTestFollower(triangle)
	if !f.PointerDown(0, 100, MouseButtonRight) {
		t.Fatal("right press on anchor not consumed")
	}
	if f.DraggingAnchor() != NoIndex {
		t.Error("right press started a drag")
	}
	f.PointerUp(0, 100, MouseButtonRight)

	if len(rec.events) != 1 {
		t.Fatalf("events = %v, want one anchor-up", rec.types())
	}
	e := rec.events[0]
	if e.Type != EventAnchorUp || e.Index != 2 || e.Button != MouseButtonRight {
		t.Errorf("event = %+v, want anchor-up on 2 with right button", e)
	}
}

func TestConstantPixelHitRadius(t *testing.T) {
	for _, zoom := range []float64{0.25, 1, 4} {
		cam := NewCamera(Rect{Width: 800, Height: 600})
		cam.Zoom = zoom
		f := NewPolygonFollower(FollowerConfig{Source: staticSource{triangle}, View: cam})
		s := f.ModelToScreen(Vec2{1, 0})

		if r := f.HitTest(s.X+9, s.Y); r.Anchor != 1 {
			t.Errorf("zoom %v: 9px away anchor = %d, want 1", zoom, r.Anchor)
		}
		if r := f.HitTest(s.X+11, s.Y); r.Anchor != NoIndex {
			t.Errorf("zoom %v: 11px away anchor = %d, want NoIndex", zoom, r.Anchor)
		}
	}
}

func TestEventsReportModelSpace(t *testing.T) {
	rec := &eventRecorder{}
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = 2
	cam.Rotation = 0.5
	f := NewPolygonFollower(FollowerConfig{
		Source:    staticSource{[]Vec2{{0, 0}, {2, 0}, {2, 1}, {0, 1}}},
		Transform: fixedTransform{sx: 3, sy: 0.5, fx: true, fy: true},
		View:      cam,
		Offset:    Vec2{40, -60},
		Listener:  EventListener(rec),
	})

	s := f.ModelToScreen(Vec2{2, 1})
	f.PointerDown(s.X, s.Y, MouseButtonLeft)
	if len(rec.events) != 1 || rec.events[0].Index != 2 {
		t.Fatalf("events = %+v, want anchor-down on 2", rec.events)
	}
	assertVec(t, "model", Vec2{rec.events[0].X, rec.events[0].Y}, Vec2{2, 1})
	assertVec(t, "ScreenToModel", f.ScreenToModel(s.X, s.Y), Vec2{2, 1})
}

func TestSetSelectedAnchor(t *testing.T) {
	f, _ := newTestFollower(triangle)
	f.SetSelectedAnchor(2)
	if f.SelectedAnchor() != 2 {
		t.Fatalf("SelectedAnchor = %d, want 2", f.SelectedAnchor())
	}
	for _, i := range []int{-1, -5, 3, 100} {
		f.SetSelectedAnchor(i)
		if f.SelectedAnchor() != 2 {
			t.Errorf("SetSelectedAnchor(%d) changed selection to %d", i, f.SelectedAnchor())
		}
	}
}

func TestSetProblemEdges(t *testing.T) {
	f, _ := newTestFollower(triangle)

	f.SetProblemEdges([]int{2, 0, 7, -1, 2})
	if got := f.ProblemEdges(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("ProblemEdges = %v, want [0 2]", got)
	}
	if !f.IsProblemEdge(2) || f.IsProblemEdge(1) {
		t.Error("IsProblemEdge mismatch")
	}

	f.SetProblemEdges(nil)
	if f.HasProblems() {
		t.Error("nil should clear problems")
	}
	f.SetProblemEdges([]int{1})
	f.SetProblemEdges([]int{})
	if f.HasProblems() {
		t.Error("empty slice should clear problems")
	}
}

func TestSetProblemEdgesBeforeGeometry(t *testing.T) {
	shape := NewShape("late", nil)
	f := NewPolygonFollower(FollowerConfig{Source: shape})
	f.SetProblemEdges([]int{0, 1})
	if f.HasProblems() {
		t.Error("flags kept on an empty follower")
	}

	shape.SetOutline(triangle)
	f.RefreshGeometry()
	if f.HasProblems() {
		t.Errorf("ProblemEdges = %v after load, want none", f.ProblemEdges())
	}
	f.SetProblemEdges([]int{0, 1})
	if !slices.Equal(f.ProblemEdges(), []int{0, 1}) {
		t.Errorf("ProblemEdges = %v, want [0 1]", f.ProblemEdges())
	}
}

func TestBeginDragAndCancel(t *testing.T) {
	f, rec := newTestFollower(triangle)
	f.BeginDrag(5)
	if f.DraggingAnchor() != NoIndex {
		t.Error("BeginDrag accepted an out-of-range index")
	}
	f.BeginDrag(2)
	f.PointerDrag(10, 10)
	f.CancelDrag()
	if f.PointerDrag(20, 20) {
		t.Error("drag continued after CancelDrag")
	}
	if got := rec.types(); !slices.Equal(got, []EditEventType{EventAnchorDragged}) {
		t.Errorf("events = %v", got)
	}
}

func TestPointsReturnsCopy(t *testing.T) {
	f, _ := newTestFollower(triangle)
	pts := f.Points()
	pts[0] = Vec2{99, 99}
	if f.Points()[0] != (Vec2{0, 0}) {
		t.Error("Points exposed internal storage")
	}
}
