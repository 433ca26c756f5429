package polyedit

// EditListener receives the edit intents a PolygonFollower derives from
// pointer input. Coordinates are in the polygon's model space.
type EditListener interface {
	AnchorDown(f *PolygonFollower, anchor int, x, y float64)
	AnchorDragged(f *PolygonFollower, anchor int, x, y float64)
	AnchorUp(f *PolygonFollower, anchor int, x, y float64, button MouseButton)
	VertexDown(f *PolygonFollower, edge int, x, y float64)
	VertexUp(f *PolygonFollower, edge int, x, y float64)
}

// EditEvent is the message form of an edit intent, for hosts that route
// edits through a queue or an ECS instead of direct calls.
type EditEvent struct {
	Type     EditEventType
	Follower string // follower name
	Index    int    // anchor index for anchor events, edge index for vertex events
	X, Y     float64
	Button   MouseButton
}

// ListenerFuncs adapts plain functions to EditListener. Nil fields are
// skipped.
type ListenerFuncs struct {
	OnAnchorDown    func(f *PolygonFollower, anchor int, x, y float64)
	OnAnchorDragged func(f *PolygonFollower, anchor int, x, y float64)
	OnAnchorUp      func(f *PolygonFollower, anchor int, x, y float64, button MouseButton)
	OnVertexDown    func(f *PolygonFollower, edge int, x, y float64)
	OnVertexUp      func(f *PolygonFollower, edge int, x, y float64)
}

func (l ListenerFuncs) AnchorDown(f *PolygonFollower, anchor int, x, y float64) {
	if l.OnAnchorDown != nil {
		l.OnAnchorDown(f, anchor, x, y)
	}
}

func (l ListenerFuncs) AnchorDragged(f *PolygonFollower, anchor int, x, y float64) {
	if l.OnAnchorDragged != nil {
		l.OnAnchorDragged(f, anchor, x, y)
	}
}

func (l ListenerFuncs) AnchorUp(f *PolygonFollower, anchor int, x, y float64, button MouseButton) {
	if l.OnAnchorUp != nil {
		l.OnAnchorUp(f, anchor, x, y, button)
	}
}

func (l ListenerFuncs) VertexDown(f *PolygonFollower, edge int, x, y float64) {
	if l.OnVertexDown != nil {
		l.OnVertexDown(f, edge, x, y)
	}
}

func (l ListenerFuncs) VertexUp(f *PolygonFollower, edge int, x, y float64) {
	if l.OnVertexUp != nil {
		l.OnVertexUp(f, edge, x, y)
	}
}

// EventSink receives edit intents as EditEvent values.
type EventSink interface {
	EmitEdit(event EditEvent)
}

// EventListener returns an EditListener that converts every call into an
// EditEvent and hands it to sink.
func EventListener(sink EventSink) EditListener {
	return eventListener{sink: sink}
}

type eventListener struct {
	sink EventSink
}

func (l eventListener) AnchorDown(f *PolygonFollower, anchor int, x, y float64) {
	l.sink.EmitEdit(EditEvent{Type: EventAnchorDown, Follower: f.Name(), Index: anchor, X: x, Y: y})
}

func (l eventListener) AnchorDragged(f *PolygonFollower, anchor int, x, y float64) {
	l.sink.EmitEdit(EditEvent{Type: EventAnchorDragged, Follower: f.Name(), Index: anchor, X: x, Y: y})
}

func (l eventListener) AnchorUp(f *PolygonFollower, anchor int, x, y float64, button MouseButton) {
	l.sink.EmitEdit(EditEvent{Type: EventAnchorUp, Follower: f.Name(), Index: anchor, X: x, Y: y, Button: button})
}

func (l eventListener) VertexDown(f *PolygonFollower, edge int, x, y float64) {
	l.sink.EmitEdit(EditEvent{Type: EventVertexDown, Follower: f.Name(), Index: edge, X: x, Y: y})
}

func (l eventListener) VertexUp(f *PolygonFollower, edge int, x, y float64) {
	l.sink.EmitEdit(EditEvent{Type: EventVertexUp, Follower: f.Name(), Index: edge, X: x, Y: y})
}

// MultiListener fans every call out to each listener in order.
type MultiListener []EditListener

// NewMultiListener builds a MultiListener. Panics on a nil listener.
func NewMultiListener(listeners ...EditListener) MultiListener {
	for _, l := range listeners {
		if l == nil {
			panic("polyedit: nil listener in MultiListener")
		}
	}
	return MultiListener(listeners)
}

func (m MultiListener) AnchorDown(f *PolygonFollower, anchor int, x, y float64) {
	for _, l := range m {
		l.AnchorDown(f, anchor, x, y)
	}
}

func (m MultiListener) AnchorDragged(f *PolygonFollower, anchor int, x, y float64) {
	for _, l := range m {
		l.AnchorDragged(f, anchor, x, y)
	}
}

func (m MultiListener) AnchorUp(f *PolygonFollower, anchor int, x, y float64, button MouseButton) {
	for _, l := range m {
		l.AnchorUp(f, anchor, x, y, button)
	}
}

func (m MultiListener) VertexDown(f *PolygonFollower, edge int, x, y float64) {
	for _, l := range m {
		l.VertexDown(f, edge, x, y)
	}
}

func (m MultiListener) VertexUp(f *PolygonFollower, edge int, x, y float64) {
	for _, l := range m {
		l.VertexUp(f, edge, x, y)
	}
}
