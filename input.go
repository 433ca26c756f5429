package polyedit

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultDragDeadZone = 4.0  // pixels
	defaultZoomStep     = 1.15 // zoom factor per wheel notch
)

// pointerState tracks the mouse between frames. Coordinates are screen
// pixels.
type pointerState struct {
	down     bool
	button   MouseButton
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	panning  bool
	// target is the follower that consumed the press.
	target *PolygonFollower
}

// processInput is called from Editor.Update. Injected events take the place
// of the real mouse for the frames they are queued.
func (e *Editor) processInput() {
	if e.processInjectedInput() {
		return
	}
	e.processMousePointer()
	if _, wy := ebiten.Wheel(); wy != 0 {
		e.camera.ZoomAt(math.Pow(e.zoomStep, wy), e.pointer.lastX, e.pointer.lastY)
	}
}

// processMousePointer reads the cursor and buttons. If the pointer is
// already down, the stored button is kept for the whole gesture.
func (e *Editor) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	e.processPointer(float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine: press, drag, release and
// hover. A press goes to the topmost follower that consumes it, and that
// follower receives the rest of the gesture. Middle-button gestures pan the
// camera instead.
func (e *Editor) processPointer(sx, sy float64, pressed bool, button MouseButton) {
	ps := &e.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.dragging = false
		ps.target = nil

		if button == MouseButtonMiddle {
			ps.panning = true
			return
		}
		for i := len(e.followers) - 1; i >= 0; i-- {
			if f := e.followers[i]; f.PointerDown(sx, sy, button) {
				ps.target = f
				break
			}
		}

	case !pressed && ps.down:
		if !ps.panning && ps.target != nil {
			ps.target.PointerUp(sx, sy, ps.button)
		}
		ps.down = false
		ps.dragging = false
		ps.panning = false
		ps.target = nil
		ps.lastX, ps.lastY = sx, sy

	case pressed && ps.down:
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		if ps.panning {
			e.camera.Pan(sx-ps.lastX, sy-ps.lastY)
		} else {
			if !ps.dragging && math.Hypot(sx-ps.startX, sy-ps.startY) > e.dragDeadZone {
				ps.dragging = true
			}
			if ps.dragging && ps.target != nil {
				ps.target.PointerDrag(sx, sy)
			}
		}
		ps.lastX, ps.lastY = sx, sy

	default:
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		for _, f := range e.followers {
			f.PointerMove(sx, sy)
		}
		ps.lastX, ps.lastY = sx, sy
	}
}
