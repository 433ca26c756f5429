package polyedit

import (
	"log/slog"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Editor hosts followers on an Ebitengine canvas. It owns the camera, routes
// pointer input to followers and draws them in one batch. Editor implements
// ebiten.Game.
type Editor struct {
	config    Config
	camera    *Camera
	followers []*PolygonFollower
	batch     *ShapeBatch
	logger    *slog.Logger
	debug     bool

	// ShowHUD draws FPS, zoom, cursor and selection info in the top-left corner.
	ShowHUD bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// OnUpdate, if set, runs once per frame after input is processed.
	OnUpdate func()
	// ExitOnScriptDone ends the game loop once an attached test script has
	// finished.
	ExitOnScriptDone bool

	pointer      pointerState
	dragDeadZone float64
	zoomStep     float64
	injectQueue  []syntheticPointerEvent
	testRunner   *TestRunner

	screenshotQueue []string
	stats           frameStats
	hud             hudState
	visible         []*PolygonFollower
}

// NewEditor creates an editor from cfg. Zero window sizes and a zero camera
// zoom take their DefaultConfig values.
func NewEditor(cfg Config) *Editor {
	d := DefaultConfig()
	if cfg.Window.Width <= 0 {
		cfg.Window.Width = d.Window.Width
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = d.Window.Height
	}
	if cfg.Camera.Zoom <= 0 {
		cfg.Camera.Zoom = d.Camera.Zoom
	}
	if cfg.Style == (Style{}) {
		cfg.Style = d.Style
	}
	cfg.Style = cfg.Style.withDefaults()

	cam := NewCamera(Rect{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)})
	cam.X = cfg.Camera.X
	cam.Y = cfg.Camera.Y
	cam.Zoom = cam.clampZoom(cfg.Camera.Zoom)

	e := &Editor{
		config:        cfg,
		camera:        cam,
		batch:         NewShapeBatch(),
		logger:        Logger(),
		ShowHUD:       true,
		ScreenshotDir: "screenshots",
		dragDeadZone:  defaultDragDeadZone,
		zoomStep:      defaultZoomStep,
	}
	e.SetDebugMode(cfg.Debug)
	return e
}

// Config returns the editor configuration.
func (e *Editor) Config() Config { return e.config }

// Camera returns the editor camera.
func (e *Editor) Camera() *Camera { return e.camera }

// Followers returns the hosted followers in draw order.
func (e *Editor) Followers() []*PolygonFollower { return e.followers }

// NewFollower creates a follower viewed through the editor camera and adds
// it. A zero cfg.Style uses the editor style; a nil cfg.Logger uses the
// editor logger.
func (e *Editor) NewFollower(cfg FollowerConfig) *PolygonFollower {
	cfg.View = e.camera
	if cfg.Style == (Style{}) {
		cfg.Style = e.config.Style
	}
	if cfg.Logger == nil {
		cfg.Logger = e.logger
	}
	f := NewPolygonFollower(cfg)
	e.AddFollower(f)
	return f
}

// AddFollower adds f on top of the existing followers and points its view
// at the editor camera. Panics if f is nil.
func (e *Editor) AddFollower(f *PolygonFollower) {
	if f == nil {
		panic("polyedit: cannot add nil follower")
	}
	if slices.Contains(e.followers, f) {
		return
	}
	f.SetView(e.camera)
	e.followers = append(e.followers, f)
}

// RemoveFollower removes f. An in-progress gesture on f is dropped.
func (e *Editor) RemoveFollower(f *PolygonFollower) {
	i := slices.Index(e.followers, f)
	if i < 0 {
		return
	}
	e.followers = slices.Delete(e.followers, i, i+1)
	if e.pointer.target == f {
		e.pointer.target = nil
	}
	f.CancelDrag()
}

// Follower returns the follower with the given name, or nil.
func (e *Editor) Follower(name string) *PolygonFollower {
	for _, f := range e.followers {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// SetDebugMode enables per-frame stats logging and sets the package log
// level: Debug when enabled, Info otherwise. The level is package-wide, so
// it applies to every editor and to every follower using Logger().
func (e *Editor) SetDebugMode(enabled bool) {
	e.debug = enabled
	if enabled {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// SetDragDeadZone sets the pointer travel in pixels before a press turns
// into a drag. Default is 4.
func (e *Editor) SetDragDeadZone(pixels float64) {
	e.dragDeadZone = max(pixels, 0)
}

// FocusFollower scrolls the camera so the center of f's outline is in the
// middle of the viewport, animating over duration seconds.
func (e *Editor) FocusFollower(f *PolygonFollower, duration float32) {
	if f == nil {
		return
	}
	b, ok := f.worldBounds()
	if !ok {
		return
	}
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	if duration <= 0 {
		e.camera.X, e.camera.Y = cx, cy
		return
	}
	e.camera.ScrollTo(cx, cy, duration, ease.OutCubic)
}

// Update implements ebiten.Game.
func (e *Editor) Update() error {
	var start time.Time
	if e.debug {
		start = time.Now()
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	e.camera.update(dt)
	e.hud.update(float64(dt))
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInput()
	if e.OnUpdate != nil {
		e.OnUpdate()
	}
	if e.debug {
		e.stats.updateTime = time.Since(start)
	}
	if e.ExitOnScriptDone && e.testRunner != nil && e.testRunner.Done() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (e *Editor) Draw(screen *ebiten.Image) {
	var start time.Time
	if e.debug {
		start = time.Now()
	}
	screen.Fill(e.config.Background.toRGBA())

	anchors := 0
	visible := e.visibleFollowers()
	for _, f := range visible {
		f.Render(e.batch)
		anchors += f.Len()
	}
	e.batch.Flush(screen)
	vertices := e.batch.LastVertices()

	if e.ShowHUD {
		e.drawHUD(screen)
	}
	e.flushScreenshots(screen)

	if e.debug {
		e.stats.drawTime = time.Since(start)
		e.stats.followers = len(visible)
		e.stats.culled = len(e.followers) - len(visible)
		e.stats.anchors = anchors
		e.stats.drawVertices = vertices
		e.debugLog(e.stats)
	}
}

// visibleFollowers returns the followers whose outline, padded by the anchor
// markers, overlaps the camera's visible area.
func (e *Editor) visibleFollowers() []*PolygonFollower {
	view := e.camera.VisibleBounds()
	e.visible = e.visible[:0]
	for _, f := range e.followers {
		b, ok := f.worldBounds()
		if !ok {
			continue
		}
		if z := e.camera.Zoom; z > 0 {
			pad := max(f.style.AnchorSize, f.style.LineWidth) / z
			b = Rect{X: b.X - pad, Y: b.Y - pad, Width: b.Width + 2*pad, Height: b.Height + 2*pad}
		}
		if view.Intersects(b) {
			e.visible = append(e.visible, f)
		}
	}
	return e.visible
}

// Layout implements ebiten.Game. The camera viewport tracks the window.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.camera.Viewport = Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}
