package polyedit

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	hudRefresh    = 0.5 // seconds between FPS samples
	hudGlyphW     = 6   // ebitenutil debug font cell
	hudGlyphH     = 16
	hudPadding    = 4
	hudPanelAlpha = 0.5
)

// hudState throttles the FPS/TPS readout so it stays legible.
type hudState struct {
	sinceSample float64
	fps, tps    float64
}

func (h *hudState) update(dt float64) {
	h.sinceSample += dt
	if h.sinceSample < hudRefresh {
		return
	}
	h.sinceSample = 0
	h.fps = ebiten.ActualFPS()
	h.tps = ebiten.ActualTPS()
}

// hudText builds the overlay text: timing, camera zoom, the cursor in world
// units and each follower's selection and crossing edges.
func (e *Editor) hudText() string {
	wx, wy := e.camera.ScreenToWorld(e.pointer.lastX, e.pointer.lastY)
	ppu := e.config.Style.PixelsPerUnit

	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.1f  TPS %.1f\n", e.hud.fps, e.hud.tps)
	fmt.Fprintf(&b, "zoom %.2f  cursor %.2f, %.2f", e.camera.Zoom, wx/ppu, wy/ppu)
	for _, f := range e.followers {
		if f.SelectedAnchor() == NoIndex {
			continue
		}
		fmt.Fprintf(&b, "\n%s: anchor %d/%d", f.Name(), f.SelectedAnchor(), f.Len())
		if f.HasProblems() {
			fmt.Fprintf(&b, "  crossing edges %v", f.ProblemEdges())
		}
	}
	return b.String()
}

// hudPanel returns the size of the translucent panel behind text.
func hudPanel(text string) (w, h float64) {
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		longest = max(longest, len(l))
	}
	return float64(longest*hudGlyphW + 2*hudPadding), float64(len(lines)*hudGlyphH + hudPadding)
}

// drawHUD draws the info overlay in the top-left corner of screen.
func (e *Editor) drawHUD(screen *ebiten.Image) {
	text := e.hudText()
	w, h := hudPanel(text)
	e.batch.FilledRect(0, 0, w, h, Color{A: hudPanelAlpha})
	e.batch.Flush(screen)
	ebitenutil.DebugPrintAt(screen, text, hudPadding, 2)
}
