package polyedit

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig controls the window opened by Run. Zero fields fall back to the
// editor's Config.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Resizable lets the user resize the window; the camera viewport follows.
	Resizable bool
	// TestScript, if set, is a JSON script run against the editor.
	TestScript []byte
}

// Run opens a window and drives e until the window closes.
func Run(e *Editor, cfg RunConfig) error {
	if e == nil {
		panic("polyedit: Run called with nil editor")
	}
	win := e.config.Window
	if cfg.Title == "" {
		cfg.Title = win.Title
	}
	if cfg.Width <= 0 {
		cfg.Width = win.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = win.Height
	}
	if len(cfg.TestScript) > 0 {
		runner, err := LoadTestScript(cfg.TestScript)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		e.SetTestRunner(runner)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
