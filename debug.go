package polyedit

import (
	"log/slog"
	"os"
	"time"
)

// logLevel is shared by the package default logger so SetDebugMode can raise
// verbosity without rebuilding handlers.
var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).
	With("component", "polyedit")

// Logger returns the package logger. Followers without an explicit logger
// use it.
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	logger = l
}

// frameStats holds per-frame timing and draw metrics.
// Only collected when the editor is in debug mode.
type frameStats struct {
	updateTime   time.Duration
	drawTime     time.Duration
	followers    int
	culled       int
	anchors      int
	drawVertices int
}

// debugLog writes one line of frame stats at debug level.
func (e *Editor) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	e.logger.Debug("frame",
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"followers", stats.followers,
		"culled", stats.culled,
		"anchors", stats.anchors,
		"vertices", stats.drawVertices,
	)
}
