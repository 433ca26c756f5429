// Package polyedit is an on-canvas editing overlay for polygon geometry in a
// 2D scene editor built on [Ebitengine].
//
// The core type is [PolygonFollower]. It follows one entity's polygon: it
// merges the entity's rings into a single outline, draws that outline with
// triangulation guides and square anchors, and turns pointer input into
// edit intents delivered to an [EditListener].
//
// # Quick start
//
// The simplest host is [Editor], which implements [ebiten.Game], owns a
// [Camera] and routes mouse input to its followers:
//
//	shape := polyedit.NewShape("crate", []polyedit.Vec2{{0, 0}, {2, 0}, {2, 1}, {0, 1}})
//	ed := polyedit.NewEditor(polyedit.DefaultConfig())
//	ed.NewFollower(polyedit.FollowerConfig{
//		Name:      shape.Name,
//		Source:    shape,
//		Transform: shape,
//		Listener:  polyedit.NewShapeEditor(shape),
//	})
//	polyedit.Run(ed, polyedit.RunConfig{})
//
// Hosts with their own game loop construct followers with
// [NewPolygonFollower], inject a [View], and call the pointer handlers and
// [PolygonFollower.Render] themselves.
//
// # Coordinates
//
// Polygon points live in model space. The entity's scale and flip map them
// to world units, and one projection matrix maps world units to screen
// pixels:
//
//	screen = View.Combined() * Translate(Offset) * Scale(PixelsPerUnit) * world
//
// Drawing applies that matrix and hit-testing inverts it, so anchors and
// their hit areas always agree. Anchor sizes and hit radii are screen
// pixels at every zoom. Listener callbacks report model-space coordinates.
//
// # Edges
//
// Edge i joins point i to point (i+1) mod n. Hover, problem flags and
// vertex-insert intents all use that numbering. [FindSelfIntersections]
// returns crossing edges in the same numbering, ready for
// [PolygonFollower.SetProblemEdges].
//
// # Message passing
//
// [EventListener] converts listener calls into [EditEvent] values for hosts
// that queue edits instead of applying them inline. The ecs module publishes
// them into a Donburi world.
//
// # Configuration and logging
//
// [LoadConfig] reads window, camera and [Style] settings from TOML. The
// package logs through log/slog; replace the logger with [SetLogger] and
// enable per-frame stats with [Editor.SetDebugMode].
//
// [Ebitengine]: https://ebitengine.org
package polyedit
