// Package ecs bridges polyedit followers into a [Donburi] world.
//
// [NewDonburiListener] returns an EditListener that publishes each edit
// intent (anchor down, dragged, up; vertex down, up) to [EditEventType].
// Systems subscribe to it and drain the queue with ProcessEvents.
//
// Usage:
//
//	f := polyedit.NewPolygonFollower(polyedit.FollowerConfig{
//		Name:     "crate",
//		Source:   shape,
//		Listener: ecs.NewDonburiListener(world),
//	})
//	ecs.SubscribeEdits(world, applyEdit, polyedit.EventAnchorDragged)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
