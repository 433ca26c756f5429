package ecs

import (
	"github.com/phanxgames/polyedit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EditEventType is the Donburi event type for follower edit intents.
// Subscribe to it in your ECS systems to apply anchor moves and vertex
// inserts.
var EditEventType = events.NewEventType[polyedit.EditEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiListener creates an EditListener that publishes every edit
// intent to EditEventType in world. Events are queued; they reach
// subscribers on ProcessEvents.
func NewDonburiListener(world donburi.World) polyedit.EditListener {
	return polyedit.EventListener(&donburiSink{world: world})
}

func (s *donburiSink) EmitEdit(event polyedit.EditEvent) {
	EditEventType.Publish(s.world, event)
}

// SubscribeEdits registers fn for edit events of the given types. With no
// types it receives every edit event.
func SubscribeEdits(world donburi.World, fn func(w donburi.World, e polyedit.EditEvent), types ...polyedit.EditEventType) {
	if len(types) == 0 {
		EditEventType.Subscribe(world, fn)
		return
	}
	EditEventType.Subscribe(world, func(w donburi.World, e polyedit.EditEvent) {
		for _, t := range types {
			if e.Type == t {
				fn(w, e)
				return
			}
		}
	})
}
