package world

import (
	"github.com/Faultbox/sakura-forest/internal/engine/input"
)

// Step advances the world by dt seconds.
//
// Phases run in a fixed order: input (including selection), player movement,
// wandering, collision, camera. The camera therefore always frames the
// corrected player position of the same frame.
func (w *World) Step(dt float32, events []input.Event) {
	for _, ev := range events {
		w.dispatch(ev)
	}

	w.controller.Update(dt)
	w.wanderer.UpdateAll(w.entities, dt, w.clock)
	w.resolver.Resolve(w.entities, w.obstacles)
	w.camera.Update(dt)

	w.clock += float64(dt)
	w.frames++
}

func (w *World) dispatch(ev input.Event) {
	switch ev.Type {
	case input.EventKeyDown, input.EventKeyUp:
		w.controller.HandleEvent(ev)
	case input.EventWindowResize:
		w.SetViewport(ev.Width, ev.Height)
	case input.EventPointerDown:
		if ev.Button == input.ButtonPrimary {
			w.OnEntitySelected(w.PickAt(ev.X, ev.Y))
		}
		w.camera.HandleEvent(ev)
	case input.EventPointerUp, input.EventPointerMove, input.EventWheel:
		w.camera.HandleEvent(ev)
	}
}
