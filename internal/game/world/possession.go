package world

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sakura-forest/internal/engine/picking"
	"github.com/Faultbox/sakura-forest/internal/game/entity"
)

// OnEntitySelected hands control to e. Selecting nothing, the current
// player, or a character outside this world does nothing.
func (w *World) OnEntitySelected(e *entity.Entity) bool {
	if e == nil || e == w.player || !w.owns(e) {
		return false
	}
	w.possess(e)
	return true
}

// PickAt resolves a screen click to a character, or nil.
func (w *World) PickAt(x, y float32) *entity.Entity {
	vp := w.camera.ViewProjection(w.Aspect())
	ray := picking.ScreenToRay(x, y, w.viewportW, w.viewportH, vp.Inverse())
	return picking.PickEntity(ray, w.entities)
}

func (w *World) possess(e *entity.Entity) {
	prev := w.player
	if prev != nil {
		prev.SetPlayerControlled(false)
		prev.Color = entity.RandomPastel(w.rng)
		w.wanderer.Reset(prev)
	}

	e.SetPlayerControlled(true)
	e.Color = entity.PlayerColor
	e.Wander.ClearTarget()
	w.player = e

	w.controller.SetTarget(e)
	w.camera.SetTarget(&e.Body)

	if prev != nil {
		w.log.Debug("possession changed",
			zap.Uint32("from", uint32(prev.ID)),
			zap.Uint32("to", uint32(e.ID)))
	}
}

func (w *World) owns(e *entity.Entity) bool {
	for _, c := range w.entities {
		if c == e {
			return true
		}
	}
	return false
}
