package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sakura-forest/internal/game/entity"
)

// animationLog stands in for a skeletal animation system. It records the
// locomotion commands each character receives.
type animationLog struct {
	entity   entity.ID
	commands *int
	log      *zap.Logger
}

func (a *animationLog) StartWalking() { a.play("walk") }
func (a *animationLog) StartRunning() { a.play("run") }
func (a *animationLog) StopMoving()   { a.play("idle") }

func (a *animationLog) play(clip string) {
	*a.commands++
	a.log.Debug("animation",
		zap.Uint32("entity", uint32(a.entity)),
		zap.String("clip", clip))
}

// attachAnimators gives every character an animation log sharing one counter.
func (g *Game) attachAnimators() {
	for _, e := range g.world.Entities() {
		e.SetAnimator(&animationLog{
			entity:   e.ID,
			commands: &g.animations,
			log:      g.log,
		})
	}
}
