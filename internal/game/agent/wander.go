// Package agent drives characters the player is not controlling.
//
// Each NPC alternates between idling for a random budget and walking to a
// random point nearby. While not possessed it also samples its position into
// a bounded path history.
package agent

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/internal/logger"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

// Config tunes the wander state machine.
type Config struct {
	IdleMin         float32 // Shortest idle period, seconds
	IdleMax         float32 // Longest idle period, seconds
	TargetMin       float32 // Shortest hop to a new target
	TargetMax       float32 // Longest hop to a new target
	Bound           float32 // Targets are clamped to [-Bound, Bound] on X and Z
	Arrival         float32 // Distance at which a target counts as reached
	HistoryInterval float32 // Seconds between path samples
}

// DefaultConfig returns the standard forest wander tuning.
func DefaultConfig() Config {
	return Config{
		IdleMin:         1,
		IdleMax:         3,
		TargetMin:       5,
		TargetMax:       25,
		Bound:           50,
		Arrival:         0.5,
		HistoryInterval: 0.1,
	}
}

// Wanderer runs the wander state machine for any number of characters.
type Wanderer struct {
	cfg Config
	rng *rand.Rand
	log *zap.Logger
}

// New creates a wanderer drawing randomness from rng.
func New(cfg Config, rng *rand.Rand) *Wanderer {
	return &Wanderer{
		cfg: cfg,
		rng: rng,
		log: logger.Named("agent"),
	}
}

// IdleBudget draws a fresh idle duration in [IdleMin, IdleMax].
func (w *Wanderer) IdleBudget() float32 {
	return w.cfg.IdleMin + w.rng.Float32()*(w.cfg.IdleMax-w.cfg.IdleMin)
}

// ChooseTarget picks a point at a random heading and hop length from origin,
// clamped to the playable square.
func (w *Wanderer) ChooseTarget(origin math.Vec3) math.Vec3 {
	angle := w.rng.Float32() * math.TwoPi
	dist := w.cfg.TargetMin + w.rng.Float32()*(w.cfg.TargetMax-w.cfg.TargetMin)

	return math.Vec3{
		X: math.Clamp(origin.X+math.Cos(angle)*dist, -w.cfg.Bound, w.cfg.Bound),
		Y: origin.Y,
		Z: math.Clamp(origin.Z+math.Sin(angle)*dist, -w.cfg.Bound, w.cfg.Bound),
	}
}

// Reset puts e back into a fresh idle period with no target.
func (w *Wanderer) Reset(e *entity.Entity) {
	e.Wander = entity.WanderState{
		Speed:      e.WalkSpeed,
		IdleBudget: w.IdleBudget(),
	}
	e.HistoryClock = 0
	e.StopMoving()
}

// UpdateAll advances every character that is not player controlled.
func (w *Wanderer) UpdateAll(entities []*entity.Entity, dt float32, now float64) {
	for _, e := range entities {
		w.Update(e, dt, now)
	}
}

// Update advances one character by dt seconds. now is the simulation clock
// used to timestamp path samples. Player-controlled characters are skipped.
func (w *Wanderer) Update(e *entity.Entity, dt float32, now float64) {
	if e == nil || e.IsPlayerControlled() {
		return
	}

	w.sample(e, dt, now)

	if !e.Wander.HasTarget {
		w.idle(e, dt)
		return
	}
	w.walk(e, dt)
}

func (w *Wanderer) sample(e *entity.Entity, dt float32, now float64) {
	e.HistoryClock += dt
	if e.HistoryClock >= w.cfg.HistoryInterval {
		e.History.Record(e.Position, now)
		e.HistoryClock = 0
	}
}

func (w *Wanderer) idle(e *entity.Entity, dt float32) {
	e.Wander.IdleElapsed += dt
	if e.Wander.IdleElapsed < e.Wander.IdleBudget {
		e.StopMoving()
		return
	}

	e.Wander.Target = w.ChooseTarget(e.Position)
	e.Wander.HasTarget = true
	e.Wander.IdleElapsed = 0
	e.StartWalking()

	w.log.Debug("wander target chosen",
		zap.Uint32("entity", uint32(e.ID)),
		zap.Float32("x", e.Wander.Target.X),
		zap.Float32("z", e.Wander.Target.Z),
	)
}

func (w *Wanderer) walk(e *entity.Entity, dt float32) {
	toTarget := e.Wander.Target.Sub(e.Position)
	dist := toTarget.Length()

	if dist < w.cfg.Arrival {
		e.Wander.ClearTarget()
		e.Wander.IdleElapsed = 0
		e.Wander.IdleBudget = w.IdleBudget()
		e.StopMoving()
		return
	}

	dir := toTarget.Normalize()
	step := e.Wander.Speed * dt
	if step > dist {
		step = dist
	}
	e.Position = e.Position.Add(dir.Scale(step))
	e.Yaw = math.YawOf(dir)
}
