// Package controller moves the possessed character from keyboard intent.
package controller

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sakura-forest/internal/engine/input"
	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/internal/logger"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

// Config tunes player movement.
type Config struct {
	MoveSpeed     float32 // Units per second while walking
	RunMultiplier float32 // Applied to MoveSpeed while the run key is held
	TurnRate      float32 // Fraction of the heading error closed per frame
}

// DefaultConfig returns the standard player tuning.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:     5,
		RunMultiplier: 2,
		TurnRate:      0.1,
	}
}

// Controller applies level-triggered movement keys to one target entity.
type Controller struct {
	cfg      Config
	target   *entity.Entity
	keys     input.State
	velocity math.Vec3
	log      *zap.Logger
}

// New creates a controller with no target.
func New(cfg Config) *Controller {
	return &Controller{
		cfg: cfg,
		log: logger.Named("controller"),
	}
}

// Target returns the controlled entity, or nil.
func (c *Controller) Target() *entity.Entity {
	return c.target
}

// Keys returns the current movement key state.
func (c *Controller) Keys() input.State {
	return c.keys
}

// Velocity returns the displacement applied on the last Update.
func (c *Controller) Velocity() math.Vec3 {
	return c.velocity
}

// HandleEvent folds a key edge into the movement state.
func (c *Controller) HandleEvent(ev input.Event) {
	c.keys = c.keys.Apply(ev)
}

// Apply folds a frame's worth of events into the movement state.
func (c *Controller) Apply(events []input.Event) {
	c.keys = c.keys.Replay(events)
}

// SetTarget rebinds the controller and clears all movement state.
// A nil target is ignored.
func (c *Controller) SetTarget(e *entity.Entity) {
	if e == nil {
		return
	}
	c.target = e
	c.keys = input.State{}
	c.velocity = math.Vec3{}
	c.log.Debug("retarget", zap.Uint32("entity", uint32(e.ID)))
}

// Intent returns the normalized ground-plane direction requested by s.
// Forward maps to -X and right to -Z in the character's model frame.
func Intent(s input.State) math.Vec3 {
	var fwd, right float32
	if s.Forward {
		fwd++
	}
	if s.Backward {
		fwd--
	}
	if s.Right {
		right++
	}
	if s.Left {
		right--
	}
	return math.Vec3{X: -fwd, Z: -right}.Normalize()
}

// Update moves the target by dt seconds of the current intent.
func (c *Controller) Update(dt float32) {
	if c.target == nil {
		return
	}

	dir := Intent(c.keys)
	if dir.IsZero() {
		c.velocity = math.Vec3{}
		c.target.StopMoving()
		return
	}

	heading := math.YawOf(dir)
	c.target.Yaw += math.ShortestAngle(c.target.Yaw, heading) * c.cfg.TurnRate

	speed := c.cfg.MoveSpeed
	if c.keys.Running {
		speed *= c.cfg.RunMultiplier
	}
	c.velocity = math.Forward(heading).Scale(speed * dt)
	c.target.Position = c.target.Position.Add(c.velocity)

	if c.keys.Running {
		c.target.StartRunning()
	} else {
		c.target.StartWalking()
	}
}
