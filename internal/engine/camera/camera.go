// Package camera provides the third-person follow camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/sakura-forest/internal/engine/input"
	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

// Config tunes the orbit and follow behaviour.
type Config struct {
	Distance    float32
	MinDistance float32
	MaxDistance float32

	Pitch    float32 // Initial pitch, radians (negative looks down)
	MinPitch float32
	MaxPitch float32

	LookHeight float32 // Look-at offset above the target's feet
	Smoothing  float32 // Fraction of the gap to the ideal position closed per frame

	// SmoothPerSecond rescales Smoothing by frame time so the camera eases at
	// the same rate regardless of frame rate. Smoothing then applies to a
	// 60 Hz frame.
	SmoothPerSecond bool

	DragSensitivity float32 // Radians per pixel of secondary-button drag
	ZoomSensitivity float32
	ZoomSpeed       float32

	FieldOfView float32 // Vertical, radians
	Near, Far   float32
}

// DefaultConfig returns the standard camera tuning.
func DefaultConfig() Config {
	return Config{
		Distance:        7,
		MinDistance:     3,
		MaxDistance:     15,
		Pitch:           -0.3,
		MinPitch:        -math.Pi / 2,
		MaxPitch:        -0.1,
		LookHeight:      1.5,
		Smoothing:       0.05,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.01,
		ZoomSpeed:       0.5,
		FieldOfView:     75 * math.Pi / 180,
		Near:            0.1,
		Far:             1000,
	}
}

// ThirdPersonCamera orbits and follows a target body.
type ThirdPersonCamera struct {
	cfg Config

	// Orbit state
	Yaw      float32 // Unbounded
	Pitch    float32 // Clamped to [MinPitch, MaxPitch]
	Distance float32 // Clamped to [MinDistance, MaxDistance]

	// Current pose
	Position math.Vec3
	Focus    math.Vec3

	target   *entity.Body
	orbiting bool
	pointer  math.Vec2 // Last pointer position seen while orbiting
}

// NewThirdPersonCamera creates a camera with no target.
func NewThirdPersonCamera(cfg Config) *ThirdPersonCamera {
	return &ThirdPersonCamera{
		cfg:      cfg,
		Pitch:    math.Clamp(cfg.Pitch, cfg.MinPitch, cfg.MaxPitch),
		Distance: math.Clamp(cfg.Distance, cfg.MinDistance, cfg.MaxDistance),
	}
}

// Target returns the followed body, or nil.
func (c *ThirdPersonCamera) Target() *entity.Body {
	return c.target
}

// Orbiting reports whether a secondary-button drag is in progress.
func (c *ThirdPersonCamera) Orbiting() bool {
	return c.orbiting
}

// SetTarget snaps the camera onto b along its forward direction, without
// smoothing. A nil target is ignored.
func (c *ThirdPersonCamera) SetTarget(b *entity.Body) {
	if b == nil {
		return
	}
	c.target = b
	c.Position = b.Position.Add(b.Forward().Scale(c.Distance))
	c.Focus = c.lookPoint()
}

// HandleEvent routes pointer and wheel events. Other events are ignored.
func (c *ThirdPersonCamera) HandleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventPointerDown:
		c.HandlePointerDown(ev.Button, ev.X, ev.Y)
	case input.EventPointerUp:
		c.HandlePointerUp(ev.Button)
	case input.EventPointerMove:
		c.HandlePointerMove(ev.X, ev.Y)
	case input.EventWheel:
		c.HandleWheel(ev.Wheel)
	}
}

// HandlePointerDown starts an orbit drag on the secondary button.
func (c *ThirdPersonCamera) HandlePointerDown(b input.Button, x, y float32) {
	if b != input.ButtonSecondary {
		return
	}
	c.orbiting = true
	c.pointer = math.Vec2{X: x, Y: y}
}

// HandlePointerUp ends an orbit drag.
func (c *ThirdPersonCamera) HandlePointerUp(b input.Button) {
	if b == input.ButtonSecondary {
		c.orbiting = false
	}
}

// HandlePointerMove orbits while dragging.
func (c *ThirdPersonCamera) HandlePointerMove(x, y float32) {
	if !c.orbiting {
		return
	}
	p := math.Vec2{X: x, Y: y}
	d := p.Sub(c.pointer)
	c.pointer = p

	c.Yaw -= d.X * c.cfg.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+d.Y*c.cfg.DragSensitivity, c.cfg.MinPitch, c.cfg.MaxPitch)
}

// HandleWheel zooms; positive delta moves the camera away.
func (c *ThirdPersonCamera) HandleWheel(delta float32) {
	c.Distance = math.Clamp(
		c.Distance+delta*c.cfg.ZoomSensitivity*c.cfg.ZoomSpeed,
		c.cfg.MinDistance, c.cfg.MaxDistance,
	)
}

// IdealPosition returns where the camera wants to be for the current orbit.
func (c *ThirdPersonCamera) IdealPosition() math.Vec3 {
	look := c.lookPoint()
	phi := c.Pitch + math.Pi/2
	theta := c.Yaw
	sinPhi := math.Sin(phi)
	return math.Vec3{
		X: look.X + c.Distance*sinPhi*math.Cos(theta),
		Y: look.Y + c.Distance*math.Cos(phi),
		Z: look.Z + c.Distance*sinPhi*math.Sin(theta),
	}
}

// Update eases the camera toward its ideal position and re-aims it.
func (c *ThirdPersonCamera) Update(dt float32) {
	if c.target == nil || dt <= 0 {
		return
	}
	t := c.cfg.Smoothing
	if c.cfg.SmoothPerSecond {
		t = 1 - float32(gomath.Pow(float64(1-c.cfg.Smoothing), float64(dt)*60))
	}
	c.Position = c.Position.Lerp(c.IdealPosition(), t)
	c.Focus = c.lookPoint()
}

// ViewMatrix returns the view matrix for the current pose.
func (c *ThirdPersonCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Focus, math.Up)
}

// ProjectionMatrix returns the perspective projection for a viewport aspect.
func (c *ThirdPersonCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.cfg.FieldOfView, aspect, c.cfg.Near, c.cfg.Far)
}

// ViewProjection returns projection * view.
func (c *ThirdPersonCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

func (c *ThirdPersonCamera) lookPoint() math.Vec3 {
	if c.target == nil {
		return c.Focus
	}
	return c.target.Position.Add(math.Vec3{Y: c.cfg.LookHeight})
}
