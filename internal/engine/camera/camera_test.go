package camera

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sakura-forest/internal/engine/input"
	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

func TestNewThirdPersonCamera_Defaults(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())
	assert.Equal(t, float32(7), c.Distance)
	assert.Equal(t, float32(-0.3), c.Pitch)
	assert.Zero(t, c.Yaw)
	assert.Nil(t, c.Target())
}

func TestDrag_OnlySecondaryButtonOrbits(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())

	c.HandleEvent(input.Event{Type: input.EventPointerDown, Button: input.ButtonPrimary, X: 100, Y: 100})
	c.HandleEvent(input.Event{Type: input.EventPointerMove, X: 200, Y: 120})
	assert.Zero(t, c.Yaw)
	assert.Equal(t, float32(-0.3), c.Pitch)

	c.HandleEvent(input.Event{Type: input.EventPointerDown, Button: input.ButtonSecondary, X: 200, Y: 120})
	require.True(t, c.Orbiting())
	c.HandleEvent(input.Event{Type: input.EventPointerMove, X: 220, Y: 130})
	assert.InDelta(t, -0.1, c.Yaw, 1e-6)
	assert.InDelta(t, -0.25, c.Pitch, 1e-6)

	c.HandleEvent(input.Event{Type: input.EventPointerUp, Button: input.ButtonSecondary})
	assert.False(t, c.Orbiting())
	c.HandleEvent(input.Event{Type: input.EventPointerMove, X: 400, Y: 400})
	assert.InDelta(t, -0.1, c.Yaw, 1e-6)
}

func TestWheel_ZoomsAndClamps(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())

	c.HandleWheel(100)
	assert.InDelta(t, 7.5, c.Distance, 1e-5)

	c.HandleWheel(-10000)
	assert.Equal(t, float32(3), c.Distance)

	c.HandleWheel(10000)
	assert.Equal(t, float32(15), c.Distance)
}

func TestOrbitLimits_ArbitraryInput(t *testing.T) {
	cfg := DefaultConfig()
	c := NewThirdPersonCamera(cfg)
	rng := rand.New(rand.NewPCG(7, 11))

	c.HandlePointerDown(input.ButtonSecondary, 0, 0)
	for i := 0; i < 5000; i++ {
		switch rng.IntN(3) {
		case 0:
			c.HandlePointerMove(rng.Float32()*4000-2000, rng.Float32()*4000-2000)
		case 1:
			c.HandleWheel(rng.Float32()*2000 - 1000)
		case 2:
			c.HandlePointerDown(input.ButtonSecondary, rng.Float32()*800, rng.Float32()*600)
		}
		require.GreaterOrEqual(t, c.Distance, cfg.MinDistance)
		require.LessOrEqual(t, c.Distance, cfg.MaxDistance)
		require.GreaterOrEqual(t, c.Pitch, cfg.MinPitch)
		require.LessOrEqual(t, c.Pitch, cfg.MaxPitch)
	}
}

func TestSetTarget_SnapsAlongForward(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())
	b := &entity.Body{Position: math.Vec3{X: 10, Z: -4}, Yaw: math.Pi / 2, Scale: 1}

	c.SetTarget(b)

	assert.Same(t, b, c.Target())
	assert.InDelta(t, 17, c.Position.X, 1e-4)
	assert.InDelta(t, 0, c.Position.Y, 1e-4)
	assert.InDelta(t, -4, c.Position.Z, 1e-4)
	assert.Equal(t, math.Vec3{X: 10, Y: 1.5, Z: -4}, c.Focus)

	c.SetTarget(nil)
	assert.Same(t, b, c.Target())
}

func TestIdealPosition_Spherical(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())
	c.SetTarget(&entity.Body{Scale: 1})

	// Pitch -π/2 looks straight down from above the target.
	c.Pitch = -math.Pi / 2
	p := c.IdealPosition()
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 8.5, p.Y, 1e-4)
	assert.InDelta(t, 0, p.Z, 1e-4)

	// Pitch 0 is level with the look point, along +X at yaw 0.
	c.Pitch = 0
	p = c.IdealPosition()
	assert.InDelta(t, 7, p.X, 1e-4)
	assert.InDelta(t, 1.5, p.Y, 1e-4)
	assert.InDelta(t, 0, p.Z, 1e-4)

	// The ideal position always lies on the orbit sphere.
	c.Pitch, c.Yaw = -0.7, 2.2
	p = c.IdealPosition()
	assert.InDelta(t, c.Distance, p.Distance(math.Vec3{Y: 1.5}), 1e-4)
}

func TestUpdate_SmoothsTowardIdeal(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())
	b := &entity.Body{Scale: 1}
	c.SetTarget(b)

	start := c.Position
	ideal := c.IdealPosition()
	c.Update(1.0 / 60.0)

	want := start.Lerp(ideal, 0.05)
	assert.InDelta(t, want.X, c.Position.X, 1e-4)
	assert.InDelta(t, want.Y, c.Position.Y, 1e-4)
	assert.InDelta(t, want.Z, c.Position.Z, 1e-4)

	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60.0)
	}
	assert.InDelta(t, 0, c.Position.Distance(ideal), 1e-3)
}

func TestUpdate_FixedFractionPerFrame(t *testing.T) {
	for _, dt := range []float32{1.0 / 60.0, 1.0 / 30.0, 0.1, 1.0} {
		c := NewThirdPersonCamera(DefaultConfig())
		c.SetTarget(&entity.Body{Scale: 1})

		start := c.Position
		ideal := c.IdealPosition()
		gap := start.Distance(ideal)
		c.Update(dt)

		closed := (gap - c.Position.Distance(ideal)) / gap
		assert.InDelta(t, 0.05, closed, 1e-4, "dt=%v", dt)
	}
}

func TestUpdate_SmoothPerSecondScalesWithFrameTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmoothPerSecond = true

	closed := func(dt float32) float32 {
		c := NewThirdPersonCamera(cfg)
		c.SetTarget(&entity.Body{Scale: 1})
		ideal := c.IdealPosition()
		gap := c.Position.Distance(ideal)
		c.Update(dt)
		return (gap - c.Position.Distance(ideal)) / gap
	}

	assert.InDelta(t, 0.05, closed(1.0/60.0), 1e-4)
	assert.InDelta(t, 0.0975, closed(1.0/30.0), 1e-4)
}

func TestUpdate_FollowsMovedTarget(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())
	b := &entity.Body{Scale: 1}
	c.SetTarget(b)

	b.Position = math.Vec3{X: 20}
	c.Update(1.0 / 60.0)

	assert.Equal(t, math.Vec3{X: 20, Y: 1.5}, c.Focus)
}

func TestUpdate_WithoutTargetIsNoop(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())
	c.Update(1)
	assert.Equal(t, math.Vec3{}, c.Position)
}

func TestViewProjection_FocusAtScreenCentre(t *testing.T) {
	c := NewThirdPersonCamera(DefaultConfig())
	c.SetTarget(&entity.Body{Position: math.Vec3{X: 3, Z: 3}, Scale: 1})
	c.Update(1.0 / 60.0)

	ndc, ok := c.ViewProjection(16.0 / 9.0).Project(c.Focus)
	require.True(t, ok)
	assert.InDelta(t, 0, ndc.X, 1e-4)
	assert.InDelta(t, 0, ndc.Y, 1e-4)
}
