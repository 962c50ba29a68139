package agent

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

func newTestWanderer(seed uint64) *Wanderer {
	return New(DefaultConfig(), rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func newNPC(pos math.Vec3) *entity.Entity {
	return entity.NewEntity(1, "character", pos, 1000)
}

func TestIdleBudget_Range(t *testing.T) {
	w := newTestWanderer(1)
	for i := 0; i < 1000; i++ {
		b := w.IdleBudget()
		require.GreaterOrEqual(t, b, float32(1.0))
		require.LessOrEqual(t, b, float32(3.0))
	}
}

func TestChooseTarget_StaysInBounds(t *testing.T) {
	w := newTestWanderer(2)
	origins := []math.Vec3{
		{}, {X: 49, Z: 49}, {X: -49, Z: 10}, {X: 200, Z: -200},
	}
	for _, o := range origins {
		for i := 0; i < 500; i++ {
			target := w.ChooseTarget(o)
			require.GreaterOrEqual(t, target.X, float32(-50))
			require.LessOrEqual(t, target.X, float32(50))
			require.GreaterOrEqual(t, target.Z, float32(-50))
			require.LessOrEqual(t, target.Z, float32(50))
		}
	}
}

func TestChooseTarget_HopLength(t *testing.T) {
	w := newTestWanderer(3)
	for i := 0; i < 500; i++ {
		target := w.ChooseTarget(math.Vec3{})
		d := target.Length()
		assert.GreaterOrEqual(t, d, float32(5)-1e-4)
		assert.LessOrEqual(t, d, float32(25)+1e-4)
	}
}

func TestUpdate_IdleUntilBudgetElapsed(t *testing.T) {
	w := newTestWanderer(4)
	e := newNPC(math.Vec3{})
	w.Reset(e)
	budget := e.Wander.IdleBudget

	const dt = 0.05
	elapsed := float32(0)
	for elapsed+dt < budget {
		w.Update(e, dt, 0)
		elapsed += dt
		require.False(t, e.Wander.HasTarget, "target chosen after %v of %v", elapsed, budget)
		require.Equal(t, entity.Idle, e.State())
	}

	// Enough updates to cross the budget.
	for i := 0; i < 3 && !e.Wander.HasTarget; i++ {
		w.Update(e, dt, 0)
	}
	assert.True(t, e.Wander.HasTarget)
	assert.Equal(t, entity.Walking, e.State())
	assert.Zero(t, e.Wander.IdleElapsed)
}

func TestUpdate_WalkingApproachesTarget(t *testing.T) {
	w := newTestWanderer(5)
	e := newNPC(math.Vec3{})
	e.Wander.Target = math.Vec3{X: 3, Z: 4}
	e.Wander.HasTarget = true
	e.StartWalking()

	before := e.Position.Distance(e.Wander.Target)
	w.Update(e, 0.1, 0)
	after := e.Position.Distance(e.Wander.Target)

	assert.Less(t, after, before)
	assert.InDelta(t, before-e.Wander.Speed*0.1, after, 1e-4)
	assert.InDelta(t, math.Atan2(3, 4), e.Yaw, 1e-5, "faces the target instantly")
}

func TestUpdate_LargeStepDoesNotOvershoot(t *testing.T) {
	w := newTestWanderer(6)
	e := newNPC(math.Vec3{})
	e.Wander.Target = math.Vec3{X: 1}
	e.Wander.HasTarget = true
	e.StartWalking()

	w.Update(e, 10, 0)

	assert.InDelta(t, 1, e.Position.X, 1e-5)
	assert.InDelta(t, 0, e.Position.Z, 1e-5)
}

func TestUpdate_ArrivalReturnsToIdle(t *testing.T) {
	w := newTestWanderer(7)
	e := newNPC(math.Vec3{X: 0.3})
	e.Wander.Target = math.Vec3{}
	e.Wander.HasTarget = true
	e.Wander.IdleElapsed = 5
	e.StartWalking()

	w.Update(e, 0.016, 0)

	assert.False(t, e.Wander.HasTarget)
	assert.Zero(t, e.Wander.IdleElapsed)
	assert.GreaterOrEqual(t, e.Wander.IdleBudget, float32(1))
	assert.LessOrEqual(t, e.Wander.IdleBudget, float32(3))
	assert.Equal(t, entity.Idle, e.State())
	assert.Equal(t, math.Vec3{X: 0.3}, e.Position, "no movement on the arrival tick")
}

func TestUpdate_SkipsPlayerControlled(t *testing.T) {
	w := newTestWanderer(8)
	e := newNPC(math.Vec3{})
	e.SetPlayerControlled(true)
	e.Wander.Target = math.Vec3{X: 10}
	e.Wander.HasTarget = true

	for i := 0; i < 10; i++ {
		w.Update(e, 0.1, float64(i))
	}

	assert.Equal(t, math.Vec3{}, e.Position)
	assert.Zero(t, e.History.Len(), "no path history while possessed")
}

func TestUpdate_RecordsHistoryAtCadence(t *testing.T) {
	w := newTestWanderer(9)
	e := newNPC(math.Vec3{})
	w.Reset(e)

	now := 0.0
	for i := 0; i < 100; i++ {
		now += 0.05
		w.Update(e, 0.05, now)
	}

	// One sample every other 50ms tick.
	assert.Equal(t, 50, e.History.Len())
	first, _ := e.History.Oldest()
	assert.InDelta(t, 0.1, first.Time, 1e-9)
}

func TestUpdate_HistoryBounded(t *testing.T) {
	w := newTestWanderer(10)
	e := newNPC(math.Vec3{})
	w.Reset(e)

	for i := 0; i < 3000; i++ {
		w.Update(e, 0.1, float64(i))
		require.LessOrEqual(t, e.History.Len(), 1000)
	}
	assert.Equal(t, 1000, e.History.Len())
}

func TestLongRun_StaysInPlayableArea(t *testing.T) {
	w := newTestWanderer(11)
	npcs := make([]*entity.Entity, 10)
	for i := range npcs {
		npcs[i] = newNPC(math.Vec3{X: float32(i*10 - 45)})
		w.Reset(npcs[i])
	}

	for frame := 0; frame < 5000; frame++ {
		w.UpdateAll(npcs, 1.0/60.0, float64(frame)/60.0)
	}

	for _, e := range npcs {
		assert.LessOrEqual(t, e.Position.X, float32(50)+1e-3)
		assert.GreaterOrEqual(t, e.Position.X, float32(-50)-1e-3)
		assert.LessOrEqual(t, e.Position.Z, float32(50)+1e-3)
		assert.GreaterOrEqual(t, e.Position.Z, float32(-50)-1e-3)
		if e.Wander.HasTarget {
			assert.LessOrEqual(t, e.Wander.Target.X, float32(50))
			assert.GreaterOrEqual(t, e.Wander.Target.Z, float32(-50))
		}
	}
}

func TestReset_ClearsWanderState(t *testing.T) {
	w := newTestWanderer(12)
	e := newNPC(math.Vec3{})
	e.Wander = entity.WanderState{Target: math.Vec3{X: 4}, HasTarget: true, Speed: 5, IdleElapsed: 2}
	e.StartRunning()

	w.Reset(e)

	assert.False(t, e.Wander.HasTarget)
	assert.Equal(t, float32(entity.DefaultWalkSpeed), e.Wander.Speed)
	assert.Zero(t, e.Wander.IdleElapsed)
	assert.GreaterOrEqual(t, e.Wander.IdleBudget, float32(1))
	assert.Equal(t, entity.Idle, e.State())
}
