package collision

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

func npc(id entity.ID, x, y, z float32) *entity.Entity {
	return entity.NewEntity(id, "character", math.Vec3{X: x, Y: y, Z: z}, 8)
}

func tree(id entity.ID, x, z float32, loaded bool) *entity.Obstacle {
	o := entity.NewObstacle(id, "sakura_tree", math.Vec3{X: x, Z: z}, 0)
	if loaded {
		o.AttachBounds(entity.Sphere{Center: math.Vec3{Y: 3}, Radius: 2})
	}
	return o
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Deferred, false},
		{"deferred", Deferred, false},
		{"sequential", Sequential, false},
		{"iterative", Deferred, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.want.String(), got.String())
	}
}

func TestResolve_PairDeferredIsSymmetric(t *testing.T) {
	a, b := npc(0, 0, 0, 0), npc(1, 0.5, 0, 0)
	r := NewResolver(1, Deferred)

	r.Resolve([]*entity.Entity{a, b}, nil)

	assert.InDelta(t, -0.75, a.Position.X, 1e-6)
	assert.InDelta(t, 1.25, b.Position.X, 1e-6)
	assert.InDelta(t, 2.0, b.Position.X-a.Position.X, 1e-6)
	assert.Zero(t, a.Position.Z)
	assert.Zero(t, b.Position.Z)
}

func TestResolve_PairSequentialIsOrderDependent(t *testing.T) {
	a, b := npc(0, 0, 0, 0), npc(1, 0.5, 0, 0)
	r := NewResolver(1, Sequential)

	r.Resolve([]*entity.Entity{a, b}, nil)

	// a moves first by the full half-depth; b then sees the wider gap.
	assert.InDelta(t, -0.75, a.Position.X, 1e-6)
	assert.InDelta(t, 0.875, b.Position.X, 1e-6)

	sep := b.Position.X - a.Position.X
	assert.Greater(t, sep, float32(0.5))
	assert.LessOrEqual(t, sep, float32(2.0))
}

func TestResolve_DeferredIgnoresOrder(t *testing.T) {
	build := func() []*entity.Entity {
		return []*entity.Entity{
			npc(0, 0, 0, 0), npc(1, 0.7, 0, 0.2), npc(2, -0.3, 0, 0.9), npc(3, 5, 0, 5),
		}
	}
	forward := build()
	reversed := build()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	NewResolver(1, Deferred).Resolve(forward, nil)
	NewResolver(1, Deferred).Resolve(reversed, nil)

	byID := map[entity.ID]math.Vec3{}
	for _, e := range reversed {
		byID[e.ID] = e.Position
	}
	for _, e := range forward {
		got := byID[e.ID]
		assert.InDelta(t, e.Position.X, got.X, 1e-5, "entity %d", e.ID)
		assert.InDelta(t, e.Position.Z, got.Z, 1e-5, "entity %d", e.ID)
	}
}

func TestResolve_IgnoresHeight(t *testing.T) {
	a, b := npc(0, 0, 0, 0), npc(1, 0, 10, 1)
	NewResolver(1, Deferred).Resolve([]*entity.Entity{a, b}, nil)

	assert.InDelta(t, -0.5, a.Position.Z, 1e-6)
	assert.InDelta(t, 1.5, b.Position.Z, 1e-6)
	assert.Equal(t, float32(10), b.Position.Y)
}

func TestResolve_ObstaclePushesOut(t *testing.T) {
	for _, mode := range []Mode{Deferred, Sequential} {
		t.Run(mode.String(), func(t *testing.T) {
			e := npc(0, 0.4, 0, 0)
			o := tree(100, 0, 0, true)

			NewResolver(1, mode).Resolve([]*entity.Entity{e}, []*entity.Obstacle{o})

			assert.InDelta(t, 1.0, e.Position.X, 1e-6)
			assert.Equal(t, math.Vec3{}, o.Position)
		})
	}
}

func TestResolve_UnloadedObstacleSkipped(t *testing.T) {
	for _, mode := range []Mode{Deferred, Sequential} {
		t.Run(mode.String(), func(t *testing.T) {
			e := npc(0, 2, 0, 3)
			unloaded := tree(100, 2, 3, false)
			loaded := tree(101, 2.5, 3, true)

			NewResolver(1, mode).Resolve([]*entity.Entity{e}, []*entity.Obstacle{unloaded, loaded})

			// Only the loaded tree pushes; the unloaded one does not stop the pass.
			assert.InDelta(t, 1.5, e.Position.X, 1e-6)
			assert.InDelta(t, 3, e.Position.Z, 1e-6)
		})
	}
}

func TestResolve_UnloadedObstacleAtEntityPosition(t *testing.T) {
	e := npc(0, 4, 0, -2)
	o := tree(100, 4, -2, false)

	NewResolver(1, Deferred).Resolve([]*entity.Entity{e}, []*entity.Obstacle{o})

	assert.Equal(t, math.Vec3{X: 4, Z: -2}, e.Position)
}

func TestResolve_CoincidentPointsUnmoved(t *testing.T) {
	a, b := npc(0, 1, 0, 1), npc(1, 1, 0, 1)
	NewResolver(1, Deferred).Resolve([]*entity.Entity{a, b}, nil)

	assert.Equal(t, math.Vec3{X: 1, Z: 1}, a.Position)
	assert.Equal(t, math.Vec3{X: 1, Z: 1}, b.Position)
}

func TestResolve_NeverDeepensObstaclePenetration(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for _, mode := range []Mode{Deferred, Sequential} {
		for i := 0; i < 500; i++ {
			o := tree(100, 0, 0, true)
			e := npc(0, rng.Float32()*3-1.5, 0, rng.Float32()*3-1.5)
			before := e.Position.Flat().Distance(math.Vec3{})

			NewResolver(1, mode).Resolve([]*entity.Entity{e}, []*entity.Obstacle{o})

			after := e.Position.Flat().Distance(math.Vec3{})
			require.GreaterOrEqual(t, after+1e-5, before, "mode %s", mode)
		}
	}
}

func TestResolve_CrowdConvergesOverFrames(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	crowd := make([]*entity.Entity, 12)
	for i := range crowd {
		crowd[i] = npc(entity.ID(i), rng.Float32()*2, 0, rng.Float32()*2)
	}
	r := NewResolver(1, Deferred)

	minGap := func() float32 {
		m := float32(1e9)
		for i := range crowd {
			for j := i + 1; j < len(crowd); j++ {
				if d := crowd[i].Position.PlanarDistance(crowd[j].Position); d < m {
					m = d
				}
			}
		}
		return m
	}

	start := minGap()
	for frame := 0; frame < 200; frame++ {
		r.Resolve(crowd, nil)
	}
	assert.Greater(t, minGap(), start)
	assert.Greater(t, minGap(), float32(1.5))
}

func TestResolve_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		NewResolver(1, Deferred).Resolve(nil, []*entity.Obstacle{tree(1, 0, 0, true)})
	})
}
