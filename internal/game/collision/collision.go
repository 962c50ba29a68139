// Package collision keeps characters apart from each other and from trees.
//
// Resolution is planar: heights are ignored and every body is treated as a
// vertical cylinder. It is a single soft pass per frame; overlapping groups
// settle over several frames.
package collision

import (
	"fmt"

	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

// Mode selects how pushes from one pass interact.
type Mode uint8

const (
	// Deferred computes every push from positions at the start of the pass
	// and applies them together. Results do not depend on entity order.
	Deferred Mode = iota
	// Sequential moves each entity in place before the next one is tested,
	// so later entities see earlier corrections.
	Sequential
)

func (m Mode) String() string {
	switch m {
	case Deferred:
		return "deferred"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode converts a config name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "deferred":
		return Deferred, nil
	case "sequential":
		return Sequential, nil
	default:
		return Deferred, fmt.Errorf("unknown collision mode %q", name)
	}
}

// Resolver pushes overlapping bodies apart.
type Resolver struct {
	Radius float32 // Entity-obstacle threshold; entities keep 2*Radius apart
	Mode   Mode

	deltas []math.Vec3
}

// NewResolver creates a resolver.
func NewResolver(radius float32, mode Mode) *Resolver {
	return &Resolver{Radius: radius, Mode: mode}
}

// Resolve runs one pass over all entities. Obstacles whose asset has not
// been attached are skipped. Obstacles never move.
func (r *Resolver) Resolve(entities []*entity.Entity, obstacles []*entity.Obstacle) {
	if len(entities) == 0 {
		return
	}
	if r.Mode == Sequential {
		r.resolveSequential(entities, obstacles)
		return
	}
	r.resolveDeferred(entities, obstacles)
}

func (r *Resolver) resolveDeferred(entities []*entity.Entity, obstacles []*entity.Obstacle) {
	if cap(r.deltas) < len(entities) {
		r.deltas = make([]math.Vec3, len(entities))
	}
	deltas := r.deltas[:len(entities)]
	for i := range deltas {
		deltas[i] = math.Vec3{}
	}

	for i, e := range entities {
		deltas[i] = deltas[i].Add(r.obstaclePush(e.Position.Flat(), obstacles))
	}

	limit := 2 * r.Radius
	for i := 0; i < len(entities); i++ {
		pi := entities[i].Position.Flat()
		for j := i + 1; j < len(entities); j++ {
			push := separate(pi, entities[j].Position.Flat(), limit, 0.5)
			deltas[i] = deltas[i].Add(push)
			deltas[j] = deltas[j].Sub(push)
		}
	}

	for i, e := range entities {
		e.Position = e.Position.Add(deltas[i])
	}
}

func (r *Resolver) resolveSequential(entities []*entity.Entity, obstacles []*entity.Obstacle) {
	limit := 2 * r.Radius
	for _, e := range entities {
		// Every test for e measures from where it stood before its own pass.
		p := e.Position.Flat()
		e.Position = e.Position.Add(r.obstaclePush(p, obstacles))

		for _, other := range entities {
			if other == e {
				continue
			}
			e.Position = e.Position.Add(separate(p, other.Position.Flat(), limit, 0.5))
		}
	}
}

// obstaclePush sums the pushes from every loaded obstacle overlapping p.
func (r *Resolver) obstaclePush(p math.Vec3, obstacles []*entity.Obstacle) math.Vec3 {
	var total math.Vec3
	for _, o := range obstacles {
		s, ok := o.Bounds()
		if !ok {
			continue
		}
		total = total.Add(separate(p, s.Center.Flat(), r.Radius, 1))
	}
	return total
}

// separate returns the displacement of p away from q when they are closer
// than limit: share of the penetration depth along the separating vector.
// Coincident points have no defined direction and are left alone.
func separate(p, q math.Vec3, limit, share float32) math.Vec3 {
	d := p.Sub(q)
	dist := d.Length()
	if dist >= limit || dist == 0 {
		return math.Vec3{}
	}
	return d.Scale((limit - dist) * share / dist)
}
