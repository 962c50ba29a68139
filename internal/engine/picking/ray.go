// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"

	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := unproject(invViewProj, ndcX, ndcY, -1)
	far := unproject(invViewProj, ndcX, ndcY, 1)

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv math.Mat4, x, y, z float32) math.Vec3 {
	p := inv.MulVec4(math.Vec4{x, y, z, 1})
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// IntersectSphere tests ray intersection with a sphere.
// Returns the distance to the nearest hit in front of the origin. If the ray
// starts inside the sphere, returns the exit distance.
func (r Ray) IntersectSphere(s entity.Sphere) (t float32, hit bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := float32(gomath.Sqrt(float64(disc)))
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false // Sphere behind ray origin
	}
	return t, true
}

// PickEntity returns the nearest character whose bounds the ray hits.
// Characters without an attached asset cannot be picked.
func PickEntity(r Ray, entities []*entity.Entity) *entity.Entity {
	var (
		best  *entity.Entity
		bestT = float32(gomath.MaxFloat32)
	)
	for _, e := range entities {
		s, ok := e.WorldBounds()
		if !ok {
			continue
		}
		if t, hit := r.IntersectSphere(s); hit && t < bestT {
			best, bestT = e, t
		}
	}
	return best
}
