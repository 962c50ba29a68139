package entity

import "github.com/Faultbox/sakura-forest/pkg/math"

// Obstacle is a static body such as a tree. It never moves once placed.
type Obstacle struct {
	Body
	ID ID

	cachedBounds *Sphere
}

// NewObstacle creates an obstacle at the given position and heading.
func NewObstacle(id ID, model string, position math.Vec3, yaw float32) *Obstacle {
	return &Obstacle{
		ID: id,
		Body: Body{
			Position: position,
			Yaw:      yaw,
			Scale:    1,
			Model:    model,
		},
	}
}

// Bounds returns the world-space bounding sphere. It is computed on the first
// call after the asset is attached and cached from then on.
func (o *Obstacle) Bounds() (Sphere, bool) {
	if o.cachedBounds != nil {
		return *o.cachedBounds, true
	}
	s, ok := o.WorldBounds()
	if !ok {
		return Sphere{}, false
	}
	o.cachedBounds = &s
	return s, true
}
