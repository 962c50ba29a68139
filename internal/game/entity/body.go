// Package entity provides the characters and obstacles that populate the forest.
package entity

import (
	"sync/atomic"

	"github.com/Faultbox/sakura-forest/pkg/math"
)

// ID identifies a body within a world.
type ID uint32

// Sphere is a bounding sphere.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// Body is the spatial part shared by characters and obstacles: a transform,
// the model key used to fetch its asset, and local bounds that appear once
// the asset has been attached.
//
// Bounds are published from loader goroutines; everything else is owned by
// the frame loop.
type Body struct {
	Position math.Vec3
	Yaw      float32
	Scale    float32
	Model    string

	bounds atomic.Pointer[Sphere]
}

// IsLoaded reports whether the body's asset has been attached.
func (b *Body) IsLoaded() bool {
	return b.bounds.Load() != nil
}

// AttachBounds publishes model-space bounds and marks the body loaded.
// Only the first attachment wins.
func (b *Body) AttachBounds(local Sphere) bool {
	s := local
	return b.bounds.CompareAndSwap(nil, &s)
}

// LocalBounds returns the model-space bounds if the asset is attached.
func (b *Body) LocalBounds() (Sphere, bool) {
	s := b.bounds.Load()
	if s == nil {
		return Sphere{}, false
	}
	return *s, true
}

// WorldBounds returns the bounds placed at the body's current transform.
func (b *Body) WorldBounds() (Sphere, bool) {
	local, ok := b.LocalBounds()
	if !ok {
		return Sphere{}, false
	}
	scale := b.Scale
	if scale == 0 {
		scale = 1
	}

	// Rotate the centre offset about Y, then scale and translate.
	c := local.Center.Scale(scale)
	sin, cos := math.Sin(b.Yaw), math.Cos(b.Yaw)
	rotated := math.Vec3{
		X: c.X*cos + c.Z*sin,
		Y: c.Y,
		Z: -c.X*sin + c.Z*cos,
	}
	return Sphere{
		Center: b.Position.Add(rotated),
		Radius: local.Radius * scale,
	}, true
}

// Forward returns the body's facing direction on the ground plane.
func (b *Body) Forward() math.Vec3 {
	return math.Forward(b.Yaw)
}
