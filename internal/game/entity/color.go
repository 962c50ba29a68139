package entity

import "math/rand/v2"

// Color is a linear RGB tint applied to a character's model.
type Color struct {
	R, G, B float32
}

// PlayerColor marks the possessed character.
var PlayerColor = Color{0.2, 0.4, 1.0}

// RandomPastel returns a light colour with every channel in [0.5, 1.0].
func RandomPastel(rng *rand.Rand) Color {
	return Color{
		R: rng.Float32()*0.5 + 0.5,
		G: rng.Float32()*0.5 + 0.5,
		B: rng.Float32()*0.5 + 0.5,
	}
}

// Shade dims an idle character and brightens a running one so movement
// state reads at a glance.
func (c Color) Shade(s MovementState) Color {
	k := float32(1)
	switch s {
	case Idle:
		k = 0.75
	case Running:
		k = 1.25
	}
	return Color{R: min(c.R*k, 1), G: min(c.G*k, 1), B: min(c.B*k, 1)}
}
