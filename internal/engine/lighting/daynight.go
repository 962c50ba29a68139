// Package lighting provides the day/night cycle for the forest sky.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/sakura-forest/pkg/math"
)

// Sky colours at midnight and noon.
var (
	NightColor = Color{0x00 / 255.0, 0x00 / 255.0, 0x24 / 255.0}
	DayColor   = Color{0x87 / 255.0, 0xCE / 255.0, 0xEB / 255.0}
)

// Light levels.
const (
	AmbientBase  = 0.3 // Ambient intensity at night
	AmbientRange = 0.7 // Extra ambient at full sun
	MoonStrength = 0.5
)

// Color is a linear RGB colour.
type Color struct {
	R, G, B float32
}

// Lerp blends toward other by t.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: math.Lerp(c.R, other.R, t),
		G: math.Lerp(c.G, other.G, t),
		B: math.Lerp(c.B, other.B, t),
	}
}

// Sky is the lighting state at one moment of the cycle.
type Sky struct {
	Cycle         float32 // Fraction of the day elapsed, [0, 1)
	SunDirection  math.Vec3
	MoonDirection math.Vec3
	Sun           float32
	Moon          float32
	Ambient       float32
	Color         Color
}

// SunDirection returns the unit vector toward the sun for an orbit angle.
// The sun rises at +X, peaks overhead at a quarter turn and sets at -X.
func SunDirection(angle float32) math.Vec3 {
	return math.Vec3{X: math.Cos(angle), Y: math.Sin(angle)}
}

// DayNight tracks time through a repeating day.
type DayNight struct {
	Duration float32 // Seconds per full day
	elapsed  float64
}

// NewDayNight creates a cycle starting at sunrise.
func NewDayNight(duration float32) *DayNight {
	if duration <= 0 {
		duration = 60
	}
	return &DayNight{Duration: duration}
}

// Update advances the cycle and returns the new sky.
func (d *DayNight) Update(dt float32) Sky {
	d.elapsed += float64(dt)
	return d.At(d.elapsed)
}

// At returns the sky t seconds after sunrise.
func (d *DayNight) At(t float64) Sky {
	dur := float64(d.Duration)
	cycle := gomath.Mod(t, dur) / dur
	if cycle < 0 {
		cycle++
	}
	angle := float32(cycle * 2 * gomath.Pi)

	s := math.Sin(angle)
	sun := max(0, s)
	moon := MoonStrength * max(0, -s)

	return Sky{
		Cycle:         float32(cycle),
		SunDirection:  SunDirection(angle),
		MoonDirection: SunDirection(angle + math.Pi),
		Sun:           sun,
		Moon:          moon,
		Ambient:       AmbientBase + AmbientRange*sun,
		Color:         NightColor.Lerp(DayColor, sun),
	}
}
