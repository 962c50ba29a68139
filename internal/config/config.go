// Package config handles forest configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"
	"time"

	"github.com/Faultbox/sakura-forest/internal/game/collision"
)

// ErrInvalid is returned by Validate for settings the simulation cannot run with.
var ErrInvalid = errors.New("invalid config")

// Config holds all forest settings.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Wander     WanderConfig     `yaml:"wander"`
	Controller ControllerConfig `yaml:"controller"`
	Camera     CameraConfig     `yaml:"camera"`
	Collision  CollisionConfig  `yaml:"collision"`
	Assets     AssetsConfig     `yaml:"assets"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig holds population and frame-loop settings.
type SimulationConfig struct {
	NPCCount       int     `yaml:"npc_count"`
	TreeCount      int     `yaml:"tree_count"`
	Seed           uint64  `yaml:"seed"` // 0 picks a random seed
	SpawnExtent    float32 `yaml:"spawn_extent"`
	FixedStep      float32 `yaml:"fixed_step"`      // Seconds per headless frame
	HeadlessFrames int     `yaml:"headless_frames"` // Frames to run without a window
	MaxFrameDelta  float32 `yaml:"max_frame_delta"`
}

// WanderConfig tunes the NPC wander state machine.
type WanderConfig struct {
	IdleMin         float32 `yaml:"idle_min"`
	IdleMax         float32 `yaml:"idle_max"`
	TargetMin       float32 `yaml:"target_min"`
	TargetMax       float32 `yaml:"target_max"`
	Bound           float32 `yaml:"bound"`
	Arrival         float32 `yaml:"arrival"`
	WalkSpeed       float32 `yaml:"walk_speed"`
	RunSpeed        float32 `yaml:"run_speed"`
	HistoryInterval float32 `yaml:"history_interval"`
	HistoryCapacity int     `yaml:"history_capacity"`
}

// ControllerConfig tunes keyboard movement of the possessed entity.
type ControllerConfig struct {
	MoveSpeed     float32 `yaml:"move_speed"`
	RunMultiplier float32 `yaml:"run_multiplier"`
	TurnRate      float32 `yaml:"turn_rate"` // Fraction of the heading error closed per frame
}

// CameraConfig tunes the third-person orbit camera.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	Pitch           float32 `yaml:"pitch"`
	MinPitch        float32 `yaml:"min_pitch"`
	MaxPitch        float32 `yaml:"max_pitch"`
	LookHeight      float32 `yaml:"look_height"`
	Smoothing       float32 `yaml:"smoothing"`
	SmoothPerSecond bool    `yaml:"smooth_per_second"` // Scale smoothing by frame time instead of per frame
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	ZoomSpeed       float32 `yaml:"zoom_speed"`
	FieldOfView     float32 `yaml:"fov"` // Vertical, radians
}

// CollisionConfig tunes the proximity resolver.
type CollisionConfig struct {
	Radius float32 `yaml:"radius"`
	Mode   string  `yaml:"mode"` // deferred or sequential
}

// AssetsConfig controls asynchronous asset attachment.
type AssetsConfig struct {
	Manifest string        `yaml:"manifest"` // Empty uses the embedded manifest
	Workers  int           `yaml:"workers"`
	Latency  time.Duration `yaml:"latency"` // Artificial per-model fetch delay
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Headless   bool `yaml:"headless"`
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LightingConfig holds day/night cycle settings.
type LightingConfig struct {
	DayDuration float32 `yaml:"day_duration"` // Seconds per full cycle
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			NPCCount:       20,
			TreeCount:      100,
			SpawnExtent:    50,
			FixedStep:      1.0 / 60.0,
			HeadlessFrames: 600,
			MaxFrameDelta:  0.1,
		},
		Wander: WanderConfig{
			IdleMin:         1,
			IdleMax:         3,
			TargetMin:       5,
			TargetMax:       25,
			Bound:           50,
			Arrival:         0.5,
			WalkSpeed:       2,
			RunSpeed:        5,
			HistoryInterval: 0.1,
			HistoryCapacity: 1000,
		},
		Controller: ControllerConfig{
			MoveSpeed:     5,
			RunMultiplier: 2,
			TurnRate:      0.1,
		},
		Camera: CameraConfig{
			Distance:        7,
			MinDistance:     3,
			MaxDistance:     15,
			Pitch:           -0.3,
			MinPitch:        -gomath.Pi / 2,
			MaxPitch:        -0.1,
			LookHeight:      1.5,
			Smoothing:       0.05,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.01,
			ZoomSpeed:       0.5,
			FieldOfView:     75 * gomath.Pi / 180,
		},
		Collision: CollisionConfig{
			Radius: 1,
			Mode:   collision.Deferred.String(),
		},
		Assets: AssetsConfig{
			Workers: 4,
		},
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Lighting: LightingConfig{
			DayDuration: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Simulation.NPCCount < 1:
		return fmt.Errorf("%w: npc_count must be at least 1, got %d", ErrInvalid, c.Simulation.NPCCount)
	case c.Simulation.TreeCount < 0:
		return fmt.Errorf("%w: tree_count must not be negative, got %d", ErrInvalid, c.Simulation.TreeCount)
	case c.Simulation.FixedStep <= 0:
		return fmt.Errorf("%w: fixed_step must be positive", ErrInvalid)
	case c.Simulation.MaxFrameDelta <= 0:
		return fmt.Errorf("%w: max_frame_delta must be positive", ErrInvalid)
	case c.Wander.IdleMin < 0 || c.Wander.IdleMin > c.Wander.IdleMax:
		return fmt.Errorf("%w: idle range [%v, %v]", ErrInvalid, c.Wander.IdleMin, c.Wander.IdleMax)
	case c.Wander.TargetMin < 0 || c.Wander.TargetMin > c.Wander.TargetMax:
		return fmt.Errorf("%w: target range [%v, %v]", ErrInvalid, c.Wander.TargetMin, c.Wander.TargetMax)
	case c.Wander.HistoryCapacity < 1:
		return fmt.Errorf("%w: history_capacity must be at least 1", ErrInvalid)
	case c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance:
		return fmt.Errorf("%w: camera distance range [%v, %v]", ErrInvalid, c.Camera.MinDistance, c.Camera.MaxDistance)
	case c.Camera.MinPitch > c.Camera.MaxPitch:
		return fmt.Errorf("%w: camera pitch range [%v, %v]", ErrInvalid, c.Camera.MinPitch, c.Camera.MaxPitch)
	case c.Collision.Radius <= 0:
		return fmt.Errorf("%w: collision radius must be positive", ErrInvalid)
	case c.Assets.Workers < 1:
		return fmt.Errorf("%w: assets workers must be at least 1", ErrInvalid)
	}
	if _, err := collision.ParseMode(c.Collision.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
