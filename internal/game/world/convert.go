package world

import (
	"github.com/Faultbox/sakura-forest/internal/config"
	"github.com/Faultbox/sakura-forest/internal/engine/camera"
	"github.com/Faultbox/sakura-forest/internal/game/agent"
	"github.com/Faultbox/sakura-forest/internal/game/controller"
)

func agentConfig(cfg *config.Config) agent.Config {
	c := cfg.Wander
	return agent.Config{
		IdleMin:         c.IdleMin,
		IdleMax:         c.IdleMax,
		TargetMin:       c.TargetMin,
		TargetMax:       c.TargetMax,
		Bound:           c.Bound,
		Arrival:         c.Arrival,
		HistoryInterval: c.HistoryInterval,
	}
}

func controllerConfig(cfg *config.Config) controller.Config {
	c := cfg.Controller
	return controller.Config{
		MoveSpeed:     c.MoveSpeed,
		RunMultiplier: c.RunMultiplier,
		TurnRate:      c.TurnRate,
	}
}

func cameraConfig(cfg *config.Config) camera.Config {
	c := cfg.Camera
	out := camera.DefaultConfig()
	out.Distance = c.Distance
	out.MinDistance = c.MinDistance
	out.MaxDistance = c.MaxDistance
	out.Pitch = c.Pitch
	out.MinPitch = c.MinPitch
	out.MaxPitch = c.MaxPitch
	out.LookHeight = c.LookHeight
	out.Smoothing = c.Smoothing
	out.SmoothPerSecond = c.SmoothPerSecond
	out.DragSensitivity = c.DragSensitivity
	out.ZoomSensitivity = c.ZoomSensitivity
	out.ZoomSpeed = c.ZoomSpeed
	if c.FieldOfView > 0 {
		out.FieldOfView = c.FieldOfView
	}
	return out
}
