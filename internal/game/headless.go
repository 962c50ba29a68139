package game

import (
	"context"

	"go.uber.org/zap"
)

// runHeadless steps the world at a fixed rate without a window.
func (g *Game) runHeadless(ctx context.Context) error {
	frames := g.cfg.Simulation.HeadlessFrames
	dt := g.cfg.Simulation.FixedStep
	g.log.Info("starting headless loop", zap.Int("frames", frames), zap.Float32("dt", dt))

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Step(dt)
		g.Sky(dt)
	}
	return nil
}
