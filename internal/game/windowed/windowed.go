// Package windowed presents the forest in an SDL2 window.
package windowed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sakura-forest/internal/engine/input"
	"github.com/Faultbox/sakura-forest/internal/engine/renderer"
	"github.com/Faultbox/sakura-forest/internal/engine/window"
	"github.com/Faultbox/sakura-forest/internal/game"
)

// Run opens a window and runs the frame loop until the user quits.
// It satisfies game.Frontend and must be called from the main goroutine.
func Run(ctx context.Context, g *game.Game) error {
	gfx := g.Config().Graphics
	win, err := window.New(window.Config{
		Title:      game.Title,
		Width:      gfx.Width,
		Height:     gfx.Height,
		Fullscreen: gfx.Fullscreen,
		VSync:      gfx.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// Renderer must be created after the window, since the GL context must exist
	rend, err := renderer.New(renderer.Config{Width: gfx.Width, Height: gfx.Height})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer rend.Close()

	world := g.World()
	w, h := win.GetSize()
	world.SetViewport(w, h)

	log := g.Logger()
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	player := world.Player()
	win.SetTitle(fmt.Sprintf("%s - %s", game.Title, player.Name))

	log.Info("starting game loop")
	for ctx.Err() == nil {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input
		quit := win.PollEvents(g.Inbox())

		// 2. Simulation
		for _, ev := range g.Step(dt) {
			if ev.Type == input.EventWindowResize {
				rend.Resize(ev.Width, ev.Height)
			}
		}
		if quit {
			break
		}
		if p := world.Player(); p != player {
			player = p
			win.SetTitle(fmt.Sprintf("%s - %s", game.Title, player.Name))
		}

		// 3. Render
		sky := g.Sky(dt)
		rend.Begin(sky)
		rend.DrawScene(world.Camera().ViewProjection(world.Aspect()), sky, world.Entities(), world.Obstacles())
		rend.End()

		// 4. Present
		win.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}
