// Package game implements the main loop that drives the forest.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/sakura-forest/internal/assets"
	"github.com/Faultbox/sakura-forest/internal/config"
	"github.com/Faultbox/sakura-forest/internal/engine/input"
	"github.com/Faultbox/sakura-forest/internal/engine/lighting"
	"github.com/Faultbox/sakura-forest/internal/game/world"
	"github.com/Faultbox/sakura-forest/internal/logger"
)

// Title is the window title.
const Title = "Sakura Forest"

// Summary describes a finished run.
type Summary struct {
	Frames      uint64
	Elapsed     float64 // Simulated seconds
	Player      string
	Characters  int
	Trees       int
	Loaded      int // Bodies with an attached asset
	AssetFailed int
	Possessions int
	PathSamples int // Total samples held across all histories
	Animations  int // Locomotion commands sent to animators
}

// Game wires the world to its loop, assets and, optionally, a window.
type Game struct {
	cfg      *config.Config
	seed     uint64
	world    *world.World
	loader   *assets.Loader
	inbox    *input.Inbox
	daynight *lighting.DayNight
	log      *zap.Logger

	possessions int
	animations  int
}

// New builds the world and asset loader from cfg.
func New(cfg *config.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	w, err := world.New(cfg, rand.New(rand.NewPCG(seed, seed^0x5afe_f0e5)))
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	manifest, err := assets.LoadManifest(cfg.Assets.Manifest)
	if err != nil {
		return nil, fmt.Errorf("loading asset manifest: %w", err)
	}

	g := &Game{
		cfg:   cfg,
		seed:  seed,
		world: w,
		loader: assets.NewLoader(manifest, assets.Options{
			Workers: cfg.Assets.Workers,
			Latency: cfg.Assets.Latency,
		}),
		inbox:    input.NewInbox(),
		daynight: lighting.NewDayNight(cfg.Lighting.DayDuration),
		log:      logger.Named("game"),
	}
	g.attachAnimators()

	g.log.Info("game initialized",
		zap.Uint64("seed", seed),
		zap.Bool("headless", cfg.Graphics.Headless))
	return g, nil
}

// World returns the simulated world.
func (g *Game) World() *world.World { return g.world }

// Inbox returns the input inbox drained at the start of every frame.
func (g *Game) Inbox() *input.Inbox { return g.inbox }

// Seed returns the seed the world was generated from.
func (g *Game) Seed() uint64 { return g.seed }

// Frontend runs a presentation loop on the calling goroutine, calling
// Step once per frame until the user quits or ctx ends.
type Frontend func(ctx context.Context, g *Game) error

// Run attaches assets in the background while the frame loop runs on the
// calling goroutine. A nil frontend runs the fixed-step headless loop.
// It returns once the loop ends and attachment settles.
func (g *Game) Run(ctx context.Context, front Frontend) (Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egCtx := errgroup.WithContext(ctx)
	var attach assets.Result
	eg.Go(func() error {
		res, err := g.loader.Attach(egCtx, g.world.Bodies())
		attach = res
		return err
	})

	var loopErr error
	if front == nil {
		loopErr = g.runHeadless(ctx)
	} else {
		loopErr = front(ctx, g)
	}

	if loopErr != nil {
		cancel()
	}
	attachErr := eg.Wait()
	if errors.Is(attachErr, context.Canceled) {
		attachErr = nil
	}

	sum := g.summary(attach)
	g.log.Info("run finished",
		zap.Uint64("frames", sum.Frames),
		zap.Float64("elapsed", sum.Elapsed),
		zap.String("player", sum.Player),
		zap.Int("loaded", sum.Loaded),
		zap.Int("possessions", sum.Possessions))

	return sum, errors.Join(loopErr, attachErr)
}

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Logger returns the game's logger.
func (g *Game) Logger() *zap.Logger { return g.log }

// Sky advances the day/night cycle by dt and returns the new sky.
func (g *Game) Sky(dt float32) lighting.Sky { return g.daynight.Update(dt) }

// Step runs one frame of simulation over the drained inbox and returns the
// events it consumed. dt is clamped to the configured maximum.
func (g *Game) Step(dt float32) []input.Event {
	if dt > g.cfg.Simulation.MaxFrameDelta {
		dt = g.cfg.Simulation.MaxFrameDelta
	}
	events := g.inbox.Drain()

	before := g.world.Player()
	g.world.Step(dt, events)
	if g.world.Player() != before {
		g.possessions++
	}
	return events
}

func (g *Game) summary(attach assets.Result) Summary {
	s := Summary{
		Frames:      g.world.Frames(),
		Elapsed:     g.world.Clock(),
		Player:      g.world.Player().Name,
		Characters:  len(g.world.Entities()),
		Trees:       len(g.world.Obstacles()),
		AssetFailed: attach.Failed,
		Possessions: g.possessions,
		Animations:  g.animations,
	}
	for _, b := range g.world.Bodies() {
		if b.IsLoaded() {
			s.Loaded++
		}
	}
	for _, e := range g.world.Entities() {
		s.PathSamples += e.History.Len()
	}
	return s
}
