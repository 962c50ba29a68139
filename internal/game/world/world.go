// Package world owns the forest population and runs the per-frame
// simulation pipeline.
package world

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/sakura-forest/internal/config"
	"github.com/Faultbox/sakura-forest/internal/engine/camera"
	"github.com/Faultbox/sakura-forest/internal/game/agent"
	"github.com/Faultbox/sakura-forest/internal/game/collision"
	"github.com/Faultbox/sakura-forest/internal/game/controller"
	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/internal/logger"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

// Model keys resolved by the asset loader.
const (
	ModelCharacter = "character"
	ModelTree      = "sakura_tree"
)

// World is a fixed population of characters and trees. It is owned by a
// single frame loop; only asset attachment may touch it from elsewhere.
type World struct {
	cfg *config.Config
	rng *rand.Rand
	log *zap.Logger

	entities  []*entity.Entity
	obstacles []*entity.Obstacle
	player    *entity.Entity

	wanderer   *agent.Wanderer
	controller *controller.Controller
	camera     *camera.ThirdPersonCamera
	resolver   *collision.Resolver

	viewportW float32
	viewportH float32

	clock  float64
	frames uint64
}

// New populates a world from cfg. Entity 0 starts as the player.
func New(cfg *config.Config, rng *rand.Rand) (*World, error) {
	mode, err := collision.ParseMode(cfg.Collision.Mode)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if cfg.Simulation.NPCCount < 1 {
		return nil, fmt.Errorf("world: %w: need at least one character", config.ErrInvalid)
	}

	w := &World{
		cfg:        cfg,
		rng:        rng,
		log:        logger.Named("world"),
		wanderer:   agent.New(agentConfig(cfg), rng),
		controller: controller.New(controllerConfig(cfg)),
		camera:     camera.NewThirdPersonCamera(cameraConfig(cfg)),
		resolver:   collision.NewResolver(cfg.Collision.Radius, mode),
		viewportW:  float32(cfg.Graphics.Width),
		viewportH:  float32(cfg.Graphics.Height),
	}

	w.spawnCharacters(cfg.Simulation.NPCCount)
	w.spawnTrees(cfg.Simulation.TreeCount)
	w.possess(w.entities[0])

	w.log.Info("world populated",
		zap.Int("characters", len(w.entities)),
		zap.Int("trees", len(w.obstacles)),
		zap.Stringer("collision", mode))
	return w, nil
}

func (w *World) spawnCharacters(n int) {
	w.entities = make([]*entity.Entity, 0, n)
	for i := 0; i < n; i++ {
		e := entity.NewEntity(entity.ID(i), ModelCharacter, w.randomGroundPoint(), w.cfg.Wander.HistoryCapacity)
		e.Name = fmt.Sprintf("villager-%02d", i)
		e.Yaw = -math.Pi / 2
		e.Color = entity.RandomPastel(w.rng)
		e.WalkSpeed = w.cfg.Wander.WalkSpeed
		e.RunSpeed = w.cfg.Wander.RunSpeed
		w.wanderer.Reset(e)
		w.entities = append(w.entities, e)
	}
}

func (w *World) spawnTrees(n int) {
	w.obstacles = make([]*entity.Obstacle, 0, n)
	base := len(w.entities)
	for i := 0; i < n; i++ {
		id := entity.ID(base + i)
		w.obstacles = append(w.obstacles,
			entity.NewObstacle(id, ModelTree, w.randomGroundPoint(), w.rng.Float32()*math.TwoPi))
	}
}

func (w *World) randomGroundPoint() math.Vec3 {
	ext := w.cfg.Simulation.SpawnExtent
	return math.Vec3{
		X: (w.rng.Float32()*2 - 1) * ext,
		Z: (w.rng.Float32()*2 - 1) * ext,
	}
}

// Entities returns every character, player included.
func (w *World) Entities() []*entity.Entity { return w.entities }

// Obstacles returns every tree.
func (w *World) Obstacles() []*entity.Obstacle { return w.obstacles }

// Player returns the possessed character.
func (w *World) Player() *entity.Entity { return w.player }

// Camera returns the follow camera.
func (w *World) Camera() *camera.ThirdPersonCamera { return w.camera }

// Controller returns the player input controller.
func (w *World) Controller() *controller.Controller { return w.controller }

// Clock returns simulated seconds since the world was created.
func (w *World) Clock() float64 { return w.clock }

// Frames returns the number of completed steps.
func (w *World) Frames() uint64 { return w.frames }

// Bodies returns every body that needs an asset attached.
func (w *World) Bodies() []*entity.Body {
	bodies := make([]*entity.Body, 0, len(w.entities)+len(w.obstacles))
	for _, e := range w.entities {
		bodies = append(bodies, &e.Body)
	}
	for _, o := range w.obstacles {
		bodies = append(bodies, &o.Body)
	}
	return bodies
}

// SetViewport records the drawable size used for picking.
func (w *World) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.viewportW, w.viewportH = float32(width), float32(height)
}

// Aspect returns the viewport aspect ratio.
func (w *World) Aspect() float32 {
	if w.viewportH == 0 {
		return 1
	}
	return w.viewportW / w.viewportH
}
