// Package main is the entry point for the Sakura Forest simulation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/sakura-forest/internal/config"
	"github.com/Faultbox/sakura-forest/internal/game"
	"github.com/Faultbox/sakura-forest/internal/game/windowed"
	"github.com/Faultbox/sakura-forest/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Sakura Forest ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}

	var front game.Frontend
	if !cfg.Graphics.Headless {
		front = windowed.Run
	}

	sum, err := g.Run(ctx, front)
	if err != nil && ctx.Err() == nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("forest closed normally",
		zap.Uint64("seed", g.Seed()),
		zap.Uint64("frames", sum.Frames),
		zap.Int("path_samples", sum.PathSamples))
}
