package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.Uint64("seed", 0, "Random seed (0 = random)")
	flagNPCs       = flag.Int("npcs", 0, "Number of characters")
	flagTrees      = flag.Int("trees", -1, "Number of trees")
	flagHeadless   = flag.Bool("headless", false, "Run without a window")
	flagFrames     = flag.Int("frames", 0, "Frames to simulate in headless mode")
	flagCollision  = flag.String("collision", "", "Collision mode: deferred or sequential")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Simulation.Seed = *flagSeed
	}
	if *flagNPCs > 0 {
		cfg.Simulation.NPCCount = *flagNPCs
	}
	if *flagTrees >= 0 {
		cfg.Simulation.TreeCount = *flagTrees
	}
	if *flagHeadless {
		cfg.Graphics.Headless = true
	}
	if *flagFrames > 0 {
		cfg.Simulation.HeadlessFrames = *flagFrames
	}
	if *flagCollision != "" {
		cfg.Collision.Mode = *flagCollision
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
