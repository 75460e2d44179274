package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagCards      = flag.Int("cards", -1, "Number of cards")
	flagAssets     = flag.String("assets", "", "Asset directory")
	flagOnDemand   = flag.Bool("on-demand", false, "Redraw only after input or while animating")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Display.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Display.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
	if *flagCards >= 0 {
		cfg.Carousel.CardCount = *flagCards
	}
	if *flagAssets != "" {
		cfg.Assets.Dir = *flagAssets
	}
	if *flagOnDemand {
		cfg.Display.RenderMode = RenderOnDemand
	}
}
