// Package config handles carousel configuration loading and management.
package config

import "time"

// Render modes.
const (
	RenderContinuous = "continuous"
	RenderOnDemand   = "on_demand"
)

// Config holds all carousel settings.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Carousel CarouselConfig `yaml:"carousel"`
	Features FeaturesConfig `yaml:"features"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DisplayConfig holds window and render loop settings.
type DisplayConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Density    float32 `yaml:"density"`     // Pixels per density-independent pixel
	RenderMode string  `yaml:"render_mode"` // continuous or on_demand
	FPSLimit   int     `yaml:"fps_limit"`
}

// CarouselConfig holds card and animation settings.
type CarouselConfig struct {
	CardCount  int           `yaml:"card_count"`
	Brightness float32       `yaml:"brightness"`
	StarAlpha  float32       `yaml:"star_alpha"`
	FrameDelay time.Duration `yaml:"frame_delay"`
	LightPause time.Duration `yaml:"light_pause"`
}

// FeaturesConfig toggles the optional compositing layers.
type FeaturesConfig struct {
	Overlay bool `yaml:"overlay"`
	Tint    bool `yaml:"tint"`
	Light   bool `yaml:"light"`
}

// AssetsConfig locates card images. Patterns take the card index.
type AssetsConfig struct {
	Dir         string `yaml:"dir"`
	CardPattern string `yaml:"card_pattern"`
	TintPattern string `yaml:"tint_pattern"`
	Overlay     string `yaml:"overlay"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      540,
			Height:     960,
			Fullscreen: false,
			VSync:      true,
			Density:    1,
			RenderMode: RenderContinuous,
			FPSLimit:   0,
		},
		Carousel: CarouselConfig{
			CardCount:  5,
			Brightness: 2.0,
			StarAlpha:  0.5,
			FrameDelay: 100 * time.Millisecond,
			LightPause: time.Second,
		},
		Features: FeaturesConfig{
			Overlay: true,
			Tint:    true,
			Light:   true,
		},
		Assets: AssetsConfig{
			Dir:         "assets",
			CardPattern: "card_%d.png",
			TintPattern: "tint_%d.png",
			Overlay:     "stars.gif",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
