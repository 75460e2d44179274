package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Width != 540 || cfg.Display.Height != 960 {
		t.Errorf("expected 540x960, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Display.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Display.RenderMode != RenderContinuous {
		t.Errorf("expected continuous render mode, got %s", cfg.Display.RenderMode)
	}

	if cfg.Carousel.CardCount != 5 {
		t.Errorf("expected 5 cards, got %d", cfg.Carousel.CardCount)
	}
	if cfg.Carousel.Brightness != 2.0 {
		t.Errorf("expected brightness 2.0, got %f", cfg.Carousel.Brightness)
	}
	if cfg.Carousel.StarAlpha != 0.5 {
		t.Errorf("expected star alpha 0.5, got %f", cfg.Carousel.StarAlpha)
	}
	if cfg.Carousel.FrameDelay != 100*time.Millisecond {
		t.Errorf("expected frame delay 100ms, got %v", cfg.Carousel.FrameDelay)
	}

	if !cfg.Features.Overlay || !cfg.Features.Tint || !cfg.Features.Light {
		t.Errorf("expected every feature enabled, got %+v", cfg.Features)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1080
  height: 1920
  fullscreen: true
  vsync: false
  density: 2.75
  render_mode: on_demand
  fps_limit: 120

carousel:
  card_count: 8
  brightness: 1.5
  star_alpha: 0.25
  frame_delay: 50ms
  light_pause: 2s

features:
  overlay: false
  tint: true
  light: false

assets:
  dir: "/srv/cards"
  overlay: "sparkle.gif"

logging:
  level: "debug"
  log_file: "carousel.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 1080 || cfg.Display.Height != 1920 {
		t.Errorf("expected 1080x1920, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if !cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Display.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Display.Density != 2.75 {
		t.Errorf("expected density 2.75, got %f", cfg.Display.Density)
	}
	if cfg.Display.RenderMode != RenderOnDemand {
		t.Errorf("expected on_demand, got %s", cfg.Display.RenderMode)
	}

	if cfg.Carousel.CardCount != 8 {
		t.Errorf("expected 8 cards, got %d", cfg.Carousel.CardCount)
	}
	if cfg.Carousel.FrameDelay != 50*time.Millisecond {
		t.Errorf("expected frame delay 50ms, got %v", cfg.Carousel.FrameDelay)
	}
	if cfg.Carousel.LightPause != 2*time.Second {
		t.Errorf("expected light pause 2s, got %v", cfg.Carousel.LightPause)
	}

	if cfg.Features.Overlay || !cfg.Features.Tint || cfg.Features.Light {
		t.Errorf("unexpected features %+v", cfg.Features)
	}

	if cfg.Assets.Dir != "/srv/cards" {
		t.Errorf("expected asset dir /srv/cards, got %s", cfg.Assets.Dir)
	}
	// Unset keys keep their defaults.
	if cfg.Assets.CardPattern != "card_%d.png" {
		t.Errorf("expected default card pattern, got %s", cfg.Assets.CardPattern)
	}

	if cfg.Logging.LogFile != "carousel.log" {
		t.Errorf("expected log file 'carousel.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
display:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFileValidates(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("display:\n  density: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"negative height", func(c *Config) { c.Display.Height = -1 }},
		{"zero density", func(c *Config) { c.Display.Density = 0 }},
		{"unknown render mode", func(c *Config) { c.Display.RenderMode = "lazy" }},
		{"negative fps limit", func(c *Config) { c.Display.FPSLimit = -30 }},
		{"negative cards", func(c *Config) { c.Carousel.CardCount = -1 }},
		{"negative brightness", func(c *Config) { c.Carousel.Brightness = -0.1 }},
		{"star alpha above one", func(c *Config) { c.Carousel.StarAlpha = 1.5 }},
		{"zero frame delay", func(c *Config) { c.Carousel.FrameDelay = 0 }},
		{"negative light pause", func(c *Config) { c.Carousel.LightPause = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	cfg := Default()
	cfg.Carousel.CardCount = 0
	cfg.Carousel.LightPause = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero cards and zero pause are valid: %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Display.RenderMode = RenderOnDemand
	cfg.Carousel.FrameDelay = 80 * time.Millisecond
	cfg.Features.Tint = false
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if loaded.Display.RenderMode != RenderOnDemand {
		t.Errorf("expected on_demand, got %s", loaded.Display.RenderMode)
	}
	if loaded.Carousel.FrameDelay != 80*time.Millisecond {
		t.Errorf("expected 80ms, got %v", loaded.Carousel.FrameDelay)
	}
	if loaded.Features.Tint {
		t.Error("expected tint disabled after round trip")
	}
}

func TestSaveWritesToConfigDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	t.Setenv("APPDATA", tmp)

	cfg := Default()
	cfg.Carousel.CardCount = 3
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(ConfigDir(), "config.yaml"); path != want {
		t.Errorf("Save path: got %s, want %s", path, want)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if loaded.Carousel.CardCount != 3 {
		t.Errorf("CardCount: got %d, want 3", loaded.Carousel.CardCount)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("display:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Display.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Display.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1080
				*flagHeight = 2340
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Display.Width != 1080 || cfg.Display.Height != 2340 {
					t.Errorf("expected 1080x2340, got %dx%d", cfg.Display.Width, cfg.Display.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "cards flag",
			setup: func() { *flagCards = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Carousel.CardCount != 0 {
					t.Errorf("expected 0 cards, got %d", cfg.Carousel.CardCount)
				}
			},
			teardown: func() { *flagCards = -1 },
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/tmp/cards" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Dir != "/tmp/cards" {
					t.Errorf("expected /tmp/cards, got %s", cfg.Assets.Dir)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "on-demand flag",
			setup: func() { *flagOnDemand = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Display.RenderMode != RenderOnDemand {
					t.Errorf("expected on_demand, got %s", cfg.Display.RenderMode)
				}
			},
			teardown: func() { *flagOnDemand = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 720
  height: 1280
carousel:
  card_count: 3
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1080
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 1080 {
		t.Errorf("expected width 1080 from flag, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 1280 {
		t.Errorf("expected height 1280 from file, got %d", cfg.Display.Height)
	}
	if cfg.Carousel.CardCount != 3 {
		t.Errorf("expected 3 cards from file, got %d", cfg.Carousel.CardCount)
	}
}
