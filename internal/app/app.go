// Package app assembles a carousel from configuration. It holds everything a
// host needs that does not depend on a window system, so the desktop and
// terminal hosts share one bootstrap.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/assets"
	"github.com/Faultbox/shaderhub/internal/carousel"
	"github.com/Faultbox/shaderhub/internal/carousel/composite"
	"github.com/Faultbox/shaderhub/internal/config"
	"github.com/Faultbox/shaderhub/internal/logger"
)

// Title is the window and log banner name.
const Title = "ShaderHub Carousel"

// CarouselOptions maps configuration onto carousel options.
func CarouselOptions(cfg *config.Config) carousel.Options {
	opts := carousel.DefaultOptions()
	opts.CardCount = cfg.Carousel.CardCount
	opts.Density = cfg.Display.Density
	opts.FrameDelay = cfg.Carousel.FrameDelay
	opts.LightPause = cfg.Carousel.LightPause
	return opts
}

// PipelineConfig maps configuration onto shading constants.
func PipelineConfig(cfg *config.Config) composite.Config {
	pc := composite.DefaultConfig()
	pc.Brightness = cfg.Carousel.Brightness
	pc.StarAlpha = cfg.Carousel.StarAlpha
	pc.Features = composite.Features{
		Overlay: cfg.Features.Overlay,
		Tint:    cfg.Features.Tint,
		Light:   cfg.Features.Light,
	}
	return pc
}

// AssetSpec lists the files to load. Disabled layers are not read at all.
func AssetSpec(cfg *config.Config) assets.SetSpec {
	return assets.SetSpec{
		Count:         cfg.Carousel.CardCount,
		CardPattern:   cfg.Assets.CardPattern,
		TintPattern:   cfg.Assets.TintPattern,
		Overlay:       cfg.Assets.Overlay,
		FrameInterval: cfg.Carousel.FrameDelay,
		SkipTints:     !cfg.Features.Tint,
		SkipOverlay:   !cfg.Features.Overlay,
	}
}

// Build loads assets through manager, uploads them to backend and returns a
// carousel sized to the configured display. Missing assets only degrade the
// affected cards; backend failures are returned.
func Build(cfg *config.Config, manager *assets.Manager, backend composite.Backend, now time.Time) (*carousel.Carousel, error) {
	set := manager.LoadSet(AssetSpec(cfg))

	pipeline, err := composite.New(backend, PipelineConfig(cfg), composite.Assets{
		Cards:  set.Cards,
		Tints:  set.Tints,
		Frames: set.Frames,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	c := carousel.New(CarouselOptions(cfg), pipeline, now)
	if err := c.Resize(cfg.Display.Width, cfg.Display.Height); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("initial layout: %w", err)
	}

	logger.Info("carousel ready",
		zap.String("backend", backend.Name()),
		zap.Int("cards", cfg.Carousel.CardCount),
		zap.Int("frames", pipeline.FrameCount()),
		zap.String("render_mode", cfg.Display.RenderMode),
	)
	return c, nil
}
