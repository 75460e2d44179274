package config

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks value ranges. It returns the first problem found.
func (c *Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	case c.Display.Density <= 0:
		return fmt.Errorf("%w: display.density must be positive, got %v", ErrInvalid, c.Display.Density)
	case c.Display.RenderMode != RenderContinuous && c.Display.RenderMode != RenderOnDemand:
		return fmt.Errorf("%w: display.render_mode %q", ErrInvalid, c.Display.RenderMode)
	case c.Display.FPSLimit < 0:
		return fmt.Errorf("%w: display.fps_limit %d", ErrInvalid, c.Display.FPSLimit)
	case c.Carousel.CardCount < 0:
		return fmt.Errorf("%w: carousel.card_count %d", ErrInvalid, c.Carousel.CardCount)
	case c.Carousel.Brightness < 0:
		return fmt.Errorf("%w: carousel.brightness %v", ErrInvalid, c.Carousel.Brightness)
	case c.Carousel.StarAlpha < 0 || c.Carousel.StarAlpha > 1:
		return fmt.Errorf("%w: carousel.star_alpha %v not in [0, 1]", ErrInvalid, c.Carousel.StarAlpha)
	case c.Carousel.FrameDelay <= 0:
		return fmt.Errorf("%w: carousel.frame_delay %v", ErrInvalid, c.Carousel.FrameDelay)
	case c.Carousel.LightPause < 0:
		return fmt.Errorf("%w: carousel.light_pause %v", ErrInvalid, c.Carousel.LightPause)
	}
	return nil
}
