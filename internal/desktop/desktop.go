// Package desktop runs the carousel in an SDL2 window with the OpenGL backend.
package desktop

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/app"
	"github.com/Faultbox/shaderhub/internal/assets"
	"github.com/Faultbox/shaderhub/internal/carousel"
	"github.com/Faultbox/shaderhub/internal/config"
	"github.com/Faultbox/shaderhub/internal/engine/debug"
	"github.com/Faultbox/shaderhub/internal/engine/input"
	"github.com/Faultbox/shaderhub/internal/engine/renderer"
	"github.com/Faultbox/shaderhub/internal/engine/window"
	"github.com/Faultbox/shaderhub/internal/logger"
)

// Desktop is the windowed host.
type Desktop struct {
	cfg      *config.Config
	running  bool
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	assets   *assets.Manager
	carousel *carousel.Carousel
	shots    *debug.ScreenshotCapture
	shotDue  bool
}

// New creates the window, GL backend and carousel.
func New(cfg *config.Config) (*Desktop, error) {
	d := &Desktop{
		cfg: cfg,
		log: logger.Named("desktop"),
	}
	d.log.Info("initializing desktop host",
		zap.Int("width", cfg.Display.Width),
		zap.Int("height", cfg.Display.Height),
		zap.String("render_mode", cfg.Display.RenderMode),
	)

	var err error
	d.window, err = window.New(window.Config{
		Title:      app.Title,
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
		HighDPI:    cfg.Display.Density > 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer comes AFTER the window, since the GL context must exist.
	w, h := d.window.DrawableSize()
	d.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		d.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	d.assets = assets.NewManager(cfg.Assets.Dir)
	d.carousel, err = app.Build(cfg, d.assets, d.renderer, time.Now())
	if err != nil {
		d.renderer.Destroy()
		d.window.Close()
		return nil, fmt.Errorf("failed to build carousel: %w", err)
	}
	// Display size from config is in window points; layout works in drawable pixels.
	if err := d.carousel.Resize(w, h); err != nil {
		d.Close()
		return nil, err
	}

	d.input = input.New()
	ww, _ := d.window.GetSize()
	d.input.SetWidth(ww)

	d.shots = debug.NewScreenshotCapture(filepath.Join(config.ConfigDir(), "screenshots"), "carousel")

	d.log.Info("desktop host initialized")
	return d, nil
}

// Run drives the render loop until the window closes or Esc is pressed.
func (d *Desktop) Run() error {
	d.running = true
	onDemand := app.OnDemand(d.cfg)
	timer := app.NewFrameTimer(time.Now(), d.cfg.Display.FPSLimit)

	d.log.Info("starting render loop", zap.Bool("on_demand", onDemand))

	for d.running {
		frameStart := time.Now()

		var wait time.Duration
		if onDemand && !d.carousel.Animating() {
			wait = app.IdleWait
		}
		if d.input.Update(wait) {
			break
		}
		if err := d.handleEvents(); err != nil {
			return err
		}
		if !d.running {
			break
		}

		now := time.Now()
		if onDemand && !d.carousel.Animating() {
			timer.Skip(now)
			continue
		}

		if err := d.carousel.Frame(now, timer.Tick(now)); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if d.shotDue {
			d.shotDue = false
			d.snapshot()
		}
		d.window.SwapBuffers()

		if rem := timer.Remaining(frameStart, time.Now()); rem > 0 {
			sdl.Delay(uint32(rem / time.Millisecond))
		}
	}

	return nil
}

func (d *Desktop) handleEvents() error {
	for _, event := range d.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := d.window.DrawableSize()
			if err := d.carousel.Resize(w, h); err != nil {
				return fmt.Errorf("resize error: %w", err)
			}
		case input.EventTouch:
			d.carousel.Post(event.Sample)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				d.running = false
			case sdl.SCANCODE_F12:
				d.shotDue = true
				d.carousel.Invalidate()
			}
		}
	}
	return nil
}

// snapshot saves the frame just drawn, before it is presented.
func (d *Desktop) snapshot() {
	pixels, w, h := d.renderer.ReadPixels()
	path, err := d.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		d.log.Warn("snapshot failed", zap.Error(err))
		return
	}
	d.log.Info("snapshot saved", zap.String("path", path))
	d.window.SetTitle(app.Title + " - " + filepath.Base(path))
}

// Close releases the carousel, renderer and window.
func (d *Desktop) Close() {
	if d.renderer != nil {
		d.log.Info("closing desktop host", zap.Int("textures", d.renderer.TextureCount()))
	}

	if d.carousel != nil {
		d.carousel.Destroy()
		d.carousel = nil
	}
	if d.assets != nil {
		d.assets.Close()
	}
	if d.window != nil {
		d.window.Close()
		d.window = nil
	}
}
