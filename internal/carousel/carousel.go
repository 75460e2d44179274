// Package carousel wires the scroll physics, overlay clock, moving light and
// compositing pipeline into one per-frame update.
//
// A Carousel is owned by the render goroutine. Input goroutines only call
// Post, which hands samples over through a bounded queue that is drained at
// the start of every Frame.
package carousel

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/carousel/anim"
	"github.com/Faultbox/shaderhub/internal/carousel/composite"
	"github.com/Faultbox/shaderhub/internal/carousel/layout"
	"github.com/Faultbox/shaderhub/internal/carousel/physics"
	"github.com/Faultbox/shaderhub/internal/logger"
	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

// Options configure a Carousel.
type Options struct {
	CardCount  int
	Density    float32
	FrameDelay time.Duration
	LightPause time.Duration
	QueueSize  int
}

// DefaultOptions returns five cards at density 1 with the standard timings.
func DefaultOptions() Options {
	return Options{
		CardCount:  5,
		Density:    1,
		FrameDelay: anim.DefaultFrameDelay,
		LightPause: anim.DefaultLightPause,
		QueueSize:  physics.DefaultQueueSize,
	}
}

// Snapshot is a read-only view of the carousel after the last frame.
type Snapshot struct {
	Scroll     physics.State
	Frame      int
	Light      vmath.Vec2
	LightPhase anim.LightPhase
	Width      int
	Height     int
}

// Carousel is the card carousel.
type Carousel struct {
	opts     Options
	features composite.Features
	log      *zap.Logger

	layout   *layout.Layout
	engine   *physics.Engine
	queue    *physics.Queue
	clock    *anim.Clock
	light    *anim.Light
	pipeline *composite.Pipeline

	lastPhase   physics.Phase
	lastDropped uint64
	dirty       bool
}

// New creates a carousel drawing through pipeline. The surface is empty until
// the first Resize.
func New(opts Options, pipeline *composite.Pipeline, now time.Time) *Carousel {
	if opts.CardCount < 0 {
		opts.CardCount = 0
	}
	if opts.Density <= 0 {
		opts.Density = 1
	}

	return &Carousel{
		opts:     opts,
		features: pipeline.Config().Features,
		log:      logger.Named("carousel"),
		layout:   layout.Build(layout.Params{CardCount: opts.CardCount, Density: opts.Density}),
		engine:   physics.NewEngine(opts.Density),
		queue:    physics.NewQueue(opts.QueueSize),
		clock:    anim.NewClock(pipeline.FrameCount(), opts.FrameDelay, now),
		light:    anim.NewLight(vmath.Vec2{}, opts.LightPause),
		pipeline: pipeline,
		dirty:    true,
	}
}

// Resize rebuilds the layout for a new surface size.
func (c *Carousel) Resize(width, height int) error {
	c.layout = layout.Build(layout.Params{
		Width:     width,
		Height:    height,
		CardCount: c.opts.CardCount,
		Density:   c.opts.Density,
	})
	c.engine.SetMaxTranslation(c.layout.MaxTranslation)
	c.dirty = true

	c.log.Debug("resize",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float32("card_width", c.layout.CardWidth),
		zap.Float32("max_translation", c.layout.MaxTranslation))

	if err := c.pipeline.Resize(c.layout); err != nil {
		return fmt.Errorf("resize %dx%d: %w", width, height, err)
	}
	return nil
}

// Post hands an input sample to the render goroutine. It is safe to call from
// any goroutine and never blocks; it returns false if the sample was dropped.
func (c *Carousel) Post(s physics.Sample) bool {
	return c.queue.Post(s)
}

// Frame runs one render tick: drain input, step physics, advance the overlay
// frame and the light, then draw.
func (c *Carousel) Frame(now time.Time, dt time.Duration) error {
	if c.queue.Drain(c.engine.Apply) > 0 {
		c.dirty = true
	}
	if dropped := c.queue.Dropped(); dropped != c.lastDropped {
		c.log.Debug("input samples dropped", zap.Uint64("total", dropped))
		c.lastDropped = dropped
	}

	c.engine.Tick(dt)
	if phase := c.engine.Phase(); phase != c.lastPhase {
		c.log.Debug("scroll phase",
			zap.Stringer("from", c.lastPhase),
			zap.Stringer("to", phase),
			zap.Float32("translation_x", c.engine.TranslationX()))
		c.lastPhase = phase
	}

	if c.features.Overlay {
		c.clock.Tick(now)
	}
	if c.features.Light {
		c.light.Tick(now)
	}

	err := c.pipeline.Draw(c.layout, composite.FrameState{
		TranslationX: c.engine.TranslationX(),
		Frame:        c.clock.Frame(),
		Light:        c.light.Position(),
	})
	c.dirty = false
	return err
}

// Animating reports whether another frame would differ from the last one.
// On-demand hosts keep drawing while this is true and otherwise wait for input.
func (c *Carousel) Animating() bool {
	switch {
	case c.dirty || c.queue.Len() > 0:
		return true
	case c.engine.Animating():
		return true
	case c.features.Light:
		return true
	case c.features.Overlay && c.clock.FrameCount() > 1:
		return true
	}
	return false
}

// Invalidate forces the next Animating call to report true.
func (c *Carousel) Invalidate() {
	c.dirty = true
}

// Snapshot returns the state after the last frame.
func (c *Carousel) Snapshot() Snapshot {
	return Snapshot{
		Scroll:     c.engine.State(),
		Frame:      c.clock.Frame(),
		Light:      c.light.Position(),
		LightPhase: c.light.Phase(),
		Width:      c.layout.Width,
		Height:     c.layout.Height,
	}
}

// Layout returns the current layout.
func (c *Carousel) Layout() *layout.Layout {
	return c.layout
}

// Pipeline returns the compositing pipeline.
func (c *Carousel) Pipeline() *composite.Pipeline {
	return c.pipeline
}

// Destroy releases the pipeline's resources.
func (c *Carousel) Destroy() {
	c.pipeline.Destroy()
}
