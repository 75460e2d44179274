// Package terminal runs the carousel in a terminal. Frames are composited by
// the software backend at the configured display size and drawn with
// half-block characters; the mouse drags the cards.
package terminal

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/app"
	"github.com/Faultbox/shaderhub/internal/assets"
	"github.com/Faultbox/shaderhub/internal/carousel"
	"github.com/Faultbox/shaderhub/internal/carousel/composite"
	"github.com/Faultbox/shaderhub/internal/carousel/physics"
	"github.com/Faultbox/shaderhub/internal/config"
	"github.com/Faultbox/shaderhub/internal/engine/debug"
	"github.com/Faultbox/shaderhub/internal/logger"
)

// DefaultFPS is the redraw rate when no limit is configured.
const DefaultFPS = 30

// KeyImpulse is the coast velocity (dp per tick) of an arrow key press.
const KeyImpulse float32 = 20

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)

// Terminal is the terminal host. Run owns the render loop; a second
// goroutine polls the screen and posts touch samples to the carousel.
type Terminal struct {
	cfg      *config.Config
	log      *zap.Logger
	screen   tcell.Screen
	backend  *composite.Software
	assets   *assets.Manager
	carousel *carousel.Carousel
	shots    *debug.ScreenshotCapture
	start    time.Time

	view    atomic.Pointer[view]
	pressed bool // touched by the polling goroutine only
	lastX   float32
	status  string
}

// New builds the carousel on the software backend and sizes it to the
// configured display. screen must already be initialized.
func New(cfg *config.Config, screen tcell.Screen, now time.Time) (*Terminal, error) {
	t := &Terminal{
		cfg:     cfg,
		log:     logger.Named("terminal"),
		screen:  screen,
		backend: composite.NewSoftware(),
		assets:  assets.NewManager(cfg.Assets.Dir),
		shots:   debug.NewScreenshotCapture(filepath.Join(config.ConfigDir(), "screenshots"), "carousel"),
		start:   now,
	}

	var err error
	t.carousel, err = app.Build(cfg, t.assets, t.backend, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build carousel: %w", err)
	}

	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()
	t.resize()
	return t, nil
}

// resize recomputes the cell mapping from the current screen size.
func (t *Terminal) resize() {
	cols, rows := t.screen.Size()
	v := newView(cols, rows, t.cfg.Display.Width, t.cfg.Display.Height)
	t.view.Store(&v)
	t.carousel.Invalidate()
	t.log.Debug("terminal resized",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("picture_width", v.width),
		zap.Int("picture_height", v.height))
}

// Run draws frames until ctx is cancelled or the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	control := make(chan tcell.Event, 16)
	go t.poll(ctx, control)

	fps := t.cfg.Display.FPSLimit
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	onDemand := app.OnDemand(t.cfg)
	timer := app.NewFrameTimer(time.Now(), 0)
	t.log.Info("starting render loop", zap.Int("fps", fps), zap.Bool("on_demand", onDemand))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-control:
			if t.control(ev) {
				return nil
			}
		case now := <-ticker.C:
			if onDemand && !t.carousel.Animating() {
				timer.Skip(now)
				continue
			}
			if err := t.Render(now, timer.Tick(now)); err != nil {
				return fmt.Errorf("render error: %w", err)
			}
		}
	}
}

// poll reads screen events. Pointer input goes straight to the carousel queue;
// everything else is forwarded to the render loop.
func (t *Terminal) poll(ctx context.Context, control chan<- tcell.Event) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if t.pointer(ev) {
			continue
		}
		select {
		case control <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// pointer translates mouse, focus and arrow-key events into samples. It
// reports whether ev was consumed.
func (t *Terminal) pointer(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		col, _ := e.Position()
		v := t.view.Load()
		x := v.surfaceX(col)
		ts := e.When().Sub(t.start)
		down := e.Buttons()&tcell.Button1 != 0

		t.lastX = x
		switch {
		case down && !t.pressed:
			t.pressed = true
			t.carousel.Post(physics.Sample{Kind: physics.SampleDown, X: x, Time: ts})
		case down:
			t.carousel.Post(physics.Sample{Kind: physics.SampleMove, X: x, Time: ts})
		case t.pressed:
			t.pressed = false
			t.carousel.Post(physics.Sample{Kind: physics.SampleUp, X: x, Time: ts})
		}
		return true

	case *tcell.EventFocus:
		// The release may never arrive once focus moves away.
		if !e.Focused && t.pressed {
			t.pressed = false
			t.carousel.Post(physics.Sample{Kind: physics.SampleCancel, X: t.lastX, Time: e.When().Sub(t.start)})
		}
		return true

	case *tcell.EventKey:
		var v float32
		switch e.Key() {
		case tcell.KeyLeft:
			v = -KeyImpulse
		case tcell.KeyRight:
			v = KeyImpulse
		default:
			return false
		}
		t.carousel.Post(physics.Sample{Kind: physics.SampleImpulse, X: v, Time: e.When().Sub(t.start)})
		return true
	}
	return false
}

// control handles non-pointer events on the render goroutine. It reports
// whether the host should quit.
func (t *Terminal) control(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC:
			return true
		case e.Key() == tcell.KeyRune && e.Rune() == 'q':
			return true
		case e.Key() == tcell.KeyRune && e.Rune() == 's':
			t.snapshot()
		}
	}
	return false
}

// Render runs one carousel frame and shows it.
func (t *Terminal) Render(now time.Time, dt time.Duration) error {
	if err := t.carousel.Frame(now, dt); err != nil {
		return err
	}

	v := t.view.Load()
	t.screen.Clear()
	if frame := t.backend.Image(); frame != nil {
		present(t.screen, frame, *v)
	}

	s := t.carousel.Snapshot()
	line := fmt.Sprintf(" %s  x=%.0f/%.0f  frame %d  light %s  |  drag, ←/→, s: snapshot, q: quit ",
		s.Scroll.Phase, s.Scroll.TranslationX, t.carousel.Layout().MaxTranslation, s.Frame, s.LightPhase)
	if t.status != "" {
		line = " " + t.status + " " + line
	}
	drawText(t.screen, v.statusRow(), line, statusStyle)

	t.screen.Show()
	return nil
}

// snapshot saves the last composited frame at full resolution.
func (t *Terminal) snapshot() {
	frame := t.backend.Image()
	if frame == nil {
		t.status = "nothing to save"
		return
	}
	path, err := t.shots.CaptureFromImage(frame)
	if err != nil {
		t.log.Warn("snapshot failed", zap.Error(err))
		t.status = "snapshot failed"
		return
	}
	t.log.Info("snapshot saved", zap.String("path", path))
	t.status = "saved " + filepath.Base(path)
	t.carousel.Invalidate()
}

// Carousel returns the hosted carousel.
func (t *Terminal) Carousel() *carousel.Carousel {
	return t.carousel
}

// Close releases the carousel and the asset cache. The caller finalizes the screen.
func (t *Terminal) Close() {
	t.log.Info("closing terminal host", zap.Int("textures", t.backend.TextureCount()))
	t.carousel.Destroy()
	t.assets.Close()
}
