// Package physics implements the carousel's one-dimensional scroll physics:
// drag capture, release-velocity estimation, spline fling, friction coast and
// edge-spring correction.
package physics

import (
	"time"

	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

// Fixed design parameters.
const (
	// Friction is the fraction of coast velocity retained per tick.
	Friction float32 = 0.95
	// EdgeSpring is the fraction of overshoot removed per tick.
	EdgeSpring float32 = 0.3
	// TouchSlop scales raw pointer deltas during a drag.
	TouchSlop float32 = 0.5
	// VelocityEpsilon is the coast velocity below which motion stops.
	VelocityEpsilon float32 = 0.5

	// springSnap is the overshoot (px) below which the spring lands on the bound.
	springSnap float32 = 0.01

	// Fling velocity thresholds in dp per second.
	minFlingDP = 50
	maxFlingDP = 8000
)

// Phase describes what drives the translation on the next tick.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseFlinging
	PhaseCoasting
)

// String returns a human-readable name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseFlinging:
		return "flinging"
	case PhaseCoasting:
		return "coasting"
	default:
		return "unknown"
	}
}

// State is a snapshot of the carousel scroll state.
type State struct {
	TranslationX float32
	Velocity     float32
	IsDragging   bool
	LastTouchX   float32
	Phase        Phase
}

// Engine owns the scroll offset. It is not safe for concurrent use: touch
// samples from other goroutines go through a Queue drained by the ticking
// goroutine.
type Engine struct {
	translationX float32
	velocity     float32 // coast velocity, dp per tick
	isDragging   bool
	lastTouchX   float32

	maxTranslation float32
	density        float32
	minFling       float32
	maxFling       float32

	tracker VelocityTracker
	fling   Fling
	clock   time.Duration
}

// NewEngine creates an engine for a display with the given density scale.
func NewEngine(density float32) *Engine {
	if density <= 0 {
		density = 1
	}
	return &Engine{
		density:  density,
		minFling: minFlingDP * density,
		maxFling: maxFlingDP * density,
		fling:    NewFling(density),
	}
}

// State returns a snapshot of the current scroll state.
func (e *Engine) State() State {
	return State{
		TranslationX: e.translationX,
		Velocity:     e.velocity,
		IsDragging:   e.isDragging,
		LastTouchX:   e.lastTouchX,
		Phase:        e.Phase(),
	}
}

// Phase returns what currently drives the translation.
func (e *Engine) Phase() Phase {
	switch {
	case e.isDragging:
		return PhaseDragging
	case e.fling.Active():
		return PhaseFlinging
	case e.velocity != 0:
		return PhaseCoasting
	default:
		return PhaseIdle
	}
}

// TranslationX returns the current scroll offset in pixels.
func (e *Engine) TranslationX() float32 {
	return e.translationX
}

// MaxTranslation returns the upper scroll bound.
func (e *Engine) MaxTranslation() float32 {
	return e.maxTranslation
}

// Animating reports whether further ticks will change the translation.
func (e *Engine) Animating() bool {
	return e.fling.Active() || e.velocity != 0 || e.outOfBounds()
}

// SetMaxTranslation updates the scroll bound after a layout change. The
// offset is left untouched; the edge spring pulls it back if it now overshoots.
func (e *Engine) SetMaxTranslation(max float32) {
	if max < 0 {
		max = 0
	}
	if max == e.maxTranslation {
		return
	}
	e.maxTranslation = max
	e.fling.Stop()
}

// DragStart begins a drag at x, cancelling any fling or coast.
func (e *Engine) DragStart(x float32, t time.Duration) {
	e.fling.Stop()
	e.velocity = 0
	e.tracker.Reset()
	e.tracker.Add(x, t)
	e.lastTouchX = x
	e.isDragging = true
}

// DragMove follows the pointer to x. The offset is clamped to the valid range.
func (e *Engine) DragMove(x float32, t time.Duration) {
	if !e.isDragging {
		return
	}
	deltaX := (x - e.lastTouchX) * TouchSlop
	e.translationX = vmath.Clamp(e.translationX-deltaX*e.density, 0, e.maxTranslation)
	e.lastTouchX = x
	e.tracker.Add(x, t)
}

// DragEnd releases the pointer at x and starts a fling when the release
// velocity exceeds the minimum fling velocity. It returns the release
// velocity in px/s (0 when no samples were recorded).
func (e *Engine) DragEnd(x float32, t time.Duration) float32 {
	if !e.isDragging {
		return 0
	}
	e.isDragging = false
	e.lastTouchX = x

	v := e.tracker.Velocity(e.maxFling)
	e.tracker.Reset()

	if vmath.Abs(v) > e.minFling {
		// Dragging right scrolls toward the start, so the offset moves against the pointer.
		e.fling.Start(e.translationX, -v, 0, e.maxTranslation, e.clock)
	}
	return v
}

// Apply dispatches a touch sample.
func (e *Engine) Apply(s Sample) {
	switch s.Kind {
	case SampleDown:
		e.DragStart(s.X, s.Time)
	case SampleMove:
		e.DragMove(s.X, s.Time)
	case SampleUp, SampleCancel:
		e.DragEnd(s.X, s.Time)
	case SampleImpulse:
		e.Impulse(s.X)
	}
}

// Impulse starts a friction-only coast with velocity v (dp per tick).
// It is ignored while dragging.
func (e *Engine) Impulse(v float32) {
	if e.isDragging {
		return
	}
	e.fling.Stop()
	e.velocity = v
}

// Tick advances the simulation by dt. It runs the fling or the friction
// coast when not dragging, then applies the edge spring unconditionally.
func (e *Engine) Tick(dt time.Duration) {
	if dt > 0 {
		e.clock += dt
	}

	if !e.isDragging {
		switch {
		case e.fling.Active():
			prev := e.translationX
			x, done := e.fling.Advance(e.clock)
			e.translationX = x
			if done {
				// Hand the last step to the coast so motion tails off instead of stopping dead.
				e.velocity = (x - prev) / e.density
				if vmath.Abs(e.velocity) < VelocityEpsilon {
					e.velocity = 0
				}
			}
		case e.velocity != 0:
			e.velocity *= Friction
			e.translationX = vmath.Clamp(e.translationX+e.velocity*e.density, 0, e.maxTranslation)
			if vmath.Abs(e.velocity) < VelocityEpsilon {
				e.velocity = 0
			}
		}
	}

	e.applyEdgeSpring()
}

func (e *Engine) applyEdgeSpring() {
	switch {
	case e.translationX < 0:
		e.translationX -= e.translationX * EdgeSpring
		if e.translationX > -springSnap {
			e.translationX = 0
		}
	case e.translationX > e.maxTranslation:
		e.translationX -= (e.translationX - e.maxTranslation) * EdgeSpring
		if e.translationX-e.maxTranslation < springSnap {
			e.translationX = e.maxTranslation
		}
	}
}

func (e *Engine) outOfBounds() bool {
	return e.translationX < 0 || e.translationX > e.maxTranslation
}
