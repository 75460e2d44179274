package anim

import (
	"time"

	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

// Light sweep parameters.
const (
	LightSpeed float32 = 0.01
	LightBound float32 = 1.4

	// DefaultLightPause is how long the light rests at the far corner.
	DefaultLightPause = time.Second

	// lightSnap absorbs float32 accumulation error so the bound is reached on
	// the exact tick the nominal sum says it should.
	lightSnap float32 = 1e-4
)

// LightPhase is the light state machine's state.
type LightPhase int

const (
	LightMoving LightPhase = iota
	LightPaused
)

// String returns a human-readable name for logging.
func (p LightPhase) String() string {
	if p == LightPaused {
		return "paused"
	}
	return "moving"
}

// Light sweeps a 2D light position diagonally from (-1.4, -1.4) to (1.4, 1.4),
// rests, then jumps back to the start and repeats.
type Light struct {
	position       vmath.Vec2
	phase          LightPhase
	pauseStartTime time.Time
	pauseDuration  time.Duration
}

// NewLight creates a moving light at start. A negative pause is treated as zero.
func NewLight(start vmath.Vec2, pause time.Duration) *Light {
	if pause < 0 {
		pause = 0
	}
	return &Light{
		position:      start.Clamp(-LightBound, LightBound),
		phase:         LightMoving,
		pauseDuration: pause,
	}
}

// Tick advances the state machine by one render tick at time now.
func (l *Light) Tick(now time.Time) {
	switch l.phase {
	case LightMoving:
		l.position = vmath.Vec2{
			X: step(l.position.X),
			Y: step(l.position.Y),
		}
		if l.position.X >= LightBound && l.position.Y >= LightBound {
			l.phase = LightPaused
			l.pauseStartTime = now
		}
	case LightPaused:
		if now.Sub(l.pauseStartTime) >= l.pauseDuration {
			l.phase = LightMoving
			l.position = vmath.Vec2{X: -LightBound, Y: -LightBound}
		}
	}
}

func step(v float32) float32 {
	v = vmath.Clamp(v+LightSpeed, -LightBound, LightBound)
	if v > LightBound-lightSnap {
		v = LightBound
	}
	return v
}

// Position returns the current light position.
func (l *Light) Position() vmath.Vec2 {
	return l.position
}

// Phase returns the current state.
func (l *Light) Phase() LightPhase {
	return l.phase
}
