// Package input translates SDL2 events into carousel input.
package input

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/shaderhub/internal/carousel/physics"
)

// Coast velocities (dp per tick) for keyboard and wheel nudges.
const (
	KeyImpulse   float32 = 20
	WheelImpulse float32 = 8
)

// EventType classifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventTouch
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	Sample physics.Sample
}

// Input turns SDL events into touch samples. A single pointer drives the
// carousel: the left mouse button or the first finger down.
type Input struct {
	events []Event

	width    int
	dragging bool
	mouse    bool
	finger   sdl.FingerID
	lastX    float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// SetWidth sets the window width used to scale normalized finger positions.
func (i *Input) SetWidth(width int) {
	i.width = width
}

// Update collects pending events. With wait > 0 it first blocks up to wait
// for the next event. Returns true if the application should quit.
func (i *Input) Update(wait time.Duration) bool {
	i.events = i.events[:0]

	if wait > 0 {
		if ev := sdl.WaitEventTimeout(int(wait / time.Millisecond)); ev != nil {
			i.push(ev)
		}
	}
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		i.push(ev)
	}

	for _, e := range i.events {
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}

func (i *Input) push(ev sdl.Event) {
	if e, ok := i.Translate(ev); ok {
		i.events = append(i.events, e)
	}
}

// Translate converts one SDL event. It reports false for events the carousel
// ignores.
func (i *Input) Translate(ev sdl.Event) (Event, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED, sdl.WINDOWEVENT_RESIZED:
			i.width = int(e.Data1)
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			// The button or finger release may never arrive.
			return i.Cancel(i.lastX, stamp(e.Timestamp))
		case sdl.WINDOWEVENT_LEAVE:
			// The mouse is captured while its button is held; fingers are not.
			if !i.mouse {
				return i.Cancel(i.lastX, stamp(e.Timestamp))
			}
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return Event{}, false
		}
		switch e.Keysym.Scancode {
		case sdl.SCANCODE_LEFT:
			return impulse(-KeyImpulse, e.Timestamp), true
		case sdl.SCANCODE_RIGHT:
			return impulse(KeyImpulse, e.Timestamp), true
		}
		return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true

	case *sdl.MouseWheelEvent:
		v := (float32(e.X) - float32(e.Y)) * WheelImpulse
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			v = -v
		}
		if v != 0 {
			return impulse(v, e.Timestamp), true
		}

	case *sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT || e.Which == sdl.TOUCH_MOUSEID {
			return Event{}, false
		}
		if e.Type == sdl.MOUSEBUTTONDOWN && !i.dragging {
			i.dragging, i.mouse = true, true
			return i.touch(physics.SampleDown, float32(e.X), e.Timestamp), true
		}
		if e.Type == sdl.MOUSEBUTTONUP && i.dragging && i.mouse {
			i.dragging = false
			return i.touch(physics.SampleUp, float32(e.X), e.Timestamp), true
		}

	case *sdl.MouseMotionEvent:
		if i.dragging && i.mouse && e.Which != sdl.TOUCH_MOUSEID {
			return i.touch(physics.SampleMove, float32(e.X), e.Timestamp), true
		}

	case *sdl.TouchFingerEvent:
		x := e.X * float32(i.width)
		switch e.Type {
		case sdl.FINGERDOWN:
			if !i.dragging {
				i.dragging, i.mouse, i.finger = true, false, e.FingerID
				return i.touch(physics.SampleDown, x, e.Timestamp), true
			}
		case sdl.FINGERMOTION:
			if i.dragging && !i.mouse && e.FingerID == i.finger {
				return i.touch(physics.SampleMove, x, e.Timestamp), true
			}
		case sdl.FINGERUP:
			if i.dragging && !i.mouse && e.FingerID == i.finger {
				i.dragging = false
				return i.touch(physics.SampleUp, x, e.Timestamp), true
			}
		}
	}
	return Event{}, false
}

// Cancel ends any drag in progress, for example when the window loses focus.
func (i *Input) Cancel(x float32, now time.Duration) (Event, bool) {
	if !i.dragging {
		return Event{}, false
	}
	i.dragging = false
	return Event{Type: EventTouch, Sample: physics.Sample{Kind: physics.SampleCancel, X: x, Time: now}}, true
}

func (i *Input) touch(kind physics.SampleKind, x float32, ts uint32) Event {
	i.lastX = x
	return Event{Type: EventTouch, Sample: physics.Sample{Kind: kind, X: x, Time: stamp(ts)}}
}

func impulse(v float32, ts uint32) Event {
	return Event{Type: EventTouch, Sample: physics.Sample{Kind: physics.SampleImpulse, X: v, Time: stamp(ts)}}
}

// stamp converts an SDL millisecond timestamp.
func stamp(ts uint32) time.Duration {
	return time.Duration(ts) * time.Millisecond
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
