package input

import (
	"testing"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/shaderhub/internal/carousel/physics"
)

func TestMouseDrag(t *testing.T) {
	in := New()

	steps := []struct {
		ev   sdl.Event
		kind physics.SampleKind
		x    float32
	}{
		{&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Timestamp: 10, Button: sdl.BUTTON_LEFT, X: 200}, physics.SampleDown, 200},
		{&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, Timestamp: 26, X: 180}, physics.SampleMove, 180},
		{&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Timestamp: 42, Button: sdl.BUTTON_LEFT, X: 150}, physics.SampleUp, 150},
	}

	for i, s := range steps {
		e, ok := in.Translate(s.ev)
		if !ok || e.Type != EventTouch {
			t.Fatalf("step %d: got %+v, %v", i, e, ok)
		}
		if e.Sample.Kind != s.kind || e.Sample.X != s.x {
			t.Errorf("step %d: sample = %+v, want %v at %v", i, e.Sample, s.kind, s.x)
		}
	}

	if in.dragging {
		t.Error("still dragging after button up")
	}
}

func TestTimestamps(t *testing.T) {
	in := New()
	e, _ := in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Timestamp: 1500, Button: sdl.BUTTON_LEFT})
	if e.Sample.Time != 1500*time.Millisecond {
		t.Errorf("Time = %v, want 1.5s", e.Sample.Time)
	}
}

func TestMotionWithoutButtonIgnored(t *testing.T) {
	in := New()
	if _, ok := in.Translate(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10}); ok {
		t.Error("hover motion produced an event")
	}
	if _, ok := in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT}); ok {
		t.Error("right button produced an event")
	}
}

func TestFingerScaledToWidth(t *testing.T) {
	in := New()
	in.SetWidth(400)

	e, ok := in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, FingerID: 7, X: 0.5})
	if !ok || e.Sample.Kind != physics.SampleDown || e.Sample.X != 200 {
		t.Fatalf("down = %+v, %v", e, ok)
	}

	// A second finger is ignored while the first is down.
	if _, ok := in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERMOTION, FingerID: 8, X: 0.1}); ok {
		t.Error("second finger moved the carousel")
	}

	e, ok = in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERUP, FingerID: 7, X: 0.25})
	if !ok || e.Sample.Kind != physics.SampleUp || e.Sample.X != 100 {
		t.Errorf("up = %+v, %v", e, ok)
	}
}

func TestArrowKeysImpulse(t *testing.T) {
	in := New()

	tests := []struct {
		code sdl.Scancode
		want float32
	}{
		{sdl.SCANCODE_RIGHT, KeyImpulse},
		{sdl.SCANCODE_LEFT, -KeyImpulse},
	}
	for _, tt := range tests {
		e, ok := in.Translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: tt.code}})
		if !ok || e.Sample.Kind != physics.SampleImpulse || e.Sample.X != tt.want {
			t.Errorf("scancode %d: got %+v", tt.code, e)
		}
	}

	e, ok := in.Translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}})
	if !ok || e.Type != EventKeyDown || e.Key != sdl.SCANCODE_ESCAPE {
		t.Errorf("escape = %+v", e)
	}

	if _, ok := in.Translate(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}}); ok {
		t.Error("key up produced an event")
	}
}

func TestWheel(t *testing.T) {
	in := New()
	e, ok := in.Translate(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -1})
	if !ok || e.Sample.X != WheelImpulse {
		t.Errorf("wheel down = %+v, %v", e, ok)
	}
	if _, ok := in.Translate(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL}); ok {
		t.Error("zero wheel produced an event")
	}
}

func TestResizeAndQuit(t *testing.T) {
	in := New()

	e, ok := in.Translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 640, Data2: 480})
	if !ok || e.Type != EventWindowResize || e.Width != 640 || e.Height != 480 {
		t.Errorf("resize = %+v", e)
	}
	if in.width != 640 {
		t.Errorf("width = %d, want 640", in.width)
	}

	if e, _ := in.Translate(&sdl.QuitEvent{}); e.Type != EventQuit {
		t.Errorf("quit = %+v", e)
	}
}

func TestFocusLostCancelsDrag(t *testing.T) {
	in := New()
	if _, ok := in.Translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST}); ok {
		t.Error("focus lost without drag produced an event")
	}

	in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Timestamp: 10, Button: sdl.BUTTON_LEFT, X: 200})
	in.Translate(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, Timestamp: 26, X: 170})

	e, ok := in.Translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST, Timestamp: 40})
	if !ok || e.Type != EventTouch {
		t.Fatalf("focus lost = %+v, %v", e, ok)
	}
	if e.Sample.Kind != physics.SampleCancel || e.Sample.X != 170 || e.Sample.Time != 40*time.Millisecond {
		t.Errorf("sample = %+v, want cancel at 170 after 40ms", e.Sample)
	}
	if in.dragging {
		t.Error("still dragging after focus lost")
	}

	// The late button up is not a second release.
	if _, ok := in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 150}); ok {
		t.Error("button up after cancel produced an event")
	}
}

func TestLeaveCancelsFingerOnly(t *testing.T) {
	in := New()
	in.SetWidth(400)

	in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5})
	if _, ok := in.Translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_LEAVE}); ok {
		t.Error("leave cancelled a captured mouse drag")
	}
	in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 5})

	in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, FingerID: 3, X: 0.5})
	e, ok := in.Translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_LEAVE})
	if !ok || e.Sample.Kind != physics.SampleCancel || e.Sample.X != 200 {
		t.Errorf("leave = %+v, %v", e, ok)
	}
}

func TestCancel(t *testing.T) {
	in := New()
	if _, ok := in.Cancel(0, 0); ok {
		t.Error("cancel without drag produced an event")
	}

	in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5})
	e, ok := in.Cancel(5, time.Second)
	if !ok || e.Sample.Kind != physics.SampleCancel {
		t.Errorf("cancel = %+v, %v", e, ok)
	}
	if in.dragging {
		t.Error("still dragging after cancel")
	}
}
