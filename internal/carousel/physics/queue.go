package physics

import (
	"sync/atomic"
	"time"
)

// SampleKind identifies a touch event.
type SampleKind int

const (
	SampleDown SampleKind = iota
	SampleMove
	SampleUp
	SampleCancel

	// SampleImpulse carries a coast velocity (dp per tick) in X, from keys or the wheel.
	SampleImpulse
)

// String returns a human-readable name for logging.
func (k SampleKind) String() string {
	switch k {
	case SampleDown:
		return "down"
	case SampleMove:
		return "move"
	case SampleUp:
		return "up"
	case SampleCancel:
		return "cancel"
	case SampleImpulse:
		return "impulse"
	default:
		return "unknown"
	}
}

// Sample is one touch event handed from the input side to the render side.
type Sample struct {
	Kind SampleKind
	X    float32
	Time time.Duration
}

// DefaultQueueSize holds several seconds of high-rate touch input at 60 fps.
const DefaultQueueSize = 512

// Queue is a bounded, non-blocking handoff of touch samples from input
// goroutines to the render goroutine. Post may be called concurrently;
// Drain must only be called from the goroutine that ticks the Engine.
type Queue struct {
	ch      chan Sample
	dropped atomic.Uint64
}

// NewQueue creates a queue holding up to size samples.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Sample, size)}
}

// Post enqueues a sample without blocking. It returns false when the queue
// is full and the sample was dropped.
func (q *Queue) Post(s Sample) bool {
	select {
	case q.ch <- s:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Drain delivers every queued sample to fn in arrival order and returns how
// many were delivered. Samples posted while draining are left for the next call.
func (q *Queue) Drain(fn func(Sample)) int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		fn(<-q.ch)
	}
	return n
}

// Len returns the number of pending samples.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Dropped returns how many samples Post has rejected so far.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
