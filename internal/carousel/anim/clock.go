// Package anim holds the carousel's wall-clock driven animations: the
// overlay frame clock and the moving light. Both take the current time as an
// explicit argument so they can be driven by synthetic time in tests.
package anim

import "time"

// DefaultFrameDelay is the overlay frame interval.
const DefaultFrameDelay = 100 * time.Millisecond

// Clock cycles a read cursor through a fixed number of overlay frames.
type Clock struct {
	frameCount    int
	frameDelay    time.Duration
	currentFrame  int
	lastFrameTime time.Time
}

// NewClock creates a clock over frameCount frames, starting at frame 0 at time start.
// A non-positive delay falls back to DefaultFrameDelay.
func NewClock(frameCount int, delay time.Duration, start time.Time) *Clock {
	if frameCount < 0 {
		frameCount = 0
	}
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	return &Clock{
		frameCount:    frameCount,
		frameDelay:    delay,
		lastFrameTime: start,
	}
}

// Tick advances to the next frame once at least one frame delay has passed
// since the last advance. It returns true when the frame changed.
func (c *Clock) Tick(now time.Time) bool {
	if c.frameCount == 0 {
		return false
	}
	if now.Sub(c.lastFrameTime) < c.frameDelay {
		return false
	}
	c.currentFrame = (c.currentFrame + 1) % c.frameCount
	c.lastFrameTime = now
	return true
}

// Reset restarts the delay measurement from now without moving the cursor.
func (c *Clock) Reset(now time.Time) {
	c.lastFrameTime = now
}

// Frame returns the current frame index. It is always 0 when there are no frames.
func (c *Clock) Frame() int {
	return c.currentFrame
}

// FrameCount returns the number of frames cycled.
func (c *Clock) FrameCount() int {
	return c.frameCount
}
