package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/config"
	"github.com/Faultbox/shaderhub/internal/logger"
)

// IdleWait bounds how long an on-demand host blocks waiting for input.
const IdleWait = 250 * time.Millisecond

// FrameTimer tracks frame deltas and logs the frame rate once per second.
type FrameTimer struct {
	last     time.Time
	fpsStart time.Time
	frames   int
	limit    time.Duration
}

// NewFrameTimer starts timing at now. fpsLimit <= 0 means unlimited.
func NewFrameTimer(now time.Time, fpsLimit int) *FrameTimer {
	t := &FrameTimer{last: now, fpsStart: now}
	if fpsLimit > 0 {
		t.limit = time.Second / time.Duration(fpsLimit)
	}
	return t
}

// Tick records a frame at now and returns the time since the previous one.
func (t *FrameTimer) Tick(now time.Time) time.Duration {
	dt := now.Sub(t.last)
	if dt < 0 {
		dt = 0
	}
	t.last = now

	t.frames++
	if elapsed := now.Sub(t.fpsStart); elapsed >= time.Second {
		logger.Debug("fps",
			zap.Int("count", t.frames),
			zap.Duration("elapsed", elapsed),
			zap.Duration("dt", dt),
		)
		t.frames = 0
		t.fpsStart = now
	}
	return dt
}

// Skip restarts delta tracking at now without counting a frame. On-demand
// hosts call it after idling so the next dt does not include the wait.
func (t *FrameTimer) Skip(now time.Time) {
	t.last = now
}

// Remaining returns how long to sleep after a frame that started at start
// and ended at now to respect the frame limit.
func (t *FrameTimer) Remaining(start, now time.Time) time.Duration {
	if t.limit == 0 {
		return 0
	}
	if left := t.limit - now.Sub(start); left > 0 {
		return left
	}
	return 0
}

// OnDemand reports whether cfg selects on-demand rendering.
func OnDemand(cfg *config.Config) bool {
	return cfg.Display.RenderMode == config.RenderOnDemand
}
