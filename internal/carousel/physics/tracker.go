package physics

import "time"

const (
	// trackerHistory bounds the number of retained samples.
	trackerHistory = 20

	// velocityHorizon is how far back from the newest sample the fit looks.
	velocityHorizon = 100 * time.Millisecond
)

type trackerSample struct {
	x float32
	t time.Duration
}

// VelocityTracker estimates pointer velocity from timestamped positions using
// a least-squares line fit over the most recent samples.
type VelocityTracker struct {
	samples [trackerHistory]trackerSample
	head    int // index of the next write
	count   int
}

// Reset discards all samples.
func (vt *VelocityTracker) Reset() {
	vt.head = 0
	vt.count = 0
}

// Add records a position at time t. Samples older than the newest one are ignored.
func (vt *VelocityTracker) Add(x float32, t time.Duration) {
	if vt.count > 0 {
		newest := vt.samples[(vt.head-1+trackerHistory)%trackerHistory]
		if t < newest.t {
			return
		}
	}
	vt.samples[vt.head] = trackerSample{x: x, t: t}
	vt.head = (vt.head + 1) % trackerHistory
	if vt.count < trackerHistory {
		vt.count++
	}
}

// Len returns the number of retained samples.
func (vt *VelocityTracker) Len() int {
	return vt.count
}

// Velocity returns the estimated velocity in pixels per second, clamped to
// [-limit, limit] when limit > 0. Fewer than two usable samples yield 0.
func (vt *VelocityTracker) Velocity(limit float32) float32 {
	if vt.count < 2 {
		return 0
	}

	newest := vt.samples[(vt.head-1+trackerHistory)%trackerHistory]

	// Fit x = a + b*t with t in seconds relative to the newest sample.
	var n, sumT, sumX, sumTT, sumTX float64
	for i := 0; i < vt.count; i++ {
		s := vt.samples[(vt.head-1-i+2*trackerHistory)%trackerHistory]
		age := newest.t - s.t
		if age > velocityHorizon {
			break
		}
		t := -age.Seconds()
		x := float64(s.x)
		n++
		sumT += t
		sumX += x
		sumTT += t * t
		sumTX += t * x
	}
	if n < 2 {
		return 0
	}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	v := float32((n*sumTX - sumT*sumX) / denom)

	if limit > 0 {
		if v > limit {
			v = limit
		} else if v < -limit {
			v = -limit
		}
	}
	return v
}
