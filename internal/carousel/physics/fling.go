package physics

import (
	"math"
	"time"

	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

// Spline fling parameters. The curve decelerates quickly at first and then
// eases into the final position, the way platform scrollers feel.
const (
	scrollFriction = 0.015
	gravityEarth   = 9.80665 // m/s^2
	inchesPerMeter = 39.37
	basePPI        = 160.0
	flingTuning    = 0.84
	inflexion      = 0.35
	startTension   = 0.5
	endTension     = 1.0
	splineSamples  = 100
)

var (
	decelerationExp = math.Log(0.78) / math.Log(0.9)
	splinePosition  = buildSpline()
)

func buildSpline() [splineSamples + 1]float64 {
	const (
		p1 = startTension * inflexion
		p2 = 1.0 - endTension*(1.0-inflexion)
	)

	var table [splineSamples + 1]float64
	xMin := 0.0
	for i := 0; i < splineSamples; i++ {
		alpha := float64(i) / splineSamples
		xMax := 1.0
		var x, coef float64
		for {
			x = xMin + (xMax-xMin)/2.0
			coef = 3.0 * x * (1.0 - x)
			tx := coef*((1.0-x)*p1+x*p2) + x*x*x
			if math.Abs(tx-alpha) < 1e-5 {
				break
			}
			if tx > alpha {
				xMax = x
			} else {
				xMin = x
			}
		}
		table[i] = coef*((1.0-x)*startTension+x) + x*x*x
	}
	table[splineSamples] = 1.0
	return table
}

// Fling is a bounded one-dimensional spline deceleration.
type Fling struct {
	physicalCoeff float64

	active   bool
	start    float32
	final    float32
	min, max float32
	startAt  time.Duration
	duration time.Duration
	distance float64

	curr    float32
	currVel float32
}

// NewFling creates a fling calibrated for the given display density.
func NewFling(density float32) Fling {
	if density <= 0 {
		density = 1
	}
	ppi := float64(density) * basePPI
	return Fling{
		physicalCoeff: gravityEarth * inchesPerMeter * ppi * flingTuning,
	}
}

// Start begins a fling from start with velocity (px/s), bounded to [min, max],
// at engine time now.
func (f *Fling) Start(start, velocity, min, max float32, now time.Duration) {
	if max < min {
		max = min
	}

	f.start = start
	f.curr = start
	f.min = min
	f.max = max
	f.startAt = now
	f.currVel = velocity
	f.active = true

	speed := math.Abs(float64(velocity))
	if speed == 0 {
		f.final = vmath.Clamp(start, min, max)
		f.duration = 0
		f.distance = 0
		return
	}

	l := math.Log(inflexion * speed / (scrollFriction * f.physicalCoeff))
	f.duration = time.Duration(1000.0*math.Exp(l/(decelerationExp-1.0))) * time.Millisecond
	f.distance = scrollFriction * f.physicalCoeff * math.Exp(decelerationExp/(decelerationExp-1.0)*l)

	dir := 1.0
	if velocity < 0 {
		dir = -1.0
	}
	f.final = vmath.Clamp(start+float32(math.Round(f.distance*dir)), min, max)
}

// Active reports whether the fling is in progress.
func (f *Fling) Active() bool {
	return f.active
}

// Stop aborts the fling where it is.
func (f *Fling) Stop() {
	f.active = false
	f.currVel = 0
}

// Velocity returns the instantaneous fling velocity in px/s.
func (f *Fling) Velocity() float32 {
	return f.currVel
}

// Advance moves the fling to engine time now and returns the current
// position and whether the fling has finished.
func (f *Fling) Advance(now time.Duration) (float32, bool) {
	if !f.active {
		return f.curr, true
	}

	elapsed := now - f.startAt
	if elapsed < 0 {
		elapsed = 0
	}

	if f.duration <= 0 || elapsed >= f.duration {
		f.curr = f.final
		f.currVel = 0
		f.active = false
		return f.curr, true
	}

	t := float64(elapsed) / float64(f.duration)
	index := int(splineSamples * t)
	distanceCoef := 1.0
	velocityCoef := 0.0
	if index < splineSamples {
		tInf := float64(index) / splineSamples
		tSup := float64(index+1) / splineSamples
		dInf := splinePosition[index]
		dSup := splinePosition[index+1]
		velocityCoef = (dSup - dInf) / (tSup - tInf)
		distanceCoef = dInf + (t-tInf)*velocityCoef
	}

	span := float64(f.final - f.start)
	f.curr = vmath.Clamp(f.start+float32(math.Round(distanceCoef*span)), f.min, f.max)
	f.currVel = float32(velocityCoef * span / f.duration.Seconds())

	if f.curr == f.final {
		f.active = false
		return f.curr, true
	}
	return f.curr, false
}
