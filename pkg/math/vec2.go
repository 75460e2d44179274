// Package math provides the small amount of linear algebra the carousel needs.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Clamp clamps each component independently to [lo, hi].
func (v Vec2) Clamp(lo, hi float32) Vec2 {
	return Vec2{Clamp(v.X, lo, hi), Clamp(v.Y, lo, hi)}
}

// Clamp limits x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float32) float32 {
	if x != x || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
