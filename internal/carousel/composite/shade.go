package composite

import (
	"image/color"
	"math"

	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

// minDodgeDivisor keeps the color-dodge division finite when a tint channel is 1.
const minDodgeDivisor float32 = 1.0 / 255.0

// Color is a straight (non-premultiplied) RGBA color with channels in [0, 1].
type Color [4]float32

// Transparent is the zero color.
var Transparent = Color{}

// ColorFrom converts any color.Color to a straight-alpha Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	}
}

// NRGBA converts to an 8-bit color, clamping every channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c[0]),
		G: to8(c[1]),
		B: to8(c[2]),
		A: to8(c[3]),
	}
}

func to8(v float32) uint8 {
	return uint8(vmath.Clamp(v, 0, 1)*255 + 0.5)
}

// Mix linearly interpolates every channel from a to b by t.
func Mix(a, b Color, t float32) Color {
	var out Color
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// ColorDodge computes base / (1 - blend) per channel. The result is not
// clamped and may exceed 1; NaN maps to 0 and infinities to the largest
// finite value.
func ColorDodge(base, blend Color) Color {
	var out Color
	for i := range out {
		d := 1 - blend[i]
		if d < minDodgeDivisor || d != d {
			d = minDodgeDivisor
		}
		out[i] = finite(base[i] / d)
	}
	return out
}

// LightFalloff returns clamp(1 - |light - uv| / LightRadius, 0, LightCeiling)^2.
func LightFalloff(light, uv vmath.Vec2) float32 {
	f := vmath.Clamp(1-light.Distance(uv)/LightRadius, 0, LightCeiling)
	return f * f
}

// Shade is the fragment function shared by every backend. uv is the card's
// texture coordinate; base, overlay and tint are the sampled texels.
func Shade(base, overlay, tint Color, uv vmath.Vec2, u *Uniforms) Color {
	c := base
	c[0] *= u.Brightness
	c[1] *= u.Brightness
	c[2] *= u.Brightness

	if u.UseOverlay {
		c = Mix(c, overlay, overlay[3]*u.StarAlpha)
	}

	if u.UseTint {
		c = ColorDodge(c, tint)
	}

	f := float32(1)
	if u.UseLight {
		f = LightFalloff(u.LightPosition, uv)
	}
	for i := range c {
		c[i] = vmath.Clamp(finite(c[i])*f, 0, 1)
	}
	return c
}

// finite maps NaN to 0 and infinities to the largest finite float32.
func finite(v float32) float32 {
	switch {
	case v != v:
		return 0
	case v > math.MaxFloat32:
		return math.MaxFloat32
	case v < -math.MaxFloat32:
		return -math.MaxFloat32
	}
	return v
}
