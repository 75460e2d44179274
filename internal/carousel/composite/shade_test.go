package composite

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

const eps = 1e-5

func assertColor(t *testing.T, want, got Color) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "channel %d: want %v got %v", i, want, got)
	}
}

func TestShadeBrightnessOnly(t *testing.T) {
	u := &Uniforms{Brightness: 2}
	got := Shade(Color{0.25, 0.5, 0.1, 0.8}, Transparent, Transparent, vmath.Vec2{}, u)
	assertColor(t, Color{0.5, 1, 0.2, 0.8}, got)
}

func TestShadeOverlayMix(t *testing.T) {
	u := &Uniforms{Brightness: 1, StarAlpha: 0.5, UseOverlay: true}

	got := Shade(Color{0, 0, 0, 1}, Color{1, 1, 1, 1}, Transparent, vmath.Vec2{}, u)
	assertColor(t, Color{0.5, 0.5, 0.5, 1}, got)

	// A transparent overlay texel leaves the card untouched.
	got = Shade(Color{0.2, 0.3, 0.4, 1}, Color{1, 1, 1, 0}, Transparent, vmath.Vec2{}, u)
	assertColor(t, Color{0.2, 0.3, 0.4, 1}, got)
}

func TestShadeOverlayDisabled(t *testing.T) {
	u := &Uniforms{Brightness: 1, StarAlpha: 0.5}
	got := Shade(Color{0, 0, 0, 1}, Color{1, 1, 1, 1}, Transparent, vmath.Vec2{}, u)
	assertColor(t, Color{0, 0, 0, 1}, got)
}

func TestColorDodge(t *testing.T) {
	tests := []struct {
		name  string
		base  float32
		blend float32
		want  float32
	}{
		{"identity", 0.4, 0, 0.4},
		{"half", 0.25, 0.5, 0.5},
		{"above one is kept", 0.6, 0.5, 1.2},
		{"full tint", 0.25, 1, 63.75},
		{"full tint on black", 0, 1, 0},
		{"tint above one", 0.1, 3, 25.5},
		{"nan base", float32(math.NaN()), 0.5, 0},
		{"nan blend", 0.25, float32(math.NaN()), 63.75},
		{"inf base", float32(math.Inf(1)), 0, math.MaxFloat32},
		{"negative inf base", float32(math.Inf(-1)), 0, -math.MaxFloat32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorDodge(Color{tt.base}, Color{tt.blend})
			if tt.want == 0 {
				assert.InDelta(t, tt.want, got[0], eps)
				return
			}
			assert.InEpsilon(t, tt.want, got[0], 1e-5)
		})
	}
}

func TestLightFalloff(t *testing.T) {
	tests := []struct {
		name  string
		light vmath.Vec2
		uv    vmath.Vec2
		want  float32
	}{
		{"at light", vmath.Vec2{X: 0.5, Y: 0.5}, vmath.Vec2{X: 0.5, Y: 0.5}, 0.25},
		{"ceiling holds to half radius", vmath.Vec2{}, vmath.Vec2{X: 0.75}, 0.25},
		{"beyond ceiling", vmath.Vec2{}, vmath.Vec2{X: 1.2}, 0.04},
		{"at radius", vmath.Vec2{}, vmath.Vec2{X: 1.5}, 0},
		{"far away", vmath.Vec2{X: -1.4, Y: -1.4}, vmath.Vec2{X: 1, Y: 1}, 0},
		{"nan light", vmath.Vec2{X: float32(math.NaN())}, vmath.Vec2{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LightFalloff(tt.light, tt.uv), eps)
		})
	}
}

func TestShadeFullPipeline(t *testing.T) {
	u := &Uniforms{
		Brightness:    2,
		StarAlpha:     0.5,
		LightPosition: vmath.Vec2{X: 0.5, Y: 0.5},
		UseOverlay:    true,
		UseTint:       true,
		UseLight:      true,
	}
	uv := vmath.Vec2{X: 0.5, Y: 0.5}

	got := Shade(Color{0.25, 0.25, 0.25, 1}, Transparent, Transparent, uv, u)
	assertColor(t, Color{0.125, 0.125, 0.125, 0.25}, got)

	// Tint 0.5 doubles the mixed color before the light.
	got = Shade(Color{0.1, 0.1, 0.1, 1}, Transparent, Color{0.5, 0.5, 0.5, 0}, uv, u)
	assertColor(t, Color{0.1, 0.1, 0.1, 0.25}, got)

	// Brightened and dodged values above 1 are scaled by the light, not capped first.
	got = Shade(Color{0.6, 0.6, 0.6, 1}, Transparent, Color{0.5, 0.5, 0.5, 0}, uv, u)
	assertColor(t, Color{0.6, 0.6, 0.6, 0.25}, got)

	noTint := *u
	noTint.UseTint = false
	got = Shade(Color{0.6, 0.6, 0.6, 1}, Transparent, Transparent, uv, &noTint)
	assertColor(t, Color{0.3, 0.3, 0.3, 0.25}, got)
}

func TestShadeClampsFinalColor(t *testing.T) {
	u := &Uniforms{Brightness: 2, UseTint: true}
	got := Shade(Color{0.6, 0.3, 0, 1}, Transparent, Color{0.5, 0.5, 1, 0}, vmath.Vec2{}, u)
	assertColor(t, Color{1, 1, 0, 1}, got)
}

func TestShadeAlwaysValid(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	values := []float32{0, 0.5, 1, 2, -1, nan, inf, -inf}

	u := &Uniforms{Brightness: 2, StarAlpha: 0.5, UseOverlay: true, UseTint: true, UseLight: true}
	for _, a := range values {
		for _, b := range values {
			base := Color{a, b, a, 1}
			overlay := Color{b, a, b, a}
			tint := Color{a, a, b, b}
			got := Shade(base, overlay, tint, vmath.Vec2{X: 0.3, Y: 0.7}, u)
			for i, c := range got {
				assert.False(t, c != c, "NaN in channel %d for %v/%v", i, a, b)
				assert.GreaterOrEqual(t, c, float32(0))
				assert.LessOrEqual(t, c, float32(1))
			}
		}
	}
}

func TestColorConversions(t *testing.T) {
	c := ColorFrom(color.NRGBA{R: 255, G: 128, B: 0, A: 255})
	assertColor(t, Color{1, 128.0 / 255, 0, 1}, c)

	n := Color{1.5, 0.5, -0.2, 1}.NRGBA()
	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, n)

	// Premultiplied input converts to straight alpha.
	c = ColorFrom(color.RGBA{R: 64, G: 0, B: 0, A: 128})
	assert.InDelta(t, 0.5, c[0], 0.01)
	assert.InDelta(t, 128.0/255, c[3], eps)
}

func TestMVP(t *testing.T) {
	tests := []struct {
		tx   float32
		in   vmath.Vec2
		want vmath.Vec2
	}{
		{0, vmath.Vec2{}, vmath.Vec2{X: -1, Y: -1}},
		{0, vmath.Vec2{X: 1000, Y: 2000}, vmath.Vec2{X: 1, Y: 1}},
		{100, vmath.Vec2{X: 100}, vmath.Vec2{X: -1, Y: -1}},
		{100, vmath.Vec2{X: 1100, Y: 1000}, vmath.Vec2{X: 1, Y: 0}},
	}
	for _, tt := range tests {
		got := MVP(1000, 2000, tt.tx).TransformVec2(tt.in)
		assert.InDelta(t, tt.want.X, got.X, eps)
		assert.InDelta(t, tt.want.Y, got.Y, eps)
	}

	// Degenerate surfaces never produce NaN.
	m := MVP(0, 0, 50)
	for _, v := range m {
		assert.False(t, v != v)
	}
}
