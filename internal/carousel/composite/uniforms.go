// Package composite draws the carousel: one textured quad per card with a
// brightened base, an animated overlay mixed on top, a color-dodge tint and a
// moving radial light.
//
// The drawing strategy is a Backend selected at construction. The OpenGL
// backend lives in internal/engine/renderer; Software rasterizes into an
// image and backs the terminal host, snapshots and tests.
package composite

import (
	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

// Shader uniform and sampler names. They are part of the shader contract and
// never change between draws.
const (
	UniformMVP           = "uMVPMatrix"
	UniformBrightness    = "uBrightness"
	UniformLightPosition = "uLightPosition"
	UniformStarAlpha     = "uStarAlpha"

	UniformUseOverlay = "uUseOverlay"
	UniformUseTint    = "uUseTint"
	UniformUseLight   = "uUseLight"

	SamplerBase    = "uTexture"
	SamplerOverlay = "uStarTexture"
	SamplerTint    = "uOverlayTexture"
)

// Texture units the samplers are bound to.
const (
	UnitBase    = 0
	UnitOverlay = 1
	UnitTint    = 2
)

// Default shading constants.
const (
	DefaultBrightness float32 = 2.0
	DefaultStarAlpha  float32 = 0.5

	// LightRadius is the distance in texture space at which the light fades out.
	LightRadius float32 = 1.5
	// LightCeiling caps the falloff before squaring.
	LightCeiling float32 = 0.5
)

// Features toggles the optional layers. Disabling layers reproduces the
// simpler carousel variants with identical scrolling.
type Features struct {
	Overlay bool
	Tint    bool
	Light   bool
}

// AllFeatures enables every layer.
func AllFeatures() Features {
	return Features{Overlay: true, Tint: true, Light: true}
}

// Uniforms is the per-frame snapshot handed to the backend. It is rebuilt
// every frame and never stored.
type Uniforms struct {
	MVP           vmath.Mat4
	Brightness    float32
	LightPosition vmath.Vec2
	StarAlpha     float32

	// UseOverlay is false when the overlay feature is off or there are no frames.
	UseOverlay bool
	UseTint    bool
	UseLight   bool
}

// MVP returns projection * translate(-translationX, 0, 0) for a width x height surface.
func MVP(width, height int, translationX float32) vmath.Mat4 {
	proj := vmath.ScreenOrtho(float32(width), float32(height))
	return proj.Mul(vmath.Translate(-translationX, 0, 0))
}
