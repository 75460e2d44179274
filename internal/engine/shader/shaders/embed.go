// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// CardVertexShader places card quads in clip space and forwards texture coordinates.
//
//go:embed card.vert
var CardVertexShader string

// CardFragmentShader composites base, overlay, tint and light for one card.
//
//go:embed card.frag
var CardFragmentShader string
