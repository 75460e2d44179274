package composite

import (
	"image"

	"github.com/Faultbox/shaderhub/internal/carousel/layout"
)

// TextureID indexes a backend's texture table.
type TextureID int

// NoTexture marks an empty slot.
const NoTexture TextureID = -1

// Bindings are the three textures bound for one card draw.
type Bindings struct {
	Base    TextureID
	Overlay TextureID
	Tint    TextureID
}

// Backend is a compositing strategy. All methods are called from the render
// goroutine only.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Upload copies img into the backend's texture table. Images are given
	// top row first; backends handle any orientation flip themselves.
	Upload(img image.Image) (TextureID, error)

	// Resize prepares the backend for a new layout.
	Resize(l *layout.Layout) error

	// Begin clears the target for a new frame.
	Begin()

	// DrawCard draws quad i of the current layout.
	DrawCard(i int, b Bindings, u *Uniforms)

	// End finishes the frame.
	End() error

	// Destroy releases every texture and buffer.
	Destroy()
}

// ClearColor is the background behind the cards.
var ClearColor = Color{0.1, 0.1, 0.1, 1}
