package composite

import (
	"errors"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/shaderhub/internal/carousel/layout"
	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

// ErrEmptyImage is returned when uploading a zero-sized image.
var ErrEmptyImage = errors.New("empty image")

// Software rasterizes cards into an RGBA image on the CPU using Shade.
// Sampling is nearest-neighbor.
type Software struct {
	textures []*image.NRGBA
	layout   *layout.Layout
	target   *image.RGBA
}

// NewSoftware creates an empty software backend.
func NewSoftware() *Software {
	return &Software{}
}

// Name implements Backend.
func (s *Software) Name() string { return "software" }

// Upload implements Backend.
func (s *Software) Upload(img image.Image) (TextureID, error) {
	b := img.Bounds()
	if b.Empty() {
		return NoTexture, ErrEmptyImage
	}
	tex := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(tex, tex.Bounds(), img, b.Min, xdraw.Src)

	s.textures = append(s.textures, tex)
	return TextureID(len(s.textures) - 1), nil
}

// Resize implements Backend.
func (s *Software) Resize(l *layout.Layout) error {
	s.layout = l
	if l == nil || l.Width <= 0 || l.Height <= 0 {
		s.target = nil
		return nil
	}
	if s.target == nil || s.target.Bounds().Dx() != l.Width || s.target.Bounds().Dy() != l.Height {
		s.target = image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	}
	return nil
}

// Begin implements Backend.
func (s *Software) Begin() {
	if s.target == nil {
		return
	}
	c := ClearColor.NRGBA()
	pix := s.target.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = 255
	}
}

// DrawCard implements Backend.
func (s *Software) DrawCard(i int, b Bindings, u *Uniforms) {
	if s.target == nil || s.layout == nil || i < 0 || i >= len(s.layout.Quads) {
		return
	}
	q := s.layout.Quads[i]
	w := float32(s.layout.Width)
	h := float32(s.layout.Height)

	// Quad corners in window space, y up.
	tl := toWindow(u.MVP.TransformVec2(vmath.Vec2{X: q.Left, Y: q.Top}), w, h)
	br := toWindow(u.MVP.TransformVec2(vmath.Vec2{X: q.Right, Y: q.Bottom}), w, h)
	if tl.X == br.X || tl.Y == br.Y {
		return
	}

	minX, maxX := ordered(tl.X, br.X)
	minY, maxY := ordered(tl.Y, br.Y)

	x0 := clampInt(int(math.Floor(float64(minX))), 0, s.layout.Width)
	x1 := clampInt(int(math.Ceil(float64(maxX))), 0, s.layout.Width)
	y0 := clampInt(int(math.Floor(float64(minY))), 0, s.layout.Height)
	y1 := clampInt(int(math.Ceil(float64(maxY))), 0, s.layout.Height)

	base := s.texture(b.Base)
	overlay := s.texture(b.Overlay)
	tint := s.texture(b.Tint)

	for wy := y0; wy < y1; wy++ {
		cy := float32(wy) + 0.5
		if cy < minY || cy >= maxY {
			continue
		}
		v := (cy - tl.Y) / (br.Y - tl.Y)
		row := s.layout.Height - 1 - wy

		for wx := x0; wx < x1; wx++ {
			cx := float32(wx) + 0.5
			if cx < minX || cx >= maxX {
				continue
			}
			uv := vmath.Vec2{X: (cx - tl.X) / (br.X - tl.X), Y: v}

			c := Shade(sample(base, uv), sample(overlay, uv), sample(tint, uv), uv, u).NRGBA()
			o := s.target.PixOffset(wx, row)
			s.target.Pix[o+0] = c.R
			s.target.Pix[o+1] = c.G
			s.target.Pix[o+2] = c.B
			s.target.Pix[o+3] = 255
		}
	}
}

// End implements Backend.
func (s *Software) End() error { return nil }

// Destroy implements Backend.
func (s *Software) Destroy() {
	s.textures = nil
	s.layout = nil
	s.target = nil
}

// Image returns the last composited frame. It is nil for a degenerate surface.
// The image is reused by the next frame.
func (s *Software) Image() *image.RGBA {
	return s.target
}

// TextureCount returns the number of uploaded textures.
func (s *Software) TextureCount() int {
	return len(s.textures)
}

func (s *Software) texture(id TextureID) *image.NRGBA {
	if id < 0 || int(id) >= len(s.textures) {
		return nil
	}
	return s.textures[id]
}

// sample reads the texel at uv. Texture row 0 is the image's top row while
// v = 0 is the bottom of the card, matching a vertically flipped GL upload.
func sample(tex *image.NRGBA, uv vmath.Vec2) Color {
	if tex == nil {
		return Transparent
	}
	b := tex.Bounds()
	x := clampInt(int(uv.X*float32(b.Dx())), 0, b.Dx()-1)
	y := clampInt(int((1-uv.Y)*float32(b.Dy())), 0, b.Dy()-1)
	return ColorFrom(tex.NRGBAAt(b.Min.X+x, b.Min.Y+y))
}

func toWindow(ndc vmath.Vec2, w, h float32) vmath.Vec2 {
	return vmath.Vec2{X: (ndc.X + 1) * 0.5 * w, Y: (ndc.Y + 1) * 0.5 * h}
}

func ordered(a, b float32) (float32, float32) {
	if a > b {
		return b, a
	}
	return a, b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
