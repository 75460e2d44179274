// Package layout computes card quads for the carousel.
//
// Cards are laid out left to right in pixel space (origin bottom-left, y up).
// Each card is 4/5 of the screen wide with a 9:16 aspect ratio, separated by
// 1/10 of the screen width, and vertically centered. The first card starts
// one spacing unit from the left edge and the strip ends one spacing unit past
// the last card.
package layout

// Layout proportions relative to the screen width.
const (
	CardWidthRatio = 4.0 / 5.0
	SpacingRatio   = 1.0 / 10.0
	CardAspect     = 16.0 / 9.0 // height / width
)

// VerticesPerCard is the number of triangle-strip vertices per quad.
const VerticesPerCard = 4

// FloatsPerCard is the number of position floats (x, y) per quad.
const FloatsPerCard = VerticesPerCard * 2

// TexCoords is the texture-coordinate quad shared by every card, in the same
// strip order as the quad vertices: (left,top) (left,bottom) (right,top) (right,bottom).
var TexCoords = [FloatsPerCard]float32{
	0, 0,
	0, 1,
	1, 0,
	1, 1,
}

// Quad is one card rectangle in screen space.
type Quad struct {
	Left, Top, Right, Bottom float32
}

// Width returns the quad width.
func (q Quad) Width() float32 { return q.Right - q.Left }

// Height returns the quad height.
func (q Quad) Height() float32 { return q.Bottom - q.Top }

// Vertices returns the quad as a triangle strip matching TexCoords.
func (q Quad) Vertices() [FloatsPerCard]float32 {
	return [FloatsPerCard]float32{
		q.Left, q.Top,
		q.Left, q.Bottom,
		q.Right, q.Top,
		q.Right, q.Bottom,
	}
}

// Params are the inputs that trigger a full layout rebuild.
type Params struct {
	Width     int
	Height    int
	CardCount int
	Density   float32
}

// Layout is the immutable result of a resize.
type Layout struct {
	Params

	CardWidth  float32
	CardHeight float32
	Spacing    float32

	// MaxTranslation is the largest valid scroll offset.
	MaxTranslation float32

	Quads []Quad
}

// Empty reports whether there is nothing to draw.
func (l *Layout) Empty() bool {
	return len(l.Quads) == 0
}

// Vertices returns every quad packed back to back (FloatsPerCard per card),
// ready for a single buffer upload.
func (l *Layout) Vertices() []float32 {
	out := make([]float32, 0, len(l.Quads)*FloatsPerCard)
	for _, q := range l.Quads {
		v := q.Vertices()
		out = append(out, v[:]...)
	}
	return out
}

// Build computes the layout. Degenerate inputs (non-positive width, height or
// card count) produce an empty layout with MaxTranslation 0.
func Build(p Params) *Layout {
	l := &Layout{Params: p}
	if p.Width <= 0 || p.Height <= 0 || p.CardCount <= 0 {
		return l
	}

	w := float32(p.Width)
	h := float32(p.Height)

	l.CardWidth = w * CardWidthRatio
	l.CardHeight = l.CardWidth * CardAspect
	l.Spacing = w * SpacingRatio
	l.MaxTranslation = MaxTranslation(p.Width, p.CardCount)

	top := (h - l.CardHeight) / 2
	bottom := top + l.CardHeight

	l.Quads = make([]Quad, p.CardCount)
	for i := range l.Quads {
		left := l.Spacing + float32(i)*(l.CardWidth+l.Spacing)
		l.Quads[i] = Quad{
			Left:   left,
			Top:    top,
			Right:  left + l.CardWidth,
			Bottom: bottom,
		}
	}

	return l
}

// TotalWidth returns the strip width: N cards, N-1 gaps and a margin on each side.
func TotalWidth(screenWidth, cardCount int) float32 {
	if screenWidth <= 0 || cardCount <= 0 {
		return 0
	}
	w := float32(screenWidth)
	n := float32(cardCount)
	return n*w*CardWidthRatio + (n+1)*w*SpacingRatio
}

// MaxTranslation returns max(0, TotalWidth - screenWidth).
func MaxTranslation(screenWidth, cardCount int) float32 {
	if screenWidth <= 0 {
		return 0
	}
	excess := TotalWidth(screenWidth, cardCount) - float32(screenWidth)
	if excess < 0 {
		return 0
	}
	return excess
}
