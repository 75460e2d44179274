package assets

import (
	"errors"
	"image"
	"image/gif"
	"io"
	"time"

	xdraw "golang.org/x/image/draw"
)

// DefaultFrameInterval is the spacing between sampled overlay frames.
const DefaultFrameInterval = 100 * time.Millisecond

// gifDelayUnit is the unit of gif.GIF.Delay.
const gifDelayUnit = 10 * time.Millisecond

// DecodeFrames decodes an animated GIF, composites each frame onto the full
// canvas honoring its disposal method, and samples the animation every
// interval over its total duration. A GIF with no delays returns every
// composited frame as is.
func DecodeFrames(r io.Reader, interval time.Duration) ([]image.Image, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, errors.New("gif: no frames")
	}
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	composed := compose(g)

	// ends[i] is when frame i stops being shown.
	ends := make([]time.Duration, len(composed))
	var total time.Duration
	for i := range composed {
		if i < len(g.Delay) && g.Delay[i] > 0 {
			total += time.Duration(g.Delay[i]) * gifDelayUnit
		}
		ends[i] = total
	}
	if total == 0 {
		return composed, nil
	}

	n := int(total / interval)
	if n < 1 {
		n = 1
	}
	out := make([]image.Image, n)
	frame := 0
	for k := range out {
		t := time.Duration(k) * interval
		for frame < len(ends)-1 && t >= ends[frame] {
			frame++
		}
		out[k] = composed[frame]
	}
	return out, nil
}

// compose renders every frame onto its own full-size canvas.
func compose(g *gif.GIF) []image.Image {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, p := range g.Image {
			bounds = bounds.Union(p.Bounds())
		}
	}

	canvas := image.NewNRGBA(bounds)
	out := make([]image.Image, len(g.Image))

	for i, p := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = clone(canvas)
		}

		xdraw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, xdraw.Over)
		out[i] = clone(canvas)

		switch disposal {
		case gif.DisposalBackground:
			xdraw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return out
}

func clone(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
