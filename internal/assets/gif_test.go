package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gifPalette = color.Palette{
	color.NRGBA{},
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 255, A: 255},
	color.NRGBA{B: 255, A: 255},
}

func paletted(r image.Rectangle, index uint8) *image.Paletted {
	p := image.NewPaletted(r, gifPalette)
	for i := range p.Pix {
		p.Pix[i] = index
	}
	return p
}

func encodeGIF(t *testing.T, g *gif.GIF) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

func at(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestDecodeFramesSamplesTimeline(t *testing.T) {
	full := image.Rect(0, 0, 2, 2)
	g := &gif.GIF{
		Image: []*image.Paletted{paletted(full, 1), paletted(full, 2), paletted(full, 3)},
		// 100ms, 200ms, 50ms: 350ms total.
		Delay:  []int{10, 20, 5},
		Config: image.Config{Width: 2, Height: 2, ColorModel: gifPalette},
	}

	frames, err := DecodeFrames(bytes.NewReader(encodeGIF(t, g)), 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	assert.Equal(t, uint8(255), at(frames[0], 0, 0).R)
	assert.Equal(t, uint8(255), at(frames[1], 0, 0).G)
	assert.Equal(t, uint8(255), at(frames[2], 0, 0).G, "frame 1 still showing at 200ms")
}

func TestDecodeFramesNoDelays(t *testing.T) {
	full := image.Rect(0, 0, 1, 1)
	g := &gif.GIF{
		Image:  []*image.Paletted{paletted(full, 1), paletted(full, 3)},
		Delay:  []int{0, 0},
		Config: image.Config{Width: 1, Height: 1, ColorModel: gifPalette},
	}

	frames, err := DecodeFrames(bytes.NewReader(encodeGIF(t, g)), 0)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, uint8(255), at(frames[1], 0, 0).B)
}

func TestDecodeFramesShortAnimation(t *testing.T) {
	full := image.Rect(0, 0, 1, 1)
	g := &gif.GIF{
		Image:  []*image.Paletted{paletted(full, 2)},
		Delay:  []int{3},
		Config: image.Config{Width: 1, Height: 1, ColorModel: gifPalette},
	}

	frames, err := DecodeFrames(bytes.NewReader(encodeGIF(t, g)), 100*time.Millisecond)
	require.NoError(t, err)
	assert.Len(t, frames, 1)
}

func TestDecodeFramesDisposal(t *testing.T) {
	full := image.Rect(0, 0, 2, 1)
	left := image.Rect(0, 0, 1, 1)
	right := image.Rect(1, 0, 2, 1)

	g := &gif.GIF{
		Image: []*image.Paletted{
			paletted(full, 1),  // red everywhere
			paletted(left, 2),  // green left, then restored
			paletted(right, 3), // blue right, then cleared
			paletted(left, 0),  // transparent, shows what is underneath
		},
		Delay:    []int{10, 10, 10, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalPrevious, gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 2, Height: 1, ColorModel: gifPalette},
	}

	frames, err := DecodeFrames(bytes.NewReader(encodeGIF(t, g)), 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, frames, 4)

	assert.Equal(t, uint8(255), at(frames[1], 0, 0).G)
	assert.Equal(t, uint8(255), at(frames[1], 1, 0).R)

	// Frame 1 was disposed to previous, so its green is gone.
	assert.Equal(t, uint8(255), at(frames[2], 0, 0).R)
	assert.Equal(t, uint8(255), at(frames[2], 1, 0).B)

	// Frame 2 was disposed to background, so the right pixel is clear.
	assert.Equal(t, uint8(255), at(frames[3], 0, 0).R)
	assert.Zero(t, at(frames[3], 1, 0).A)
}

func TestDecodeFramesInvalid(t *testing.T) {
	_, err := DecodeFrames(bytes.NewReader([]byte("GIF89a garbage")), 0)
	assert.Error(t, err)
}
