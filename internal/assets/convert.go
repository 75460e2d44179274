package assets

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ToNRGBA returns img as a zero-origin straight-alpha image, converting only
// when needed.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// FlipVertical returns a copy of img with its rows reversed, so that row 0
// is the bottom of the picture as GL texture uploads expect.
func FlipVertical(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	rowBytes := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		dstOff := dst.PixOffset(0, b.Dy()-1-y)
		copy(dst.Pix[dstOff:dstOff+rowBytes], img.Pix[src:src+rowBytes])
	}
	return dst
}

// FitSize returns the largest size with the aspect ratio of srcW x srcH that
// fits inside w x h. Either side is at least 1 when the inputs are positive.
func FitSize(srcW, srcH, w, h int) (int, int) {
	if w <= 0 || h <= 0 || srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	sw, sh := w, srcH*w/srcW
	if sh > h {
		sw, sh = srcW*h/srcH, h
	}
	return max(sw, 1), max(sh, 1)
}

// Fit scales img to fit inside w x h preserving aspect ratio.
func Fit(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	sw, sh := FitSize(b.Dx(), b.Dy(), w, h)
	dst := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	if sw == 0 {
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
