package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	topToBottom  bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errors.New("tga: data too short")
	}
	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bpp:          int(data[16]),
		topToBottom:  data[17]&0x20 != 0,
	}

	switch {
	case h.colorMapType != 0:
		return h, errors.New("tga: color-mapped images not supported")
	case h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE:
		return h, fmt.Errorf("tga: unsupported type %d", h.imageType)
	case h.bpp != 24 && h.bpp != 32:
		return h, fmt.Errorf("tga: unsupported bit depth %d", h.bpp)
	case h.width == 0 || h.height == 0:
		return h, errors.New("tga: empty image")
	}
	return h, nil
}

// tgaWriter places pixels in file order, which is bottom-up unless the
// descriptor says otherwise.
type tgaWriter struct {
	img  *image.NRGBA
	h    tgaHeader
	next int
}

func (w *tgaWriter) done() bool {
	return w.next >= w.h.width*w.h.height
}

func (w *tgaWriter) put(c color.NRGBA) {
	x := w.next % w.h.width
	y := w.next / w.h.width
	if !w.h.topToBottom {
		y = w.h.height - 1 - y
	}
	w.img.SetNRGBA(x, y, c)
	w.next++
}

// readPixel decodes one BGR(A) pixel.
func readPixel(p []byte, bytesPerPixel int) color.NRGBA {
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA into straight alpha.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	pix := data[offset:]
	bpp := h.bpp / 8

	w := &tgaWriter{img: image.NewNRGBA(image.Rect(0, 0, h.width, h.height)), h: h}

	if h.imageType == TGATypeUncompressed {
		if len(pix) < h.width*h.height*bpp {
			return nil, errTGATruncated
		}
		for i := 0; !w.done(); i += bpp {
			w.put(readPixel(pix[i:], bpp))
		}
		return w.img, nil
	}

	for i := 0; !w.done(); {
		if i >= len(pix) {
			return nil, errTGATruncated
		}
		packet := pix[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+bpp > len(pix) {
				return nil, errTGATruncated
			}
			c := readPixel(pix[i:], bpp)
			i += bpp
			for ; count > 0 && !w.done(); count-- {
				w.put(c)
			}
			continue
		}

		for ; count > 0 && !w.done(); count-- {
			if i+bpp > len(pix) {
				return nil, errTGATruncated
			}
			w.put(readPixel(pix[i:], bpp))
			i += bpp
		}
	}
	return w.img, nil
}
