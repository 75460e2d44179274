package terminal

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/shaderhub/internal/assets"
)

// halfBlock draws the upper pixel as foreground and the lower as background.
const halfBlock = '▀'

// view maps the carousel surface onto terminal cells. Each cell holds two
// vertically stacked pixels. The last row is the status line.
type view struct {
	cols, rows int

	// Fitted picture size in half-block pixels and its top-left cell.
	width, height int
	left, top     int

	surfaceW, surfaceH int
}

func newView(cols, rows, surfaceW, surfaceH int) view {
	v := view{cols: cols, rows: rows, surfaceW: surfaceW, surfaceH: surfaceH}
	if cols <= 0 || rows <= 1 {
		return v
	}
	v.width, v.height = assets.FitSize(surfaceW, surfaceH, cols, (rows-1)*2)
	v.left = (cols - v.width) / 2
	v.top = ((rows - 1) - (v.height+1)/2) / 2
	return v
}

// empty reports whether there is no room for the picture.
func (v view) empty() bool {
	return v.width == 0 || v.height == 0
}

// surfaceX converts a cell column to a surface x coordinate at the cell center.
func (v view) surfaceX(col int) float32 {
	if v.width == 0 {
		return 0
	}
	return (float32(col-v.left) + 0.5) * float32(v.surfaceW) / float32(v.width)
}

// statusRow is the row reserved for the status line.
func (v view) statusRow() int {
	return v.rows - 1
}

// present scales frame into the view and writes it as half blocks.
func present(screen tcell.Screen, frame *image.RGBA, v view) {
	if v.empty() {
		return
	}
	pic := assets.Fit(frame, v.width, v.height)
	b := pic.Bounds()

	for cy := 0; cy*2 < b.Dy(); cy++ {
		for x := 0; x < b.Dx(); x++ {
			style := tcell.StyleDefault.Foreground(rgb(pic, x, cy*2))
			if cy*2+1 < b.Dy() {
				style = style.Background(rgb(pic, x, cy*2+1))
			}
			screen.SetContent(v.left+x, v.top+cy, halfBlock, nil, style)
		}
	}
}

func rgb(img *image.NRGBA, x, y int) tcell.Color {
	c := img.NRGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawText writes s at row y starting at column 0, truncated to the width.
func drawText(screen tcell.Screen, y int, s string, style tcell.Style) {
	cols, _ := screen.Size()
	x := 0
	for _, r := range s {
		if x >= cols {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
