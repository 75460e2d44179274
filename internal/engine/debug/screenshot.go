// Package debug writes PNG snapshots of composited frames.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes numbered, timestamped PNG files to a directory.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
	seq       int
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// PixelsToImage converts bottom-up RGBA rows, as returned by glReadPixels,
// into a top-down image.
func PixelsToImage(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d",
			width, height, max(width*height*4, 0), len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// CaptureFromPixels saves bottom-up RGBA pixel data as a PNG.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := PixelsToImage(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img as a PNG and returns the file path.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", fmt.Errorf("nothing to capture")
	}

	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	sc.seq++

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}

	return filename, nil
}

// GenerateFilename returns the path the next capture will be written to.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%03d.png", sc.prefix, timestamp, sc.seq)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
