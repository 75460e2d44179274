// Package assets loads card images from an asset directory.
//
// Files are read once and cached as raw bytes. Images decode by extension:
// PNG, JPEG, GIF, BMP and WebP go through image.Decode, TGA through DecodeTGA.
// Animated overlays are expanded into evenly spaced frames by DecodeFrames.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// ErrNotFound is returned for files missing from the asset directory.
var ErrNotFound = errors.New("asset not found")

// Manager loads and caches files from an asset directory.
type Manager struct {
	fsys  fs.FS
	cache *Cache
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string) *Manager {
	return NewManagerFS(os.DirFS(dir))
}

// NewManagerFS creates a manager over any file system.
func NewManagerFS(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		cache: NewCache(),
	}
}

// Load returns the raw bytes of name.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	data, err := fs.ReadFile(m.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	m.cache.Set(name, data)
	return data, nil
}

// Image loads and decodes a still image.
func (m *Manager) Image(name string) (image.Image, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// Frames loads an animated GIF and samples it every interval.
func (m *Manager) Frames(name string, interval time.Duration) ([]image.Image, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	frames, err := DecodeFrames(bytes.NewReader(data), interval)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return frames, nil
}

// Close drops every cached file.
func (m *Manager) Close() {
	m.cache.Clear()
}
