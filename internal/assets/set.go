package assets

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/logger"
)

// SetSpec names the files that make up a carousel. Patterns take the card
// index starting at 0.
type SetSpec struct {
	Count         int
	CardPattern   string
	TintPattern   string
	Overlay       string
	FrameInterval time.Duration

	SkipTints   bool
	SkipOverlay bool
}

// Set holds decoded images. Missing or undecodable entries are nil.
type Set struct {
	Cards  []image.Image
	Tints  []image.Image
	Frames []image.Image
}

// Missing counts the nil card and tint entries.
func (s Set) Missing() int {
	n := 0
	for _, img := range s.Cards {
		if img == nil {
			n++
		}
	}
	for _, img := range s.Tints {
		if img == nil {
			n++
		}
	}
	return n
}

// LoadSet loads every file in spec. Failures are logged and leave a nil
// entry so that only the affected card degrades.
func (m *Manager) LoadSet(spec SetSpec) Set {
	log := logger.Named("assets")
	var s Set

	load := func(kind, pattern string, i int) image.Image {
		name := fmt.Sprintf(pattern, i)
		img, err := m.Image(name)
		if err != nil {
			log.Warn("card asset unavailable", zap.String("kind", kind), zap.Int("card", i), zap.Error(err))
			return nil
		}
		return img
	}

	if spec.Count > 0 {
		s.Cards = make([]image.Image, spec.Count)
		for i := range s.Cards {
			s.Cards[i] = load("card", spec.CardPattern, i)
		}
		if !spec.SkipTints && spec.TintPattern != "" {
			s.Tints = make([]image.Image, spec.Count)
			for i := range s.Tints {
				s.Tints[i] = load("tint", spec.TintPattern, i)
			}
		}
	}

	if !spec.SkipOverlay && spec.Overlay != "" {
		frames, err := m.Frames(spec.Overlay, spec.FrameInterval)
		if err != nil {
			log.Warn("overlay unavailable", zap.String("file", spec.Overlay), zap.Error(err))
		} else {
			s.Frames = frames
		}
	}

	hits, misses := m.cache.Stats()
	log.Info("assets loaded",
		zap.Int("cards", len(s.Cards)),
		zap.Int("frames", len(s.Frames)),
		zap.Int("missing", s.Missing()),
		zap.Int("cached_files", m.cache.Len()),
		zap.Int("bytes", m.cache.Size()),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses))
	return s
}
