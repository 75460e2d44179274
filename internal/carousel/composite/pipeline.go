package composite

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/carousel/layout"
	"github.com/Faultbox/shaderhub/internal/logger"
	vmath "github.com/Faultbox/shaderhub/pkg/math"
)

// PlaceholderColor fills cards whose base texture is missing.
var PlaceholderColor = color.NRGBA{R: 64, G: 64, B: 64, A: 255}

// Assets are the decoded images the pipeline uploads once. Nil entries are
// missing assets; the affected card degrades to a placeholder.
type Assets struct {
	Cards  []image.Image
	Tints  []image.Image
	Frames []image.Image
}

// Config holds the shading constants.
type Config struct {
	Brightness float32
	StarAlpha  float32
	Features   Features
}

// DefaultConfig returns the full-featured configuration.
func DefaultConfig() Config {
	return Config{
		Brightness: DefaultBrightness,
		StarAlpha:  DefaultStarAlpha,
		Features:   AllFeatures(),
	}
}

// FrameState is what the pipeline reads from the rest of the carousel each frame.
type FrameState struct {
	TranslationX float32
	Frame        int
	Light        vmath.Vec2
}

// Pipeline issues one draw per card in index order. Apart from the texture
// table built at construction it keeps no state between frames.
type Pipeline struct {
	backend Backend
	cfg     Config
	log     *zap.Logger

	cards  []TextureID
	tints  []TextureID
	frames []TextureID

	placeholder TextureID
	clear       TextureID
}

// New uploads assets to backend. Failing to create the placeholders is fatal;
// failing to upload an individual card, tint or frame only drops that asset.
func New(backend Backend, cfg Config, assets Assets) (*Pipeline, error) {
	p := &Pipeline{
		backend: backend,
		cfg:     cfg,
		log:     logger.Named("composite").With(zap.String("backend", backend.Name())),
	}

	var err error
	if p.placeholder, err = backend.Upload(solid(PlaceholderColor)); err != nil {
		return nil, fmt.Errorf("upload placeholder: %w", err)
	}
	if p.clear, err = backend.Upload(solid(color.NRGBA{})); err != nil {
		return nil, fmt.Errorf("upload clear texture: %w", err)
	}

	p.cards = p.uploadAll("card", assets.Cards, false)
	p.tints = p.uploadAll("tint", assets.Tints, false)
	p.frames = p.uploadAll("overlay frame", assets.Frames, true)

	p.log.Info("pipeline ready",
		zap.Int("cards", len(p.cards)),
		zap.Int("tints", len(p.tints)),
		zap.Int("frames", len(p.frames)))
	return p, nil
}

// uploadAll uploads imgs in order. Missing entries keep their slot as
// NoTexture, unless compact is set, in which case they are dropped.
func (p *Pipeline) uploadAll(kind string, imgs []image.Image, compact bool) []TextureID {
	ids := make([]TextureID, 0, len(imgs))
	for i, img := range imgs {
		id := NoTexture
		if img == nil {
			p.log.Warn("missing asset", zap.String("kind", kind), zap.Int("index", i))
		} else if uploaded, err := p.backend.Upload(img); err != nil {
			p.log.Warn("asset upload failed", zap.String("kind", kind), zap.Int("index", i), zap.Error(err))
		} else {
			id = uploaded
		}
		if id == NoTexture && compact {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func solid(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return img
}

// FrameCount returns the number of overlay frames that uploaded successfully.
func (p *Pipeline) FrameCount() int {
	return len(p.frames)
}

// Config returns the shading constants.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Resize forwards a new layout to the backend.
func (p *Pipeline) Resize(l *layout.Layout) error {
	return p.backend.Resize(l)
}

// Uniforms builds the per-frame uniform snapshot for a width x height surface.
func (p *Pipeline) Uniforms(width, height int, s FrameState) Uniforms {
	return Uniforms{
		MVP:           MVP(width, height, s.TranslationX),
		Brightness:    p.cfg.Brightness,
		LightPosition: s.Light,
		StarAlpha:     p.cfg.StarAlpha,
		UseOverlay:    p.cfg.Features.Overlay && len(p.frames) > 0,
		UseTint:       p.cfg.Features.Tint,
		UseLight:      p.cfg.Features.Light,
	}
}

// Bindings returns the textures for card i at overlay frame.
func (p *Pipeline) Bindings(i, frame int) Bindings {
	b := Bindings{
		Base:    lookup(p.cards, i, p.placeholder),
		Overlay: p.clear,
		Tint:    lookup(p.tints, i, p.clear),
	}
	if n := len(p.frames); n > 0 {
		if frame < 0 {
			frame = 0
		}
		b.Overlay = p.frames[frame%n]
	}
	return b
}

func lookup(ids []TextureID, i int, fallback TextureID) TextureID {
	if i < 0 || i >= len(ids) || ids[i] == NoTexture {
		return fallback
	}
	return ids[i]
}

// Draw renders one frame of layout l.
func (p *Pipeline) Draw(l *layout.Layout, s FrameState) error {
	p.backend.Begin()
	if !l.Empty() {
		u := p.Uniforms(l.Width, l.Height, s)
		for i := range l.Quads {
			p.backend.DrawCard(i, p.Bindings(i, s.Frame), &u)
		}
	}
	if err := p.backend.End(); err != nil {
		return fmt.Errorf("%s backend: %w", p.backend.Name(), err)
	}
	return nil
}

// Destroy releases the backend's resources.
func (p *Pipeline) Destroy() {
	p.backend.Destroy()
}
