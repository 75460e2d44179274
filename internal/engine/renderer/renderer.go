// Package renderer provides the OpenGL compositing backend.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/assets"
	"github.com/Faultbox/shaderhub/internal/carousel/composite"
	"github.com/Faultbox/shaderhub/internal/carousel/layout"
	"github.com/Faultbox/shaderhub/internal/engine/shader"
	"github.com/Faultbox/shaderhub/internal/engine/shader/shaders"
	"github.com/Faultbox/shaderhub/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex attribute locations, matching card.vert.
const (
	attribPosition = 0
	attribTexCoord = 1
)

// ErrTextureTable is returned by Upload after the table has been destroyed.
var ErrTextureTable = errors.New("texture table released")

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer composites the carousel with OpenGL. It implements composite.Backend.
// Textures live in an index-based table; a composite.TextureID is a slot in it.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	vao   uint32
	posVB uint32
	uvVB  uint32

	textures []uint32
	released bool
	cards    int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	c := composite.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	var err error
	r.program, err = shader.NewProgram(shaders.CardVertexShader, shaders.CardFragmentShader)
	if err != nil {
		r.log.Error("card program failed", zap.Error(err))
		return nil, fmt.Errorf("card program: %w", err)
	}

	r.program.Use()
	gl.Uniform1i(r.program.Uniform(composite.SamplerBase), composite.UnitBase)
	gl.Uniform1i(r.program.Uniform(composite.SamplerOverlay), composite.UnitOverlay)
	gl.Uniform1i(r.program.Uniform(composite.SamplerTint), composite.UnitTint)
	gl.UseProgram(0)

	r.createBuffers()
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Name implements composite.Backend.
func (r *Renderer) Name() string { return "opengl" }

// createBuffers sets up the VAO with an empty position and texcoord buffer.
// Contents are filled on Resize.
func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.posVB)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVB)
	gl.VertexAttribPointer(attribPosition, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(attribPosition)

	gl.GenBuffers(1, &r.uvVB)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.uvVB)
	gl.VertexAttribPointer(attribTexCoord, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(attribTexCoord)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("positions", r.posVB),
		zap.Uint32("texcoords", r.uvVB),
	)
}

// Upload implements composite.Backend. Rows are flipped so texture row 0 is
// the bottom of the image.
func (r *Renderer) Upload(img image.Image) (composite.TextureID, error) {
	if r.released {
		return composite.NoTexture, ErrTextureTable
	}
	if img == nil || img.Bounds().Empty() {
		return composite.NoTexture, composite.ErrEmptyImage
	}

	pix := assets.FlipVertical(assets.ToNRGBA(img))
	w, h := pix.Rect.Dx(), pix.Rect.Dy()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(pix.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return composite.NoTexture, fmt.Errorf("glTexImage2D %dx%d: error 0x%x", w, h, code)
	}

	r.textures = append(r.textures, tex)
	return composite.TextureID(len(r.textures) - 1), nil
}

// Resize implements composite.Backend: sets the viewport and re-uploads the
// card quads.
func (r *Renderer) Resize(l *layout.Layout) error {
	r.config.Width = l.Width
	r.config.Height = l.Height
	gl.Viewport(0, 0, int32(max(l.Width, 0)), int32(max(l.Height, 0)))

	r.cards = len(l.Quads)
	if r.cards == 0 {
		r.log.Debug("renderer resized to empty layout",
			zap.Int("width", l.Width),
			zap.Int("height", l.Height),
		)
		return nil
	}

	positions := l.Vertices()
	texcoords := make([]float32, 0, len(positions))
	for range l.Quads {
		texcoords = append(texcoords, layout.TexCoords[:]...)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVB)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, unsafe.Pointer(&positions[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.uvVB)
	gl.BufferData(gl.ARRAY_BUFFER, len(texcoords)*4, unsafe.Pointer(&texcoords[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("renderer resized",
		zap.Int("width", l.Width),
		zap.Int("height", l.Height),
		zap.Int("cards", r.cards),
	)
	return checkError("resize")
}

// Begin implements composite.Backend.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.program.Use()
	gl.BindVertexArray(r.vao)
}

// DrawCard implements composite.Backend.
func (r *Renderer) DrawCard(i int, b composite.Bindings, u *composite.Uniforms) {
	if i < 0 || i >= r.cards {
		return
	}

	p := r.program
	gl.UniformMatrix4fv(p.Uniform(composite.UniformMVP), 1, false, u.MVP.Ptr())
	gl.Uniform1f(p.Uniform(composite.UniformBrightness), u.Brightness)
	gl.Uniform2f(p.Uniform(composite.UniformLightPosition), u.LightPosition.X, u.LightPosition.Y)
	gl.Uniform1f(p.Uniform(composite.UniformStarAlpha), u.StarAlpha)
	gl.Uniform1i(p.Uniform(composite.UniformUseOverlay), boolInt(u.UseOverlay))
	gl.Uniform1i(p.Uniform(composite.UniformUseTint), boolInt(u.UseTint))
	gl.Uniform1i(p.Uniform(composite.UniformUseLight), boolInt(u.UseLight))

	r.bind(composite.UnitBase, b.Base)
	r.bind(composite.UnitOverlay, b.Overlay)
	r.bind(composite.UnitTint, b.Tint)

	gl.DrawArrays(gl.TRIANGLE_STRIP, int32(i*layout.VerticesPerCard), layout.VerticesPerCard)
}

// bind attaches texture id to unit. Out-of-range ids bind nothing, which
// samples as black.
func (r *Renderer) bind(unit uint32, id composite.TextureID) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	var tex uint32
	if id >= 0 && int(id) < len(r.textures) {
		tex = r.textures[id]
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

// End implements composite.Backend.
func (r *Renderer) End() error {
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
	return checkError("draw")
}

// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	if width <= 0 || height <= 0 {
		return nil, 0, 0
	}
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

// TextureCount returns the number of live textures.
func (r *Renderer) TextureCount() int {
	return len(r.textures)
}

// Destroy implements composite.Backend. Every texture in the table, the
// buffers and the program are released exactly once.
func (r *Renderer) Destroy() {
	if r.released {
		return
	}
	r.released = true
	r.log.Info("closing renderer", zap.Int("textures", len(r.textures)))

	if len(r.textures) > 0 {
		gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
		r.textures = nil
	}
	if r.posVB != 0 {
		gl.DeleteBuffers(1, &r.posVB)
	}
	if r.uvVB != 0 {
		gl.DeleteBuffers(1, &r.uvVB)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", op, code)
	}
	return nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
