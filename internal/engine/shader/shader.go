// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage names used in CompileError.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
	StageLink     = "link"
)

// CompileError is returned when a shader fails to compile or a program fails
// to link. Log holds the driver's info log verbatim.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, strings.TrimRight(e.Log, "\x00\n "))
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or a *CompileError if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLen, nil, buf)
		})
		gl.DeleteProgram(program)
		return 0, &CompileError{Stage: StageLink, Log: log}
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLen, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}

	return shader, nil
}

// infoLog reads a driver log of n bytes. Some drivers report a zero length on
// failure, in which case the log is empty.
func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	read(&buf[0])
	return string(buf)
}

// Program is a linked program with cached uniform locations.
type Program struct {
	ID       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links a program.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{ID: id, uniforms: make(map[string]int32)}, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the cached location for name, or -1 if the uniform is
// inactive. GL ignores writes to -1.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.uniforms[name] = loc
	return loc
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
	clear(p.uniforms)
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
