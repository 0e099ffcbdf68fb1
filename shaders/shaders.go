// Package shaders holds the GPU kernel sources and the helpers that compile
// them into programs. The kernels are consumed by binding contract only:
// compute reads the particle buffer (binding 0) and parameters (binding 1),
// render reads the camera matrix (binding 0) and particle buffer (binding 1).
package shaders

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// NewComputeProgram compiles and links a compute kernel.
func NewComputeProgram(source string) (uint32, error) {
	shader, err := compileShader(source, gl.COMPUTE_SHADER)
	if err != nil {
		return 0, fmt.Errorf("compiling compute kernel: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)
	gl.DeleteShader(shader)

	if err := checkLink(program); err != nil {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("linking compute kernel: %w", err)
	}
	return program, nil
}

// NewRenderProgram compiles and links a vertex/fragment render kernel.
func NewRenderProgram(vertSource, fragSource string) (uint32, error) {
	vert, err := compileShader(vertSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("compiling vertex kernel: %w", err)
	}
	frag, err := compileShader(fragSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("compiling fragment kernel: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	if err := checkLink(program); err != nil {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("linking render kernel: %w", err)
	}
	return program, nil
}

// compileShader compiles a single shader stage.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", log)
	}

	return shader, nil
}

// checkLink returns the program info log as an error if linking failed.
func checkLink(program uint32) error {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return fmt.Errorf("%s", log)
	}
	return nil
}
