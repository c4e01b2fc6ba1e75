package gpu

import (
	"Atmos/internal/logger"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// CompileError carries the driver's diagnostic for a shader stage that failed to
// compile. Shader sources ship with the binary, so this is an authoring defect.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link program: " + e.Log
}

func glStage(stage ShaderStage) uint32 {
	if stage == FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (d *OpenGL) CompileShader(source string, stage ShaderStage) (Handle, error) {
	shader := gl.CreateShader(glStage(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, &CompileError{Stage: stage, Log: strings.TrimRight(log, "\x00\n")}
	}
	return Handle(shader), nil
}

func (d *OpenGL) LinkProgram(vertexSource, fragmentSource string) (Handle, error) {
	var stages []uint32
	defer func() {
		for _, s := range stages {
			gl.DeleteShader(s)
		}
	}()

	for _, src := range []struct {
		source string
		stage  ShaderStage
	}{{vertexSource, VertexStage}, {fragmentSource, FragmentStage}} {
		if src.source == "" {
			continue
		}
		shader, err := d.CompileShader(src.source, src.stage)
		if err != nil {
			return 0, err
		}
		stages = append(stages, uint32(shader))
	}

	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, &LinkError{Log: strings.TrimRight(log, "\x00\n")}
	}

	for _, s := range stages {
		gl.DetachShader(program, s)
	}
	logger.Log.Debug("Program linked", zap.Uint32("program", program), zap.Int("stages", len(stages)))
	return Handle(program), nil
}

func (d *OpenGL) UniformLocation(program Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (d *OpenGL) UseProgram(program Handle) {
	gl.UseProgram(uint32(program))
}

func (d *OpenGL) SetInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *OpenGL) SetFloat(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *OpenGL) SetMat4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *OpenGL) DeleteProgram(program Handle) {
	gl.DeleteProgram(uint32(program))
}
