package main

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/jdonald/tessellation-demo/packages/geometry"
	"github.com/jdonald/tessellation-demo/packages/tess"
)

type Error string

func (e Error) Error() string {
	return string(e)
}

// ------------------------------------------------------------------
// ShaderProgram_GL

type ShaderProgram_GL struct {
	program uint32
	u       map[string]int32
}

func newShaderProgram(program uint32) *ShaderProgram_GL {
	return &ShaderProgram_GL{program: program, u: make(map[string]int32)}
}

func (s *ShaderProgram_GL) glStr(str string) *uint8 {
	return gl.Str(str + "\x00")
}

func (s *ShaderProgram_GL) RegisterUniforms(names ...string) {
	for _, name := range names {
		s.u[name] = gl.GetUniformLocation(s.program, s.glStr(name))
	}
}

func (s *ShaderProgram_GL) Use() {
	gl.UseProgram(s.program)
}

func (s *ShaderProgram_GL) location(name string) int32 {
	loc, ok := s.u[name]
	if !ok {
		s.RegisterUniforms(name)
		loc = s.u[name]
	}
	return loc
}

func (s *ShaderProgram_GL) SetUniform(name string, value any) {
	tess.ApplyUniform(s, name, value)
}

func (s *ShaderProgram_GL) Matrix4(name string, v mgl.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &v[0])
}

func (s *ShaderProgram_GL) Vec3(name string, v mgl.Vec3) {
	gl.Uniform3f(s.location(name), v[0], v[1], v[2])
}

func (s *ShaderProgram_GL) Float(name string, v float32) {
	gl.Uniform1f(s.location(name), v)
}

func (s *ShaderProgram_GL) Int(name string, v int32) {
	gl.Uniform1i(s.location(name), v)
}

func (s *ShaderProgram_GL) Release() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

// ------------------------------------------------------------------
// Renderer_GL

type Renderer_GL struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	width      int32
	height     int32
	wireframe  bool
}

var stageTypes = [...]uint32{
	tess.StageVertex:      gl.VERTEX_SHADER,
	tess.StageTessControl: gl.TESS_CONTROL_SHADER,
	tess.StageTessEval:    gl.TESS_EVALUATION_SHADER,
	tess.StageFragment:    gl.FRAGMENT_SHADER,
}

// Render initialization.
func (r *Renderer_GL) Init(clear [3]float32) {
	chk(gl.Init())
	fmt.Printf("OpenGL Version: %v\n", gl.GoStr(gl.GetString(gl.VERSION)))
	fmt.Printf("GLSL Version: %v\n", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))
	fmt.Printf("GL Renderer: %v\n", gl.GoStr(gl.GetString(gl.RENDERER)))
	fmt.Printf("GL Vendor: %v\n", gl.GoStr(gl.GetString(gl.VENDOR)))

	gl.ClearColor(clear[0], clear[1], clear[2], 1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
}

func (r *Renderer_GL) Close() {
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	r.vao, r.vbo, r.ebo, r.indexCount = 0, 0, 0, 0
}

// Compile builds one tessellation pipeline. It implements tess.Compiler.
func (r *Renderer_GL) Compile(_ tess.PipelineKey, src tess.Stages) (tess.Program, error) {
	objs := make([]uint32, 0, len(src))
	for st, s := range src {
		obj, err := r.compileShader(stageTypes[st], s)
		if err != nil {
			for _, o := range objs {
				gl.DeleteShader(o)
			}
			return nil, &tess.StageError{Stage: tess.Stage(st), Log: err.Error()}
		}
		objs = append(objs, obj)
	}
	prog, err := r.linkProgram(objs...)
	if err != nil {
		return nil, fmt.Errorf("link program error: %w", err)
	}
	s := newShaderProgram(prog)
	s.RegisterUniforms(tess.UniformModelViewProjection, tess.UniformTessLevel,
		tess.UniformWireframeMode, tess.UniformWireframeColor)
	return s, nil
}

func (r *Renderer_GL) compileShader(shaderType uint32, src string) (shader uint32, err error) {
	shader = gl.CreateShader(shaderType)
	s, free := gl.Strs(src + "\x00")
	defer free()
	var l int32 = int32(len(src))
	gl.ShaderSource(shader, 1, s, &l)
	gl.CompileShader(shader)
	var ok int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &ok)
	if ok == 0 {
		var size, l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &size)
		if size > 0 {
			str := make([]byte, size+1)
			gl.GetShaderInfoLog(shader, size, &l, &str[0])
			err = Error(str[:l])
		} else {
			err = Error("Unknown shader compile error")
		}
		gl.DeleteShader(shader)
		return 0, err
	}
	return shader, nil
}

func (r *Renderer_GL) linkProgram(params ...uint32) (program uint32, err error) {
	program = gl.CreateProgram()
	for _, param := range params {
		gl.AttachShader(program, param)
	}
	gl.LinkProgram(program)
	// Mark shaders for deletion when the program is deleted
	for _, param := range params {
		gl.DetachShader(program, param)
		gl.DeleteShader(param)
	}
	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == 0 {
		var size, l int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &size)
		if size > 0 {
			str := make([]byte, size+1)
			gl.GetProgramInfoLog(program, size, &l, &str[0])
			err = Error(str[:l])
		} else {
			err = Error("Unknown link error")
		}
		gl.DeleteProgram(program)
		return 0, err
	}
	return program, nil
}

// SetMesh uploads the static scene. Called once at startup.
func (r *Renderer_GL) SetMesh(m *geometry.Mesh) {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	vertices := m.VertexBytes()
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	indices := m.IndexBytes()
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices), unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	r.indexCount = int32(len(m.Indices))

	// position
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, geometry.VertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// color
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, geometry.VertexStride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
}

func (r *Renderer_GL) SetViewport(width, height int32) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, width, height)
}

func (r *Renderer_GL) Aspect() float32 {
	if r.height <= 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

func (r *Renderer_GL) BeginFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer_GL) SetWireframe(wireframe bool) {
	if r.wireframe == wireframe {
		return
	}
	r.wireframe = wireframe
	if wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// RenderPatches draws the whole index buffer as patches of patchVertices
// control points through prog.
func (r *Renderer_GL) RenderPatches(prog tess.Program, u tess.FrameUniforms, patchVertices int32) {
	prog.Use()
	for _, b := range u.Bindings() {
		prog.SetUniform(b.Name, b.Value)
	}
	gl.PatchParameteri(gl.PATCH_VERTICES, patchVertices)
	r.SetWireframe(u.Wireframe)
	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.PATCHES, r.indexCount, gl.UNSIGNED_INT, nil)
}
