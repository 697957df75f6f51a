package tess

import (
	"fmt"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// UniformSink receives typed uniform values for one program.
type UniformSink interface {
	Matrix4(name string, v mgl.Mat4)
	Vec3(name string, v mgl.Vec3)
	Float(name string, v float32)
	Int(name string, v int32)
}

// ApplyUniform forwards value to the sink method for its type. Booleans are
// sent as 0 or 1. Any other type panics with an Error naming the uniform;
// a value the shader cannot receive is a programming error.
func ApplyUniform(s UniformSink, name string, value any) {
	switch v := value.(type) {
	case mgl.Mat4:
		s.Matrix4(name, v)
	case mgl.Vec3:
		s.Vec3(name, v)
	case float32:
		s.Float(name, v)
	case int32:
		s.Int(name, v)
	case bool:
		if v {
			s.Int(name, 1)
		} else {
			s.Int(name, 0)
		}
	default:
		panic(Error(fmt.Sprintf("uniform %s: unsupported value type %T", name, value)))
	}
}
