// Package geometry builds the static blocky scene: a humanoid on the left
// and a tree on the right, every face emitted as two triangles.
package geometry

import (
	"bytes"
	"encoding/binary"

	mgl "github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/exp/f32"
)

// FloatsPerVertex is position(3) + color(3).
const FloatsPerVertex = 6

const VertexStride = FloatsPerVertex * 4

type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// VertexBytes packs the interleaved vertex data for upload.
func (m *Mesh) VertexBytes() []byte {
	return f32.Bytes(binary.LittleEndian, m.Vertices...)
}

func (m *Mesh) IndexBytes() []byte {
	data := new(bytes.Buffer)
	binary.Write(data, binary.LittleEndian, m.Indices)
	return data.Bytes()
}

// Append adds o to m, rebasing its indices.
func (m *Mesh) Append(o *Mesh) {
	base := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, o.Vertices...)
	for _, i := range o.Indices {
		m.Indices = append(m.Indices, i+base)
	}
}

func (m *Mesh) addQuad(p0, p1, p2, p3, color mgl.Vec3) {
	base := uint32(m.VertexCount())
	for _, p := range [...]mgl.Vec3{p0, p1, p2, p3} {
		m.Vertices = append(m.Vertices, p[0], p[1], p[2], color[0], color[1], color[2])
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3)
}

func (m *Mesh) addBox(center mgl.Vec3, width, height, depth float32, color mgl.Vec3) {
	hw, hh, hd := width/2, height/2, depth/2
	c := [8]mgl.Vec3{
		center.Add(mgl.Vec3{-hw, -hh, -hd}),
		center.Add(mgl.Vec3{hw, -hh, -hd}),
		center.Add(mgl.Vec3{hw, hh, -hd}),
		center.Add(mgl.Vec3{-hw, hh, -hd}),
		center.Add(mgl.Vec3{-hw, -hh, hd}),
		center.Add(mgl.Vec3{hw, -hh, hd}),
		center.Add(mgl.Vec3{hw, hh, hd}),
		center.Add(mgl.Vec3{-hw, hh, hd}),
	}
	m.addQuad(c[0], c[1], c[2], c[3], color) // front
	m.addQuad(c[5], c[4], c[7], c[6], color) // back
	m.addQuad(c[4], c[0], c[3], c[7], color) // left
	m.addQuad(c[1], c[5], c[6], c[2], color) // right
	m.addQuad(c[3], c[2], c[6], c[7], color) // top
	m.addQuad(c[4], c[5], c[1], c[0], color) // bottom
}

func (m *Mesh) addCube(center mgl.Vec3, size float32, color mgl.Vec3) {
	m.addBox(center, size, size, size, color)
}

var (
	bodyColor   = mgl.Vec3{0.8, 0.3, 0.3}
	headColor   = mgl.Vec3{0.9, 0.7, 0.6}
	limbColor   = mgl.Vec3{0.4, 0.4, 0.8}
	trunkColor  = mgl.Vec3{0.4, 0.25, 0.1}
	leavesColor = mgl.Vec3{0.2, 0.7, 0.2}
)

func Humanoid() *Mesh {
	m := &Mesh{}
	const x = float32(-1.5)

	m.addCube(mgl.Vec3{x, 1.2, 0}, 0.3, headColor)

	const torsoWidth = 0.4
	m.addBox(mgl.Vec3{x, 0.6, 0}, torsoWidth, 0.6, 0.25, bodyColor)

	const armWidth, armLength = 0.15, 0.5
	m.addBox(mgl.Vec3{x - torsoWidth/2 - armWidth/2, 0.8, 0}, armWidth, armLength, armWidth, limbColor)
	m.addBox(mgl.Vec3{x + torsoWidth/2 + armWidth/2, 0.8, 0}, armWidth, armLength, armWidth, limbColor)

	const legWidth, legLength = 0.15, 0.6
	m.addBox(mgl.Vec3{x - 0.1, 0, 0}, legWidth, legLength, legWidth, limbColor)
	m.addBox(mgl.Vec3{x + 0.1, 0, 0}, legWidth, legLength, legWidth, limbColor)
	return m
}

func Tree() *Mesh {
	m := &Mesh{}
	const x = float32(1.5)

	m.addBox(mgl.Vec3{x, 0.5, 0}, 0.2, 1.0, 0.2, trunkColor)

	// stacked leaves, widest at the bottom
	m.addCube(mgl.Vec3{x, 1.2, 0}, 0.6, leavesColor)
	m.addCube(mgl.Vec3{x, 1.5, 0}, 0.5, leavesColor)
	m.addCube(mgl.Vec3{x, 1.8, 0}, 0.3, leavesColor)
	return m
}

// Scene returns the humanoid and the tree combined into one mesh.
func Scene() *Mesh {
	m := Humanoid()
	m.Append(Tree())
	return m
}
