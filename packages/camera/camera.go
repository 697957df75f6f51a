// Package camera is an Euler-angle fly camera.
package camera

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	Speed       = float32(2.5)
	Sensitivity = float32(0.1)
	NearPlane   = float32(0.1)
	FarPlane    = float32(100.0)
)

type Movement int

const (
	Forward = Movement(iota)
	Backward
	Left
	Right
	Up
	Down
)

type Camera struct {
	Position mgl.Vec3
	front    mgl.Vec3
	up       mgl.Vec3
	right    mgl.Vec3
	yaw      float32
	pitch    float32
	fov      float32
}

func New(position mgl.Vec3) *Camera {
	c := &Camera{Position: position, yaw: -90, fov: 45}
	c.updateVectors()
	return c
}

func (c *Camera) Yaw() float32   { return c.yaw }
func (c *Camera) Pitch() float32 { return c.pitch }
func (c *Camera) Fov() float32   { return c.fov }
func (c *Camera) Front() mgl.Vec3 {
	return c.front
}

func (c *Camera) SetYaw(v float32) {
	c.yaw = v
	c.updateVectors()
}

// SetPitch clamps to +-89 degrees so the view never flips.
func (c *Camera) SetPitch(v float32) {
	c.pitch = mgl.Clamp(v, -89, 89)
	c.updateVectors()
}

func (c *Camera) SetFov(v float32) {
	c.fov = mgl.Clamp(v, 1, 90)
}

func (c *Camera) ViewMatrix() mgl.Mat4 {
	return mgl.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl.Mat4 {
	return mgl.Perspective(mgl.DegToRad(c.fov), aspect, NearPlane, FarPlane)
}

// ViewProjection is projection * view.
func (c *Camera) ViewProjection(aspect float32) mgl.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

func (c *Camera) Move(dir Movement, dt float32) {
	v := Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.front.Mul(v))
	case Backward:
		c.Position = c.Position.Sub(c.front.Mul(v))
	case Left:
		c.Position = c.Position.Sub(c.right.Mul(v))
	case Right:
		c.Position = c.Position.Add(c.right.Mul(v))
	case Up:
		c.Position = c.Position.Add(c.up.Mul(v))
	case Down:
		c.Position = c.Position.Sub(c.up.Mul(v))
	}
}

func (c *Camera) ProcessMouseMovement(dx, dy float32) {
	c.yaw += dx * Sensitivity
	c.SetPitch(c.pitch + dy*Sensitivity)
}

func (c *Camera) ProcessMouseScroll(dy float32) {
	c.SetFov(c.fov - dy)
}

func (c *Camera) updateVectors() {
	yaw, pitch := float64(mgl.DegToRad(c.yaw)), float64(mgl.DegToRad(c.pitch))
	c.front = mgl.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(mgl.Vec3{0, 1, 0}).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
