package tess

import (
	"fmt"
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	MinTessLevel     = float32(1.0)
	MaxTessLevel     = float32(64.0)
	DefaultTessLevel = float32(4.0)
)

// Uniform names bound before each draw call.
const (
	UniformModelViewProjection = "uModelViewProjection"
	UniformTessLevel           = "uTessLevel"
	UniformWireframeMode       = "uWireframeMode"
	UniformWireframeColor      = "uWireframeColor"
)

var WireframeColor = mgl.Vec3{1, 1, 1}

// Selection is the user controlled tessellation state.
type Selection struct {
	Domain    Domain
	Spacing   Spacing
	Winding   Winding
	Mode      RenderMode
	TessLevel float32
}

func DefaultSelection() Selection {
	return Selection{
		Domain:    DomainTriangles,
		Spacing:   SpacingEqual,
		Winding:   WindingCCW,
		Mode:      RenderColor,
		TessLevel: DefaultTessLevel,
	}
}

// Controller owns the active Selection and the program it resolves to.
// It is not safe for concurrent use; all calls happen on the render thread.
type Controller struct {
	res    Resolver
	sel    Selection
	active Program
}

func NewController(r Resolver) *Controller {
	return &Controller{res: r, sel: DefaultSelection()}
}

func (c *Controller) Selection() Selection {
	return c.sel
}

// Key is the catalog key for the current domain and spacing.
func (c *Controller) Key() PipelineKey {
	return PipelineKey{c.sel.Domain, c.sel.Spacing}.canonical()
}

// Active returns the bound program, or nil while no selection has ever
// resolved.
func (c *Controller) Active() Program {
	return c.active
}

// Reselect resolves the current key. On a miss the previous program stays
// bound and an error wrapping ErrPipelineUnavailable is returned.
func (c *Controller) Reselect() error {
	k := c.Key()
	prog, ok := c.res.Resolve(k)
	if !ok {
		return fmt.Errorf("shader %s not found: %w", k, ErrPipelineUnavailable)
	}
	c.active = prog
	return nil
}

func (c *Controller) SetDomain(d Domain) error {
	if d < 0 || d >= numDomains {
		return fmt.Errorf("domain %d: %w", int(d), ErrUnknownKey)
	}
	c.sel.Domain = d
	return c.Reselect()
}

// SetSpacing accepts the three spacings plus the SpacingInteger alias.
func (c *Controller) SetSpacing(s Spacing) error {
	if s < 0 || s > SpacingInteger {
		return fmt.Errorf("spacing %d: %w", int(s), ErrUnknownKey)
	}
	c.sel.Spacing = s
	return c.Reselect()
}

// SetWinding records w. Winding does not select a pipeline.
func (c *Controller) SetWinding(w Winding) {
	c.sel.Winding = w
}

// AdjustTessLevel adds delta and clamps to [MinTessLevel, MaxTessLevel].
// A NaN delta is ignored.
func (c *Controller) AdjustTessLevel(delta float32) float32 {
	if math.IsNaN(float64(delta)) {
		return c.sel.TessLevel
	}
	c.sel.TessLevel = mgl.Clamp(c.sel.TessLevel+delta, MinTessLevel, MaxTessLevel)
	return c.sel.TessLevel
}

func (c *Controller) ToggleRenderMode() RenderMode {
	if c.sel.Mode == RenderColor {
		c.sel.Mode = RenderWireframe
	} else {
		c.sel.Mode = RenderColor
	}
	return c.sel.Mode
}

func (c *Controller) Wireframe() bool {
	return c.sel.Mode == RenderWireframe
}

func (c *Controller) CurrentPatchVertexCount() int32 {
	return c.sel.Domain.PatchVertices()
}

// FrameUniforms is the uniform state for one draw call.
type FrameUniforms struct {
	ViewProjection mgl.Mat4
	TessLevel      float32
	Wireframe      bool
	WireframeColor mgl.Vec3
}

type UniformBinding struct {
	Name  string
	Value any
}

// Bindings returns the uniforms in a fixed order.
func (u FrameUniforms) Bindings() []UniformBinding {
	return []UniformBinding{
		{UniformModelViewProjection, u.ViewProjection},
		{UniformTessLevel, u.TessLevel},
		{UniformWireframeMode, u.Wireframe},
		{UniformWireframeColor, u.WireframeColor},
	}
}

// FrameUniforms must be read after the frame's input has been applied and
// before the draw call.
func (c *Controller) FrameUniforms(viewProjection mgl.Mat4) FrameUniforms {
	return FrameUniforms{
		ViewProjection: viewProjection,
		TessLevel:      c.sel.TessLevel,
		Wireframe:      c.Wireframe(),
		WireframeColor: WireframeColor,
	}
}
