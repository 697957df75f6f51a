package tess

import (
	"math"
	"testing"
	"testing/fstest"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	progs map[PipelineKey]Program
	calls []PipelineKey
}

func (r *stubResolver) Resolve(k PipelineKey) (Program, bool) {
	r.calls = append(r.calls, k)
	p, ok := r.progs[k]
	return p, ok
}

func loadedController(t *testing.T, fsys fstest.MapFS) (*Controller, *PipelineSet) {
	t.Helper()
	ps := NewPipelineSet(fsys, &fakeCompiler{})
	ps.LoadAll()
	c := NewController(ps)
	return c, ps
}

func TestControllerDefaults(t *testing.T) {
	c, _ := loadedController(t, shaderFS())
	assert.Nil(t, c.Active())
	require.NoError(t, c.Reselect())
	require.NotNil(t, c.Active())
	assert.Equal(t, PipelineKey{DomainTriangles, SpacingEqual}, c.Active().(*fakeProgram).key)

	sel := c.Selection()
	assert.Equal(t, DomainTriangles, sel.Domain)
	assert.Equal(t, SpacingEqual, sel.Spacing)
	assert.Equal(t, WindingCCW, sel.Winding)
	assert.Equal(t, RenderColor, sel.Mode)

	u := c.FrameUniforms(mgl.Ident4())
	assert.Equal(t, float32(4.0), u.TessLevel)
	assert.False(t, u.Wireframe)
	assert.Equal(t, mgl.Vec3{1, 1, 1}, u.WireframeColor)
}

func TestControllerKeyRoundTrip(t *testing.T) {
	c, _ := loadedController(t, shaderFS())
	require.NoError(t, c.SetDomain(DomainQuads))
	require.NoError(t, c.SetSpacing(SpacingFractionalOdd))
	assert.Equal(t, "quads_fractional_odd_spacing", c.Key().String())
	assert.Equal(t, c.Key(), c.Active().(*fakeProgram).key)

	require.NoError(t, c.SetDomain(DomainIsolines))
	require.NoError(t, c.SetSpacing(SpacingEqual))
	assert.Equal(t, "isolines_equal_spacing", c.Key().String())
	assert.Equal(t, c.Key(), c.Active().(*fakeProgram).key)
}

func TestControllerIntegerSpacingFallsBackToEqual(t *testing.T) {
	c, _ := loadedController(t, shaderFS())
	require.NoError(t, c.SetDomain(DomainQuads))
	require.NoError(t, c.SetSpacing(SpacingInteger))
	assert.Equal(t, "quads_equal_spacing", c.Key().String())
	assert.Equal(t, PipelineKey{DomainQuads, SpacingEqual}, c.Active().(*fakeProgram).key)
}

func TestControllerMissingPipelineKeepsActive(t *testing.T) {
	fsys := shaderFS()
	fsys["tess_eval_isolines_fracodd.glsl"] = &fstest.MapFile{Data: []byte(malformed)}
	c, _ := loadedController(t, fsys)

	require.NoError(t, c.SetDomain(DomainIsolines))
	before := c.Active()
	require.NotNil(t, before)

	err := c.SetSpacing(SpacingFractionalOdd)
	require.ErrorIs(t, err, ErrPipelineUnavailable)
	assert.Contains(t, err.Error(), "isolines_fractional_odd_spacing")
	assert.Same(t, before, c.Active())
	assert.Equal(t, SpacingFractionalOdd, c.Selection().Spacing)
	// patch size tracks the domain even when the program did not change
	assert.Equal(t, int32(4), c.CurrentPatchVertexCount())

	// switching to a loaded combination recovers
	require.NoError(t, c.SetDomain(DomainTriangles))
	assert.Equal(t, PipelineKey{DomainTriangles, SpacingFractionalOdd}, c.Active().(*fakeProgram).key)
}

func TestControllerFirstSelectionMissing(t *testing.T) {
	r := &stubResolver{progs: map[PipelineKey]Program{}}
	c := NewController(r)
	assert.ErrorIs(t, c.Reselect(), ErrPipelineUnavailable)
	assert.Nil(t, c.Active())

	p := &fakeProgram{key: PipelineKey{DomainQuads, SpacingEqual}}
	r.progs[p.key] = p
	require.NoError(t, c.SetDomain(DomainQuads))
	assert.Same(t, Program(p), c.Active())
}

func TestControllerRejectsUnknownDomain(t *testing.T) {
	r := &stubResolver{}
	c := NewController(r)
	assert.ErrorIs(t, c.SetDomain(Domain(9)), ErrUnknownKey)
	assert.Equal(t, DomainTriangles, c.Selection().Domain)
	assert.Empty(t, r.calls)
}

func TestAdjustTessLevelSaturates(t *testing.T) {
	c, _ := loadedController(t, shaderFS())
	require.NoError(t, c.SetDomain(DomainTriangles))
	for i := 0; i < 200; i++ {
		c.AdjustTessLevel(0.5)
	}
	assert.Equal(t, float32(64.0), c.Selection().TessLevel)
	assert.Equal(t, float32(64.0), c.AdjustTessLevel(0))

	for i := 0; i < 500; i++ {
		c.AdjustTessLevel(-0.5)
	}
	assert.Equal(t, float32(1.0), c.Selection().TessLevel)
}

func TestAdjustTessLevelBounded(t *testing.T) {
	c := NewController(&stubResolver{})
	for _, d := range []float32{1e9, -1e9, 63, -0.25, 1000, -64, 0.5, 7.75} {
		got := c.AdjustTessLevel(d)
		assert.GreaterOrEqual(t, got, MinTessLevel)
		assert.LessOrEqual(t, got, MaxTessLevel)
		assert.Equal(t, got, c.AdjustTessLevel(0))
	}
}

func TestAdjustTessLevelIgnoresNaN(t *testing.T) {
	c := NewController(&stubResolver{})
	assert.Equal(t, DefaultTessLevel, c.AdjustTessLevel(float32(math.NaN())))
	for i := 0; i < 10; i++ {
		c.AdjustTessLevel(0.5)
	}
	assert.Equal(t, float32(9.0), c.Selection().TessLevel)

	assert.Equal(t, MaxTessLevel, c.AdjustTessLevel(float32(math.Inf(1))))
	assert.Equal(t, MinTessLevel, c.AdjustTessLevel(float32(math.Inf(-1))))
}

func TestAdjustTessLevelTouchesNothingElse(t *testing.T) {
	r := &stubResolver{}
	c := NewController(r)
	before := c.Selection()
	c.AdjustTessLevel(3)
	after := c.Selection()
	after.TessLevel = before.TessLevel
	assert.Equal(t, before, after)
	assert.Empty(t, r.calls)
}

func TestControllerRejectsUnknownSpacing(t *testing.T) {
	r := &stubResolver{}
	c := NewController(r)
	for _, s := range []Spacing{Spacing(42), Spacing(-1), SpacingInteger + 1} {
		assert.ErrorIs(t, c.SetSpacing(s), ErrUnknownKey)
	}
	assert.Equal(t, SpacingEqual, c.Selection().Spacing)
	assert.Empty(t, r.calls)

	assert.ErrorIs(t, c.SetSpacing(SpacingInteger), ErrPipelineUnavailable)
	assert.Equal(t, SpacingInteger, c.Selection().Spacing)
	assert.Equal(t, []PipelineKey{{DomainTriangles, SpacingEqual}}, r.calls)
}

func TestToggleRenderModeInvolution(t *testing.T) {
	r := &stubResolver{}
	c := NewController(r)
	assert.False(t, c.FrameUniforms(mgl.Ident4()).Wireframe)
	assert.Equal(t, RenderWireframe, c.ToggleRenderMode())
	assert.True(t, c.FrameUniforms(mgl.Ident4()).Wireframe)
	assert.Equal(t, RenderColor, c.ToggleRenderMode())
	assert.False(t, c.FrameUniforms(mgl.Ident4()).Wireframe)
	assert.Empty(t, r.calls)
}

func TestSetWindingDoesNotSelect(t *testing.T) {
	r := &stubResolver{}
	c := NewController(r)
	k := c.Key()
	c.SetWinding(WindingCW)
	assert.Equal(t, WindingCW, c.Selection().Winding)
	assert.Equal(t, k, c.Key())
	assert.Empty(t, r.calls)
}

func TestFrameUniformBindings(t *testing.T) {
	c := NewController(&stubResolver{})
	c.ToggleRenderMode()
	c.AdjustTessLevel(2)
	vp := mgl.Perspective(mgl.DegToRad(45), 16.0/9.0, 0.1, 100).Mul4(mgl.Translate3D(0, -1.5, -5))

	b := c.FrameUniforms(vp).Bindings()
	require.Len(t, b, 4)
	assert.Equal(t, UniformBinding{UniformModelViewProjection, vp}, b[0])
	assert.Equal(t, UniformBinding{UniformTessLevel, float32(6)}, b[1])
	assert.Equal(t, UniformBinding{UniformWireframeMode, true}, b[2])
	assert.Equal(t, UniformBinding{UniformWireframeColor, mgl.Vec3{1, 1, 1}}, b[3])

	p := &fakeProgram{}
	for _, u := range b {
		p.SetUniform(u.Name, u.Value)
	}
	assert.Len(t, p.uniforms, 4)
}

func TestDispatch(t *testing.T) {
	c, _ := loadedController(t, shaderFS())
	require.NoError(t, c.Reselect())

	ch, ok := c.Dispatch(ActionDomainQuads)
	require.True(t, ok)
	assert.Equal(t, "Domain: Quads", ch.Message)
	assert.NoError(t, ch.Err)

	ch, ok = c.Dispatch(ActionSpacingFractionalEven)
	require.True(t, ok)
	assert.Equal(t, "Spacing: Fractional Even", ch.Message)
	assert.Equal(t, "quads_fractional_even_spacing", c.Key().String())

	ch, ok = c.Dispatch(ActionToggleRenderMode)
	require.True(t, ok)
	assert.Equal(t, "Render Mode: Wireframe", ch.Message)

	ch, ok = c.Dispatch(ActionDomainIsolines)
	require.True(t, ok)
	assert.Equal(t, "Domain: Isolines", ch.Message)
	ch, ok = c.Dispatch(ActionSpacingFractionalOdd)
	require.True(t, ok)
	assert.Equal(t, "Spacing: Fractional Odd", ch.Message)
	ch, ok = c.Dispatch(ActionDomainTriangles)
	require.True(t, ok)
	ch, ok = c.Dispatch(ActionSpacingEqual)
	require.True(t, ok)
	assert.Equal(t, "triangles_equal_spacing", c.Key().String())

	_, ok = c.Dispatch(ActionNone)
	assert.False(t, ok)
}

func TestDispatchSurfacesMissingPipeline(t *testing.T) {
	fsys := shaderFS()
	fsys["tess_eval_quads.glsl"] = &fstest.MapFile{Data: []byte(malformed)}
	c, _ := loadedController(t, fsys)
	require.NoError(t, c.Reselect())
	before := c.Active()

	ch, ok := c.Dispatch(ActionDomainQuads)
	require.True(t, ok)
	assert.ErrorIs(t, ch.Err, ErrPipelineUnavailable)
	assert.Same(t, before, c.Active())
}
