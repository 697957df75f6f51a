// Package tess holds the tessellation selection state and the catalog of
// compiled pipelines, one per domain x spacing combination.
package tess

import (
	"strings"
)

type Domain int

const (
	DomainTriangles = Domain(iota)
	DomainQuads
	DomainIsolines
	numDomains
)

var domainNames = [numDomains]string{"triangles", "quads", "isolines"}

func (d Domain) String() string {
	if d < 0 || d >= numDomains {
		return "unknown"
	}
	return domainNames[d]
}

// Title is the human readable name used in console output.
func (d Domain) Title() string {
	switch d {
	case DomainQuads:
		return "Quads"
	case DomainIsolines:
		return "Isolines"
	}
	return "Triangles"
}

// PatchVertices returns the number of control points per patch.
func (d Domain) PatchVertices() int32 {
	switch d {
	case DomainQuads, DomainIsolines:
		return 4
	}
	return 3
}

type Spacing int

const (
	SpacingEqual = Spacing(iota)
	SpacingFractionalEven
	SpacingFractionalOdd
	numSpacings
	// SpacingInteger is a legacy alias. It has no shader family of its own
	// and always resolves to the equal spacing pipeline.
	SpacingInteger = numSpacings
)

var spacingNames = [numSpacings]string{
	"equal_spacing",
	"fractional_even_spacing",
	"fractional_odd_spacing",
}

// Canonical folds aliases onto the three spacings that own a pipeline.
func (s Spacing) Canonical() Spacing {
	if s < 0 || s >= numSpacings {
		return SpacingEqual
	}
	return s
}

func (s Spacing) String() string {
	return spacingNames[s.Canonical()]
}

func (s Spacing) Title() string {
	switch s.Canonical() {
	case SpacingFractionalEven:
		return "Fractional Even"
	case SpacingFractionalOdd:
		return "Fractional Odd"
	}
	return "Equal"
}

// Winding is tracked for forward compatibility only. It does not take part
// in pipeline selection.
type Winding int

const (
	WindingCW = Winding(iota)
	WindingCCW
)

func (w Winding) String() string {
	if w == WindingCW {
		return "CW"
	}
	return "CCW"
}

type RenderMode int

const (
	RenderColor = RenderMode(iota)
	RenderWireframe
)

func (m RenderMode) String() string {
	if m == RenderWireframe {
		return "Wireframe"
	}
	return "Color"
}

// PipelineKey identifies one catalog slot. Winding and render mode never
// participate.
type PipelineKey struct {
	Domain  Domain
	Spacing Spacing
}

// DeriveKey returns the catalog name for a domain and spacing pair,
// e.g. "triangles_equal_spacing".
func DeriveKey(d Domain, s Spacing) string {
	return d.String() + "_" + s.String()
}

func (k PipelineKey) String() string {
	return DeriveKey(k.Domain, k.Spacing)
}

func (k PipelineKey) valid() bool {
	return k.Domain >= 0 && k.Domain < numDomains
}

// canonical returns the key with the spacing alias folded.
func (k PipelineKey) canonical() PipelineKey {
	return PipelineKey{k.Domain, k.Spacing.Canonical()}
}

// ParseKey is the inverse of PipelineKey.String.
func ParseKey(name string) (PipelineKey, bool) {
	for d := Domain(0); d < numDomains; d++ {
		rest, ok := strings.CutPrefix(name, d.String()+"_")
		if !ok {
			continue
		}
		for s := Spacing(0); s < numSpacings; s++ {
			if rest == s.String() {
				return PipelineKey{d, s}, true
			}
		}
	}
	return PipelineKey{}, false
}

// AllKeys lists every catalog key in load order.
func AllKeys() []PipelineKey {
	keys := make([]PipelineKey, 0, int(numDomains)*int(numSpacings))
	for d := Domain(0); d < numDomains; d++ {
		for s := Spacing(0); s < numSpacings; s++ {
			keys = append(keys, PipelineKey{d, s})
		}
	}
	return keys
}

type Stage int

const (
	StageVertex = Stage(iota)
	StageTessControl
	StageTessEval
	StageFragment
	numStages
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageTessControl:
		return "tess control"
	case StageTessEval:
		return "tess eval"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

// Stages holds one value per shader stage, indexed by Stage.
type Stages [numStages]string

var controlFiles = [numDomains]string{
	"tess_control.glsl",
	"tess_control_quad.glsl",
	"tess_control_isoline.glsl",
}

var evalSuffixes = [numSpacings]string{"", "_fraceven", "_fracodd"}

// StagePaths returns the asset file names, relative to the shader
// directory, that make up the pipeline for k.
func StagePaths(k PipelineKey) Stages {
	k = k.canonical()
	return Stages{
		StageVertex:      "vertex.glsl",
		StageTessControl: controlFiles[k.Domain],
		StageTessEval:    "tess_eval_" + k.Domain.String() + evalSuffixes[k.Spacing] + ".glsl",
		StageFragment:    "fragment.glsl",
	}
}
