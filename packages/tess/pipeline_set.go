package tess

import (
	"errors"
	"io/fs"
)

// Program is a linked GPU pipeline. Implementations own GPU state and must
// only be touched from the thread holding the rendering context.
type Program interface {
	Use()
	SetUniform(name string, value any)
	Release()
}

// Compiler turns the four stage sources of one key into a Program.
// Stage errors should be returned as *StageError so the failing stage is
// reported.
type Compiler interface {
	Compile(key PipelineKey, src Stages) (Program, error)
}

// StageError is returned by a Compiler when a single stage fails to
// compile. Log carries the driver info log.
type StageError struct {
	Stage Stage
	Log   string
}

func (e *StageError) Error() string {
	return e.Stage.String() + " shader compilation error: " + e.Log
}

// Resolver is the lookup side of the catalog, as used by the Controller.
type Resolver interface {
	Resolve(key PipelineKey) (Program, bool)
}

type slotState int

const (
	slotUnavailable = slotState(iota)
	slotReady
	slotReleased
)

type slot struct {
	state slotState
	prog  Program
	err   error
}

// PipelineSet owns one slot per domain x spacing combination.
type PipelineSet struct {
	fsys     fs.FS
	compiler Compiler
	slots    [numDomains][numSpacings]slot
	loaded   bool
}

func NewPipelineSet(fsys fs.FS, c Compiler) *PipelineSet {
	return &PipelineSet{fsys: fsys, compiler: c}
}

// LoadAll attempts all nine combinations. A failing combination leaves its
// slot unavailable and loading carries on with the rest. The returned error
// joins every *LoadError, or is nil when the catalog is complete.
// The catalog is built once; later calls return ErrAlreadyLoaded and leave
// every slot untouched.
func (ps *PipelineSet) LoadAll() error {
	if ps.loaded {
		return ErrAlreadyLoaded
	}
	ps.loaded = true
	var errs []error
	for _, k := range AllKeys() {
		s := &ps.slots[k.Domain][k.Spacing]
		prog, err := ps.load(k)
		if err != nil {
			*s = slot{state: slotUnavailable, err: err}
			errs = append(errs, err)
			continue
		}
		*s = slot{state: slotReady, prog: prog}
	}
	return errors.Join(errs...)
}

func (ps *PipelineSet) load(k PipelineKey) (Program, error) {
	paths := StagePaths(k)
	var src Stages
	for st, p := range paths {
		b, err := fs.ReadFile(ps.fsys, p)
		if err != nil {
			return nil, &LoadError{Key: k, Stage: Stage(st), Path: p, Err: err}
		}
		src[st] = string(b)
	}
	prog, err := ps.compiler.Compile(k, src)
	if err != nil {
		le := &LoadError{Key: k, Err: err}
		var se *StageError
		if errors.As(err, &se) {
			le.Stage, le.Path = se.Stage, paths[se.Stage]
		}
		return nil, le
	}
	if prog == nil {
		return nil, &LoadError{Key: k, Err: ErrPipelineUnavailable}
	}
	return prog, nil
}

// Resolve is a pure lookup. It never compiles.
func (ps *PipelineSet) Resolve(key PipelineKey) (Program, bool) {
	if !key.valid() {
		return nil, false
	}
	key = key.canonical()
	s := &ps.slots[key.Domain][key.Spacing]
	if s.state != slotReady {
		return nil, false
	}
	return s.prog, true
}

// Lookup resolves a key by its catalog name.
func (ps *PipelineSet) Lookup(name string) (Program, bool) {
	k, ok := ParseKey(name)
	if !ok {
		return nil, false
	}
	return ps.Resolve(k)
}

// Err returns the load failure recorded for key, if any.
func (ps *PipelineSet) Err(key PipelineKey) error {
	if !key.valid() {
		return ErrUnknownKey
	}
	key = key.canonical()
	return ps.slots[key.Domain][key.Spacing].err
}

// Available lists the keys that currently resolve, in load order.
func (ps *PipelineSet) Available() []PipelineKey {
	var keys []PipelineKey
	for _, k := range AllKeys() {
		if ps.slots[k.Domain][k.Spacing].state == slotReady {
			keys = append(keys, k)
		}
	}
	return keys
}

// ReleaseAll frees every compiled program exactly once. Slots that never
// compiled are skipped.
func (ps *PipelineSet) ReleaseAll() {
	for d := range ps.slots {
		for sp := range ps.slots[d] {
			s := &ps.slots[d][sp]
			if s.state != slotReady {
				continue
			}
			s.prog.Release()
			*s = slot{state: slotReleased}
		}
	}
}
