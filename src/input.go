package main

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/jdonald/tessellation-demo/packages/camera"
	"github.com/jdonald/tessellation-demo/packages/input"
	"github.com/jdonald/tessellation-demo/packages/tess"
)

var keyBindings = &input.Bindings{
	Actions: map[input.Key]tess.Action{
		input.Key(glfw.Key1): tess.ActionDomainTriangles,
		input.Key(glfw.Key2): tess.ActionDomainQuads,
		input.Key(glfw.Key3): tess.ActionDomainIsolines,
		input.Key(glfw.KeyQ): tess.ActionSpacingEqual,
		input.Key(glfw.KeyE): tess.ActionSpacingFractionalEven,
		input.Key(glfw.KeyR): tess.ActionSpacingFractionalOdd,
		input.Key(glfw.KeyM): tess.ActionToggleRenderMode,
	},
	Raise: []input.Key{input.Key(glfw.KeyEqual), input.Key(glfw.KeyKPAdd)},
	Lower: []input.Key{input.Key(glfw.KeyMinus), input.Key(glfw.KeyKPSubtract)},
	Step:  0.5,
}

var moveKeys = [...]struct {
	key glfw.Key
	dir camera.Movement
}{
	{glfw.KeyW, camera.Forward},
	{glfw.KeyS, camera.Backward},
	{glfw.KeyA, camera.Left},
	{glfw.KeyD, camera.Right},
	{glfw.KeySpace, camera.Up},
	{glfw.KeyLeftShift, camera.Down},
}

// Input collects GLFW callback events between PollEvents calls.
type Input struct {
	keys      input.Queue
	scroll    float64
	captured  bool
	firstMove bool
	lastX     float64
	lastY     float64
}

func newInput(w *glfw.Window) *Input {
	in := &Input{}
	w.SetKeyCallback(in.keyEvent)
	w.SetScrollCallback(in.scrollEvent)
	in.setCaptured(w, true)
	return in
}

func (in *Input) keyEvent(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	in.keys.Record(input.Key(key), input.KeyAction(action))
}

func (in *Input) scrollEvent(_ *glfw.Window, _, yoff float64) {
	in.scroll += yoff
}

func (in *Input) setCaptured(w *glfw.Window, captured bool) {
	in.captured = captured
	in.firstMove = true
	if captured {
		w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// update applies one tick of input to the app state.
func (a *App) update(dt float32) {
	in, w := a.input, a.window

	tick := keyBindings.Apply(a.ctrl, in.keys.Drain(), func(k input.Key) bool {
		return w.GetKey(glfw.Key(k)) == glfw.Press
	})
	for _, ch := range tick.Changes {
		if ch.Err != nil {
			slog.Warn("Shader not found, keeping previous pipeline", "key", a.ctrl.Key().String(), "err", ch.Err)
		}
		slog.Info(ch.Message)
	}
	if tick.LevelChanged {
		slog.Info("Tess Level", "level", tick.Level)
	}
	for _, k := range tick.Unbound {
		switch glfw.Key(k) {
		case glfw.KeyEscape:
			in.setCaptured(w, !in.captured)
		case glfw.KeyH:
			a.toggleHelp()
		}
	}

	if in.scroll != 0 {
		a.cam.ProcessMouseScroll(float32(in.scroll))
		in.scroll = 0
	}

	if !in.captured {
		return
	}
	for _, m := range moveKeys {
		if w.GetKey(m.key) == glfw.Press {
			a.cam.Move(m.dir, dt)
		}
	}
	x, y := w.GetCursorPos()
	if in.firstMove {
		in.lastX, in.lastY = x, y
		in.firstMove = false
		return
	}
	dx, dy := x-in.lastX, y-in.lastY
	in.lastX, in.lastY = x, y
	a.cam.ProcessMouseMovement(float32(dx), float32(-dy))
}
