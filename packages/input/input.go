// Package input maps raw key events onto tessellation controller actions.
// Key codes are the windowing layer's own; only their identity matters here.
package input

import (
	"github.com/jdonald/tessellation-demo/packages/tess"
)

type Key int

// KeyAction follows GLFW numbering.
type KeyAction int

const (
	Release = KeyAction(iota)
	Press
	Repeat
)

// Queue records key presses between two update ticks. Release and Repeat
// events are dropped, so a held key is queued once.
type Queue struct {
	pressed []Key
}

func (q *Queue) Record(k Key, a KeyAction) {
	if a == Press {
		q.pressed = append(q.pressed, k)
	}
}

// Drain returns the queued presses in arrival order and empties the queue.
func (q *Queue) Drain() []Key {
	p := q.pressed
	q.pressed = nil
	return p
}

type Bindings struct {
	Actions map[Key]tess.Action
	// Raise and Lower adjust the tess level by Step on every tick they are
	// held down.
	Raise []Key
	Lower []Key
	Step  float32
}

// Tick is the outcome of one update tick.
type Tick struct {
	Changes      []tess.Change
	Unbound      []Key
	LevelChanged bool
	Level        float32
}

func anyDown(down func(Key) bool, keys []Key) bool {
	for _, k := range keys {
		if down(k) {
			return true
		}
	}
	return false
}

// Apply dispatches each press once, then applies held level keys once.
// Presses without an action come back in Unbound for the caller.
func (b *Bindings) Apply(c *tess.Controller, pressed []Key, down func(Key) bool) Tick {
	var t Tick
	for _, k := range pressed {
		act, ok := b.Actions[k]
		if !ok {
			t.Unbound = append(t.Unbound, k)
			continue
		}
		if ch, ok := c.Dispatch(act); ok {
			t.Changes = append(t.Changes, ch)
		}
	}
	if anyDown(down, b.Raise) {
		t.Level = c.AdjustTessLevel(b.Step)
		t.LevelChanged = true
	}
	if anyDown(down, b.Lower) {
		t.Level = c.AdjustTessLevel(-b.Step)
		t.LevelChanged = true
	}
	return t
}
