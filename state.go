package gizmo

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gizmo/backend"
)

// Space selects how the points of a draw call are interpreted.
type Space uint8

const (
	// WorldSpace points are in world coordinates. This is the default.
	WorldSpace Space = iota
	// LocalSpace points are relative to the target.
	LocalSpace
)

// String returns the string representation of a Space.
func (s Space) String() string {
	if s == LocalSpace {
		return "local"
	}
	return "world"
}

// State is the scoped state a draw call captures when it is issued.
type State struct {
	Color gg.RGBA
	Layer backend.Layer
	Space Space
}

// scope holds the current State together with the values each Begin call
// replaced, so that End restores what was active before.
//
// scope is reset to its defaults once per frame; Begin calls without a
// matching End therefore last until the end of the frame.
type scope struct {
	defaults State
	cur      State
	colors   []gg.RGBA
	layers   []backend.Layer
	spaces   []Space
}

func newScope(defaults State) scope {
	return scope{defaults: defaults, cur: defaults}
}

func (s *scope) beginColor(c gg.RGBA) {
	s.colors = append(s.colors, s.cur.Color)
	s.cur.Color = c
}

func (s *scope) endColor() {
	s.cur.Color, s.colors = pop(s.colors, s.defaults.Color)
}

func (s *scope) beginLayer(l backend.Layer) {
	s.layers = append(s.layers, s.cur.Layer)
	s.cur.Layer = l
}

func (s *scope) endLayer() {
	s.cur.Layer, s.layers = pop(s.layers, s.defaults.Layer)
}

func (s *scope) beginSpace(sp Space) {
	s.spaces = append(s.spaces, s.cur.Space)
	s.cur.Space = sp
}

func (s *scope) endSpace() {
	s.cur.Space, s.spaces = pop(s.spaces, s.defaults.Space)
}

// reset restores the defaults and empties every stack.
func (s *scope) reset() {
	s.cur = s.defaults
	s.colors = s.colors[:0]
	s.layers = s.layers[:0]
	s.spaces = s.spaces[:0]
}

// pop returns the top of stack, or def when the stack is empty.
func pop[T any](stack []T, def T) (T, []T) {
	if len(stack) == 0 {
		return def, stack
	}
	return stack[len(stack)-1], stack[:len(stack)-1]
}
