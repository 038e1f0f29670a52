package driver

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/gogpu/gizmo"
	"github.com/gogpu/gizmo/backend"
	"github.com/gogpu/gizmo/scene"
)

// SelectionSource supplies the ids of the nodes selected in the host UI.
type SelectionSource interface {
	Selected() []string
}

// FocusSource is optionally implemented by a SelectionSource that also
// tracks editor focus. A focused node counts as selected.
type FocusSource interface {
	Focused(id string) bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSelection overrides the selection of the scene passed to
// OnSceneReady.
func WithSelection(s SelectionSource) Option {
	return func(d *Driver) {
		d.selection = s
	}
}

// WithBackend makes LateUpdate render b after flushing.
func WithBackend(b backend.Backend) Option {
	return func(d *Driver) {
		d.backend = b
	}
}

// WithLogger sets the driver logger instead of gizmo.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// Driver ticks the debug drawing of one scene.
//
// Driver is not safe for concurrent use; call it from the frame loop.
type Driver struct {
	registry  *Registry
	scene     *scene.Scene
	selection SelectionSource
	backend   backend.Backend
	log       *slog.Logger
	frame     uint64
	selected  map[string]bool
}

// New creates a driver calling the component types of reg.
func New(reg *Registry, opts ...Option) *Driver {
	d := &Driver{registry: reg, selected: make(map[string]bool)}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = gizmo.Logger()
	}
	return d
}

// OnSceneReady makes s the scene the driver ticks. Without WithSelection
// the scene's own selection is used.
func (d *Driver) OnSceneReady(s *scene.Scene) {
	d.scene = s
	if s == nil {
		d.log.Debug("driver: scene ready without a scene")
		return
	}
	d.log.Debug("driver: scene ready", "root", s.Root().ID())
}

// Scene returns the current scene, or nil.
func (d *Driver) Scene() *scene.Scene { return d.scene }

// Frame returns the number of completed ticks.
func (d *Driver) Frame() uint64 { return d.frame }

func (d *Driver) selectionSource() SelectionSource {
	if d.selection != nil {
		return d.selection
	}
	if d.scene != nil {
		return d.scene.Selection()
	}
	return nil
}

// BeforeUpdate calls the draw callbacks of every registered component.
// It does nothing until a scene is ready.
func (d *Driver) BeforeUpdate() {
	if d.scene == nil {
		d.log.Debug("driver: no scene, tick skipped")
		return
	}
	if d.registry == nil || d.registry.Len() == 0 {
		return
	}

	clear(d.selected)
	src := d.selectionSource()
	var focus FocusSource
	if src != nil {
		for _, id := range src.Selected() {
			d.selected[id] = true
		}
		focus, _ = src.(FocusSource)
	}

	for _, t := range d.registry.types {
		d.scene.Walk(func(n *scene.Node) bool {
			d.call(n, nil, func() { d.visit(n, t, focus) })
			return true
		})
	}
}

// visit calls the callbacks of the components of n whose type is t. It
// stops early when a callback destroys n.
func (d *Driver) visit(n *scene.Node, t reflect.Type, focus FocusSource) {
	for _, c := range slices.Clone(n.Components()) {
		if n.Destroyed() {
			return
		}
		if reflect.TypeOf(c) != t {
			continue
		}
		if g, ok := c.(GizmoDrawer); ok {
			d.call(n, c, g.DrawGizmos)
		}
		if g, ok := c.(SelectedGizmoDrawer); ok && !n.Destroyed() {
			if d.selected[n.ID()] || (focus != nil && focus.Focused(n.ID())) {
				d.call(n, c, g.DrawGizmosSelected)
			}
		}
	}
}

// call runs fn, logging instead of propagating a panic.
func (d *Driver) call(n *scene.Node, component any, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("driver: component panicked while drawing",
				"node", n.ID(),
				"component", fmt.Sprintf("%T", component),
				"panic", r)
		}
	}()
	fn()
}

// LateUpdate flushes every draw context in the scene and renders the
// backend. It returns the render error, if any.
func (d *Driver) LateUpdate() error {
	if d.scene == nil {
		return nil
	}
	d.scene.Walk(func(n *scene.Node) bool {
		for _, a := range n.Attachments() {
			if f, ok := a.(gizmo.Flusher); ok {
				d.call(n, a, f.Flush)
			}
		}
		return true
	})
	if d.backend == nil {
		return nil
	}
	if err := d.backend.Render(); err != nil {
		return fmt.Errorf("driver: render frame %d: %w", d.frame, err)
	}
	return nil
}

// Tick runs BeforeUpdate and LateUpdate once.
func (d *Driver) Tick() error {
	d.BeforeUpdate()
	err := d.LateUpdate()
	if d.scene != nil {
		d.frame++
	}
	return err
}
