package driver

import (
	"reflect"
	"slices"
)

// GizmoDrawer is implemented by components that draw every frame.
type GizmoDrawer interface {
	DrawGizmos()
}

// SelectedGizmoDrawer is implemented by components that draw while their
// node is selected or focused.
type SelectedGizmoDrawer interface {
	DrawGizmosSelected()
}

// Drawable is implemented by components with both callbacks.
type Drawable interface {
	GizmoDrawer
	SelectedGizmoDrawer
}

// Registry lists the component types the Driver calls. Types are matched
// exactly: registering *T does not match T.
//
// Registration is append-only. Registry is not safe for concurrent use;
// register types before the first tick.
type Registry struct {
	types []reflect.Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds the dynamic type of component, which may be a typed nil
// pointer. It returns false if the type is already registered or
// implements neither GizmoDrawer nor SelectedGizmoDrawer.
func (r *Registry) Register(component any) bool {
	if component == nil {
		return false
	}
	switch component.(type) {
	case GizmoDrawer, SelectedGizmoDrawer:
	default:
		return false
	}
	t := reflect.TypeOf(component)
	if slices.Contains(r.types, t) {
		return false
	}
	r.types = append(r.types, t)
	return true
}

// Registered reports whether the dynamic type of component is registered.
func (r *Registry) Registered(component any) bool {
	return component != nil && slices.Contains(r.types, reflect.TypeOf(component))
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []reflect.Type {
	return slices.Clone(r.types)
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.types) }
