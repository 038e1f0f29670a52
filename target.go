package gizmo

import (
	"reflect"

	"github.com/gogpu/gizmo/backend"
)

// Target is a scene object draw contexts attach to.
//
// Attachments are hidden child resources of the object: they are never
// listed among its components and never persisted.
type Target interface {
	backend.Owner

	// Attachments returns the resources attached to the object.
	Attachments() []any

	// Attach adds a resource to the object.
	Attach(a any)
}

// Flusher is implemented by attachments that render once per frame.
// The frame driver calls Flush on every attachment of every scene object
// after the update phase.
type Flusher interface {
	Flush()
}

// Locate2D returns the 2D draw context attached to t, or nil.
func Locate2D(t Target) *Context2D {
	return locate[*Context2D](t)
}

// Locate3D returns the 3D draw context attached to t, or nil.
func Locate3D(t Target) *Context3D {
	return locate[*Context3D](t)
}

func locate[C any](t Target) C {
	var zero C
	if isNil(t) {
		return zero
	}
	for _, a := range t.Attachments() {
		if c, ok := a.(C); ok {
			return c
		}
	}
	return zero
}

// isNil reports whether t is nil or a typed nil pointer.
func isNil(t Target) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
