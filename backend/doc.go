// Package backend defines the contracts between debug-draw contexts and the
// rendering engine that displays their output.
//
// A draw context never talks to a concrete renderer. It asks a
// [SurfaceFactory] for a [Surface] attached to its target and creates pooled
// [Graphics], [Label] and [Sprite] handles from it. Volumetric contexts
// additionally submit tessellated [Batch] values to the [GeometryRenderer] of
// a [Viewport].
//
// # Backend Registration
//
// Concrete engines register a [Factory] from an init function, following
// the database/sql driver pattern:
//
//	import _ "github.com/gogpu/gizmo/backend/raster"
//
//	b, err := backend.New("raster", 800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Release()
//
// # Layers
//
// Every handle carries a [Layer] bitmask. A camera or canvas renders a
// handle only when its visibility mask contains the handle's layer.
//
// # Available Backends
//
//   - "raster": software rendering on github.com/gogpu/gg (backend/raster)
package backend
