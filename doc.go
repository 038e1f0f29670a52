// Package gizmo provides immediate-mode debug drawing for scene graphs.
//
// # Overview
//
// Callers issue draw requests (lines, circles, capsules, labels, sprites)
// against a scene object every frame. The requests are buffered on a draw
// context attached to that object and rendered once, on the next flush;
// nothing survives into the following frame unless it is drawn again.
//
// # Quick Start
//
//	g2 := gizmo.NewGizmos2D(gizmo.WithSurfaces(canvas))
//	g3 := gizmo.NewGizmos3D(gizmo.WithViewport(viewport))
//
//	// Inside a component's DrawGizmos callback:
//	g2.BeginColor(node, gg.Red)
//	g2.DrawCircle(node, mgl64.Vec2{0, 0}, 10)
//	g2.EndColor(node)
//
//	g3.DrawCapsule(node, mgl64.Vec3{}, 0.5, 2, 0, mgl64.Vec3{}, true)
//
// The frame driver (package driver) calls Flush on every context after the
// update phase.
//
// # Draw Contexts
//
// A target owns at most one Context2D and one Context3D. Both are created
// on the first draw call through a facade and attached to the target as a
// hidden resource; later calls find them again with Locate2D and Locate3D.
//
// Every draw call captures the current color, layer and coordinate space
// when it is issued. Begin/End pairs change that state for the calls in
// between; the state returns to the configured defaults at every flush.
//
// 2D points are resolved into the target's local frame. 3D points are
// resolved into world space, after the shape's own rotation.
//
// # Resources
//
// 2D geometry is drawn through pooled graphics handles, one per distinct
// color and layer. Labels and sprites are pooled by caller id. Handles
// live as long as the context; only their content changes per frame.
//
// # Backends
//
// Rendering is delegated to the interfaces of package backend. Without a
// surface factory or a viewport with a geometry renderer a context logs a
// single warning and ignores all draw calls.
//
// # Logging
//
// gizmo is silent by default. Use SetLogger to route its slog output.
package gizmo
