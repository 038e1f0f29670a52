// Package shape tessellates 3D debug primitives into line lists and
// triangle lists.
//
// Builders append vertices to a caller-owned slice so a draw context can
// reuse one scratch buffer for every call of a frame:
//
//	b := shape.DefaultBuilder()
//	scratch = b.Sphere(scratch[:0], center, 1, true)
//	shape.Transform(scratch, shape.Rotation(center, mgl64.Vec3{0, 45, 0}))
//
// Line lists hold two vertices per segment, triangle lists three per
// triangle. The world is Y-up; planar primitives (circles, arcs, discs,
// polygons) lie in the XZ plane and their angles are measured in degrees
// from +X toward +Z.
package shape
