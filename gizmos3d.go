package gizmo

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/gizmo/shape"
)

// Gizmos3D draws 3D debug shapes relative to scene objects.
//
// Every method takes the target first and forwards to the target's
// Context3D, creating and attaching it on first use. Calls with a nil
// target are ignored.
type Gizmos3D struct {
	opts options
}

// NewGizmos3D creates a 3D facade.
func NewGizmos3D(opts ...Option) *Gizmos3D {
	return &Gizmos3D{opts: newOptions(opts)}
}

// Context returns the 3D context of t, creating it if t has none.
// Returns nil for a nil target.
func (g *Gizmos3D) Context(t Target) *Context3D {
	if isNil(t) {
		g.opts.log().Debug("gizmo: 3D call without target ignored")
		return nil
	}
	if c := Locate3D(t); c != nil {
		return c
	}
	return newContext3D(t, &g.opts)
}

// BeginColor sets the draw color on t until EndColor.
func (g *Gizmos3D) BeginColor(t Target, c gg.RGBA) {
	if ctx := g.Context(t); ctx != nil {
		ctx.BeginColor(c)
	}
}

// EndColor restores the previous draw color on t.
func (g *Gizmos3D) EndColor(t Target) {
	if ctx := g.Context(t); ctx != nil {
		ctx.EndColor()
	}
}

// BeginLocalPosition makes subsequent calls on t take target-local points.
func (g *Gizmos3D) BeginLocalPosition(t Target) {
	if ctx := g.Context(t); ctx != nil {
		ctx.BeginLocalPosition()
	}
}

// EndLocalPosition restores the previous coordinate space on t.
func (g *Gizmos3D) EndLocalPosition(t Target) {
	if ctx := g.Context(t); ctx != nil {
		ctx.EndLocalPosition()
	}
}

// SetDepthTest sets whether shapes drawn on t are occluded by nearer
// geometry.
func (g *Gizmos3D) SetDepthTest(t Target, on bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.SetDepthTest(on)
	}
}

func (g *Gizmos3D) DrawLine(t Target, p1, p2 mgl64.Vec3) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawLine(p1, p2)
	}
}

func (g *Gizmos3D) DrawLineList(t Target, points []mgl64.Vec3, closed bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawLineList(points, closed)
	}
}

func (g *Gizmos3D) DrawDashLine(t Target, p1, p2 mgl64.Vec3) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawDashLine(p1, p2)
	}
}

func (g *Gizmos3D) DrawDashLineList(t Target, points []mgl64.Vec3, closed bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawDashLineList(points, closed)
	}
}

func (g *Gizmos3D) DrawCircle(t Target, center mgl64.Vec3, radius float64, segments int, rot mgl64.Vec3) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawCircle(center, radius, segments, rot)
	}
}

func (g *Gizmos3D) DrawDisc(t Target, center mgl64.Vec3, radius float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawDisc(center, radius, segments, rot, wireframe)
	}
}

func (g *Gizmos3D) DrawQuad(t Target, p1, p2, p3, p4 mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawQuad(p1, p2, p3, p4, wireframe)
	}
}

func (g *Gizmos3D) DrawSphere(t Target, center mgl64.Vec3, radius float64, segmentsX, segmentsY int, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSphere(center, radius, segmentsX, segmentsY, wireframe)
	}
}

func (g *Gizmos3D) DrawArc(t Target, center mgl64.Vec3, radius, start, end float64, segments int, rot mgl64.Vec3) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawArc(center, radius, start, end, segments, rot)
	}
}

func (g *Gizmos3D) DrawSolidArc(t Target, center mgl64.Vec3, radius, start, end float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSolidArc(center, radius, start, end, segments, rot, wireframe)
	}
}

func (g *Gizmos3D) DrawPolygon(t Target, center mgl64.Vec3, radius float64, sides int, rot mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawPolygon(center, radius, sides, rot, wireframe)
	}
}

func (g *Gizmos3D) DrawOctahedron(t Target, center mgl64.Vec3, radius float64, rot mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawOctahedron(center, radius, rot, wireframe)
	}
}

func (g *Gizmos3D) DrawCross(t Target, center mgl64.Vec3, size float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawCross(center, size)
	}
}

func (g *Gizmos3D) DrawCapsule(t Target, base mgl64.Vec3, radius, height float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawCapsule(base, radius, height, segments, rot, wireframe)
	}
}

func (g *Gizmos3D) DrawBox(t Target, center, halfExtents, rot mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawBox(center, halfExtents, rot, wireframe)
	}
}

func (g *Gizmos3D) DrawCylinder(t Target, base mgl64.Vec3, radius, height float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawCylinder(base, radius, height, segments, rot, wireframe)
	}
}

func (g *Gizmos3D) DrawCone(t Target, base mgl64.Vec3, radius, height float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawCone(base, radius, height, segments, rot, wireframe)
	}
}

func (g *Gizmos3D) DrawBezier(t Target, p1, p2, p3, p4, rot mgl64.Vec3) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawBezier(p1, p2, p3, p4, rot)
	}
}

func (g *Gizmos3D) DrawSpline(t Target, knots []mgl64.Vec3, mode shape.SplineMode, knotSize float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSpline(knots, mode, knotSize)
	}
}

func (g *Gizmos3D) DrawLabel(t Target, id, text string, pos mgl64.Vec3, fontSize, scale float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawLabel(id, text, pos, fontSize, scale)
	}
}

func (g *Gizmos3D) DrawSprite(t Target, id string, img image.Image, pos mgl64.Vec3, scale mgl64.Vec2, tint gg.RGBA) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSprite(id, img, pos, scale, tint)
	}
}
