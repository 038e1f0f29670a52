package gizmo

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/gizmo/backend"
)

// Gizmos2D draws 2D debug shapes relative to scene objects.
//
// Every method takes the target first and forwards to the target's
// Context2D, creating and attaching it on first use. Calls with a nil
// target are ignored.
type Gizmos2D struct {
	opts options
}

// NewGizmos2D creates a 2D facade.
func NewGizmos2D(opts ...Option) *Gizmos2D {
	return &Gizmos2D{opts: newOptions(opts)}
}

// Context returns the 2D context of t, creating it if t has none.
// Returns nil for a nil target.
func (g *Gizmos2D) Context(t Target) *Context2D {
	if isNil(t) {
		g.opts.log().Debug("gizmo: 2D call without target ignored")
		return nil
	}
	if c := Locate2D(t); c != nil {
		return c
	}
	return newContext2D(t, &g.opts)
}

// BeginColor sets the draw color on t until EndColor.
func (g *Gizmos2D) BeginColor(t Target, c gg.RGBA) {
	if ctx := g.Context(t); ctx != nil {
		ctx.BeginColor(c)
	}
}

// EndColor restores the previous draw color on t.
func (g *Gizmos2D) EndColor(t Target) {
	if ctx := g.Context(t); ctx != nil {
		ctx.EndColor()
	}
}

// BeginLayer sets the layer on t until EndLayer.
func (g *Gizmos2D) BeginLayer(t Target, l backend.Layer) {
	if ctx := g.Context(t); ctx != nil {
		ctx.BeginLayer(l)
	}
}

// EndLayer restores the previous layer on t.
func (g *Gizmos2D) EndLayer(t Target) {
	if ctx := g.Context(t); ctx != nil {
		ctx.EndLayer()
	}
}

// BeginLocalPosition makes subsequent calls on t take target-local points.
func (g *Gizmos2D) BeginLocalPosition(t Target) {
	if ctx := g.Context(t); ctx != nil {
		ctx.BeginLocalPosition()
	}
}

// EndLocalPosition restores the previous coordinate space on t.
func (g *Gizmos2D) EndLocalPosition(t Target) {
	if ctx := g.Context(t); ctx != nil {
		ctx.EndLocalPosition()
	}
}

func (g *Gizmos2D) DrawLine(t Target, p1, p2 mgl64.Vec2) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawLine(p1, p2)
	}
}

func (g *Gizmos2D) DrawLineList(t Target, points []mgl64.Vec2, closed bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawLineList(points, closed)
	}
}

func (g *Gizmos2D) DrawCircle(t Target, center mgl64.Vec2, radius float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawCircle(center, radius)
	}
}

func (g *Gizmos2D) DrawSolidCircle(t Target, center mgl64.Vec2, radius float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSolidCircle(center, radius)
	}
}

func (g *Gizmos2D) DrawRect(t Target, center mgl64.Vec2, width, height float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawRect(center, width, height)
	}
}

func (g *Gizmos2D) DrawSolidRect(t Target, center mgl64.Vec2, width, height float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSolidRect(center, width, height)
	}
}

func (g *Gizmos2D) DrawSolidPolygon(t Target, points []mgl64.Vec2) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSolidPolygon(points)
	}
}

func (g *Gizmos2D) DrawEllipse(t Target, center mgl64.Vec2, radiusX, radiusY float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawEllipse(center, radiusX, radiusY)
	}
}

func (g *Gizmos2D) DrawSolidEllipse(t Target, center mgl64.Vec2, radiusX, radiusY float64) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSolidEllipse(center, radiusX, radiusY)
	}
}

func (g *Gizmos2D) DrawArc(t Target, center mgl64.Vec2, radius, start, end float64, counterClockwise bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawArc(center, radius, start, end, counterClockwise)
	}
}

func (g *Gizmos2D) DrawSolidArc(t Target, center mgl64.Vec2, radius, start, end float64, counterClockwise bool) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSolidArc(center, radius, start, end, counterClockwise)
	}
}

func (g *Gizmos2D) DrawBezier(t Target, p1, p2, p3, p4 mgl64.Vec2) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawBezier(p1, p2, p3, p4)
	}
}

func (g *Gizmos2D) DrawQuadratic(t Target, p1, p2, p3 mgl64.Vec2) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawQuadratic(p1, p2, p3)
	}
}

func (g *Gizmos2D) DrawLabel(t Target, id, text string, pos mgl64.Vec2, fontSize float64, scale mgl64.Vec2) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawLabel(id, text, pos, fontSize, scale)
	}
}

func (g *Gizmos2D) DrawSprite(t Target, id string, img image.Image, pos, scale mgl64.Vec2, tint gg.RGBA) {
	if ctx := g.Context(t); ctx != nil {
		ctx.DrawSprite(id, img, pos, scale, tint)
	}
}
