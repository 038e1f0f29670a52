// Package backendtest provides recording implementations of the backend
// contracts for tests.
//
// Every handle records what was done to it so tests can assert on pool
// sizes, stroke counts and overlay contents without rendering pixels.
package backendtest

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/gizmo/backend"
)

// Op is one recorded path or paint call on a Graphics handle.
type Op struct {
	Name string
	Args []float64
}

// Graphics records path operations until the next Clear.
type Graphics struct {
	Layer     backend.Layer
	LineWidth float64
	Color     gg.RGBA
	Ops       []Op
	Clears    int
	Released  bool

	strokes []gg.RGBA
	fills   []gg.RGBA
}

var _ backend.Graphics = (*Graphics)(nil)

func (g *Graphics) record(name string, args ...float64) {
	g.Ops = append(g.Ops, Op{Name: name, Args: args})
}

func (g *Graphics) SetLayer(l backend.Layer) { g.Layer = l }
func (g *Graphics) SetLineWidth(w float64)   { g.LineWidth = w }
func (g *Graphics) SetColor(c gg.RGBA)       { g.Color = c }
func (g *Graphics) MoveTo(x, y float64)      { g.record("MoveTo", x, y) }
func (g *Graphics) LineTo(x, y float64)      { g.record("LineTo", x, y) }
func (g *Graphics) ClosePath()               { g.record("ClosePath") }
func (g *Graphics) Circle(cx, cy, r float64) { g.record("Circle", cx, cy, r) }
func (g *Graphics) Rect(x, y, w, h float64)  { g.record("Rect", x, y, w, h) }
func (g *Graphics) Release()                 { g.Released = true }
func (g *Graphics) QuadraticTo(cx, cy, x, y float64) {
	g.record("QuadraticTo", cx, cy, x, y)
}

func (g *Graphics) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	g.record("CubicTo", c1x, c1y, c2x, c2y, x, y)
}

func (g *Graphics) Arc(cx, cy, r, start, end float64, counterClockwise bool) {
	ccw := 0.0
	if counterClockwise {
		ccw = 1
	}
	g.record("Arc", cx, cy, r, start, end, ccw)
}

func (g *Graphics) Ellipse(cx, cy, rx, ry float64) {
	g.record("Ellipse", cx, cy, rx, ry)
}

func (g *Graphics) Stroke() {
	g.record("Stroke")
	g.strokes = append(g.strokes, g.Color)
}

func (g *Graphics) Fill() {
	g.record("Fill")
	g.fills = append(g.fills, g.Color)
}

func (g *Graphics) Clear() {
	g.Clears++
	g.Ops = g.Ops[:0]
	g.strokes = g.strokes[:0]
	g.fills = g.fills[:0]
}

// Strokes returns the number of Stroke calls since the last Clear.
func (g *Graphics) Strokes() int { return len(g.strokes) }

// Fills returns the number of Fill calls since the last Clear.
func (g *Graphics) Fills() int { return len(g.fills) }

// Count returns how many recorded operations are named name.
func (g *Graphics) Count(name string) int {
	n := 0
	for _, op := range g.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// First returns the first recorded operation named name.
func (g *Graphics) First(name string) (Op, bool) {
	for _, op := range g.Ops {
		if op.Name == name {
			return op, true
		}
	}
	return Op{}, false
}

type overlay struct {
	Layer    backend.Layer
	Color    gg.RGBA
	ScaleX   float64
	ScaleY   float64
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Released bool
}

func (o *overlay) SetLayer(l backend.Layer) { o.Layer = l }
func (o *overlay) SetColor(c gg.RGBA)       { o.Color = c }
func (o *overlay) SetScale(sx, sy float64)  { o.ScaleX, o.ScaleY = sx, sy }
func (o *overlay) SetPosition(p mgl64.Vec3) { o.Position = p }
func (o *overlay) SetRotation(q mgl64.Quat) { o.Rotation = q }
func (o *overlay) Release()                 { o.Released = true }

// Label records the last value of every property.
type Label struct {
	overlay
	Text     string
	FontSize float64
	// Texts lists every SetText call in order.
	Texts []string
}

var _ backend.Label = (*Label)(nil)

func (l *Label) SetText(s string) {
	l.Text = s
	l.Texts = append(l.Texts, s)
}

func (l *Label) SetFontSize(size float64) { l.FontSize = size }

// Sprite records the last value of every property.
type Sprite struct {
	overlay
	Image image.Image
}

var _ backend.Sprite = (*Sprite)(nil)

func (s *Sprite) SetImage(img image.Image) { s.Image = img }

// Surface records every handle it creates.
type Surface struct {
	Owner    backend.Owner
	Graphics []*Graphics
	Labels   []*Label
	Sprites  []*Sprite
	Released bool
}

var _ backend.Surface = (*Surface)(nil)

func (s *Surface) NewGraphics() backend.Graphics {
	g := &Graphics{}
	s.Graphics = append(s.Graphics, g)
	return g
}

func (s *Surface) NewLabel() backend.Label {
	l := &Label{}
	s.Labels = append(s.Labels, l)
	return l
}

func (s *Surface) NewSprite() backend.Sprite {
	sp := &Sprite{}
	s.Sprites = append(s.Sprites, sp)
	return sp
}

// Release marks the surface and all of its handles released.
func (s *Surface) Release() {
	s.Released = true
	for _, g := range s.Graphics {
		g.Release()
	}
	for _, l := range s.Labels {
		l.Release()
	}
	for _, sp := range s.Sprites {
		sp.Release()
	}
}

// Strokes returns the number of strokes across all graphics handles.
func (s *Surface) Strokes() int {
	n := 0
	for _, g := range s.Graphics {
		n += g.Strokes()
	}
	return n
}

// Fills returns the number of fills across all graphics handles.
func (s *Surface) Fills() int {
	n := 0
	for _, g := range s.Graphics {
		n += g.Fills()
	}
	return n
}

// Surfaces is a backend.SurfaceFactory that records created surfaces.
// If Err is set, NewSurface fails with it.
type Surfaces struct {
	Created []*Surface
	Err     error
}

var _ backend.SurfaceFactory = (*Surfaces)(nil)

func (f *Surfaces) NewSurface(owner backend.Owner) (backend.Surface, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	s := &Surface{Owner: owner}
	f.Created = append(f.Created, s)
	return s, nil
}

// Last returns the most recently created surface, or nil.
func (f *Surfaces) Last() *Surface {
	if len(f.Created) == 0 {
		return nil
	}
	return f.Created[len(f.Created)-1]
}
