package raster

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/gizmo/backend"
)

// paint is one finished path with the pen it was finished with.
type paint struct {
	path  *gg.Path
	fill  bool
	color gg.RGBA
	width float64
}

// graphics retains finished paths until Clear.
type graphics struct {
	surface  *surface
	layer    backend.Layer
	width    float64
	color    gg.RGBA
	path     *gg.Path
	paints   []paint
	released bool
}

var _ backend.Graphics = (*graphics)(nil)

func newGraphics(s *surface) *graphics {
	return &graphics{
		surface: s,
		layer:   backend.LayerDefault,
		width:   1,
		color:   gg.Black,
		path:    gg.NewPath(),
	}
}

func (g *graphics) SetLayer(l backend.Layer) { g.layer = l }
func (g *graphics) SetLineWidth(w float64)   { g.width = w }
func (g *graphics) SetColor(c gg.RGBA)       { g.color = c }
func (g *graphics) MoveTo(x, y float64)      { g.path.MoveTo(x, y) }
func (g *graphics) LineTo(x, y float64)      { g.path.LineTo(x, y) }
func (g *graphics) ClosePath()               { g.path.Close() }
func (g *graphics) Circle(cx, cy, r float64) { g.path.Circle(cx, cy, r) }
func (g *graphics) Rect(x, y, w, h float64)  { g.path.Rectangle(x, y, w, h) }
func (g *graphics) Release()                 { g.released = true }

func (g *graphics) QuadraticTo(cx, cy, x, y float64) {
	g.path.QuadraticTo(cx, cy, x, y)
}

func (g *graphics) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	g.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (g *graphics) Ellipse(cx, cy, rx, ry float64) {
	g.path.Ellipse(cx, cy, rx, ry)
}

// Arc continues the current subpath with a line to the arc start, or
// starts a new one.
func (g *graphics) Arc(cx, cy, r, start, end float64, counterClockwise bool) {
	if !counterClockwise {
		// A clockwise sweep covers the same points as the
		// counter-clockwise sweep from end to start.
		start, end = end, start
	}
	x0, y0 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	if g.path.HasCurrentPoint() {
		g.path.LineTo(x0, y0)
	} else {
		g.path.MoveTo(x0, y0)
	}
	g.path.Arc(cx, cy, r, start, end)
}

func (g *graphics) Stroke() { g.finish(false) }
func (g *graphics) Fill()   { g.finish(true) }

func (g *graphics) finish(fill bool) {
	if g.path.NumVerbs() == 0 {
		return
	}
	g.paints = append(g.paints, paint{path: g.path, fill: fill, color: g.color, width: g.width})
	g.path = gg.NewPath()
}

func (g *graphics) Clear() {
	clear(g.paints)
	g.paints = g.paints[:0]
	g.path.Clear()
}

func (g *graphics) render(dc *gg.Context, m gg.Matrix) error {
	for _, p := range g.paints {
		dc.SetColor(p.color)
		path := p.path.Transform(m)
		if p.fill {
			if err := dc.FillPath(path); err != nil {
				return err
			}
			continue
		}
		dc.SetLineWidth(p.width)
		if err := dc.StrokePath(path); err != nil {
			return err
		}
	}
	return nil
}
