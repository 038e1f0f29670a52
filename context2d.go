package gizmo

import (
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/gizmo/backend"
	"github.com/gogpu/gizmo/drawlist"
)

// GraphicsKey identifies a pooled 2D geometry handle. Draw calls with the
// same color on the same layer share one handle; the layer of a handle is
// fixed when it is created.
type GraphicsKey struct {
	Color uint32 // packed 0xRRGGBBAA
	Layer backend.Layer
}

// Context2D is the 2D draw context of one target.
//
// Draw calls resolve their points into the target's local frame when they
// are issued and are rendered on the next Flush. Lengths (radii, sizes)
// are passed through untransformed.
//
// Context2D is not safe for concurrent use.
type Context2D struct {
	target  Target
	surface backend.Surface
	cfg     Config
	log     *slog.Logger

	scope    scope
	buf      *drawlist.Buffer
	graphics *drawlist.Pool[GraphicsKey, backend.Graphics]
	labels   *drawlist.Pool[string, backend.Label]
	sprites  *drawlist.Pool[string, backend.Sprite]
	scratch  []mgl64.Vec3
	closed   bool
}

// newContext2D creates a context and attaches it to t. A context whose
// surface cannot be created is kept attached so the failure is reported
// only once, and ignores every draw call.
func newContext2D(t Target, o *options) *Context2D {
	c := &Context2D{
		target:   t,
		cfg:      o.config,
		log:      o.log(),
		scope:    newScope(o.config.defaultState()),
		buf:      drawlist.NewBuffer(),
		graphics: drawlist.NewPool[GraphicsKey, backend.Graphics](),
		labels:   drawlist.NewPool[string, backend.Label](),
		sprites:  drawlist.NewPool[string, backend.Sprite](),
	}
	switch {
	case o.surfaces == nil:
		c.log.Warn("gizmo: no 2D surfaces configured, 2D gizmos disabled", "target", t.ID())
	default:
		s, err := o.surfaces.NewSurface(t)
		if err != nil {
			c.log.Warn("gizmo: 2D surface unavailable, 2D gizmos disabled", "target", t.ID(), "err", err)
			break
		}
		c.surface = s
	}
	t.Attach(c)
	c.log.Debug("gizmo: 2D context created", "target", t.ID())
	return c
}

// Available reports whether draw calls on c have any effect.
func (c *Context2D) Available() bool {
	return c.surface != nil && !c.closed
}

// Target returns the object c is attached to.
func (c *Context2D) Target() Target { return c.target }

// State returns the state the next draw call will capture.
func (c *Context2D) State() State { return c.scope.cur }

// Pending returns the number of draw calls waiting for the next Flush.
func (c *Context2D) Pending() int { return c.buf.Len() }

// BeginColor sets the color of subsequent draw calls until EndColor.
func (c *Context2D) BeginColor(col gg.RGBA) { c.scope.beginColor(col) }

// EndColor restores the color active before the matching BeginColor.
func (c *Context2D) EndColor() { c.scope.endColor() }

// BeginLayer sets the layer of subsequent draw calls until EndLayer.
func (c *Context2D) BeginLayer(l backend.Layer) { c.scope.beginLayer(l) }

// EndLayer restores the layer active before the matching BeginLayer.
func (c *Context2D) EndLayer() { c.scope.endLayer() }

// BeginLocalPosition makes subsequent draw calls take target-local points.
func (c *Context2D) BeginLocalPosition() { c.scope.beginSpace(LocalSpace) }

// EndLocalPosition restores the coordinate space active before the
// matching BeginLocalPosition.
func (c *Context2D) EndLocalPosition() { c.scope.endSpace() }

// toLocal returns the transform from the current input space into the
// target's local frame.
func (c *Context2D) toLocal() mgl64.Mat4 {
	if c.scope.cur.Space == LocalSpace {
		return mgl64.Ident4()
	}
	return c.target.WorldMatrix().Inv()
}

// resolve appends pts, converted into the target's local frame, to the
// scratch buffer.
func (c *Context2D) resolve(pts ...mgl64.Vec2) []mgl64.Vec3 {
	m := c.toLocal()
	c.scratch = c.scratch[:0]
	for _, p := range pts {
		c.scratch = append(c.scratch, mgl64.TransformCoordinate(p.Vec3(0), m))
	}
	return c.scratch
}

func (c *Context2D) newGraphics(key GraphicsKey) backend.Graphics {
	g := c.surface.NewGraphics()
	g.SetLayer(key.Layer)
	g.SetLineWidth(c.cfg.LineWidth)
	g.SetColor(colorFromKey(key.Color))
	return g
}

// geometry records a path draw call against the handle of the current
// color and layer.
func (c *Context2D) geometry(typ drawlist.CommandType, flags drawlist.Flags, params [6]float64, pts []mgl64.Vec3) {
	st := c.scope.cur
	ref, _ := c.graphics.GetOrCreate(GraphicsKey{Color: colorKey(st.Color), Layer: st.Layer}, c.newGraphics)
	c.buf.Append(drawlist.Command{
		Type:   typ,
		Flags:  flags,
		Handle: ref,
		Layer:  uint32(st.Layer),
		Color:  st.Color,
		Params: params,
	}, pts...)
}

// DrawLine draws a segment from p1 to p2.
func (c *Context2D) DrawLine(p1, p2 mgl64.Vec2) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdLine, 0, [6]float64{}, c.resolve(p1, p2))
}

// DrawLineList draws a polyline through points, closed back to the first
// point if closed is set. An empty list draws nothing.
func (c *Context2D) DrawLineList(points []mgl64.Vec2, closed bool) {
	if !c.Available() || len(points) == 0 {
		return
	}
	var flags drawlist.Flags
	if closed {
		flags |= drawlist.FlagClosed
	}
	c.geometry(drawlist.CmdLineList, flags, [6]float64{}, c.resolve(points...))
}

// DrawCircle draws the outline of a circle.
func (c *Context2D) DrawCircle(center mgl64.Vec2, radius float64) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdCircle, 0, [6]float64{radius}, c.resolve(center))
}

// DrawSolidCircle draws a filled circle.
func (c *Context2D) DrawSolidCircle(center mgl64.Vec2, radius float64) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdSolidCircle, 0, [6]float64{radius}, c.resolve(center))
}

// DrawRect draws the outline of a width x height rectangle centered on
// center.
func (c *Context2D) DrawRect(center mgl64.Vec2, width, height float64) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdRect, 0, [6]float64{width, height}, c.resolve(center))
}

// DrawSolidRect draws a filled width x height rectangle centered on center.
func (c *Context2D) DrawSolidRect(center mgl64.Vec2, width, height float64) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdSolidRect, 0, [6]float64{width, height}, c.resolve(center))
}

// DrawSolidPolygon fills the closed polygon through points. An empty list
// draws nothing.
func (c *Context2D) DrawSolidPolygon(points []mgl64.Vec2) {
	if !c.Available() || len(points) == 0 {
		return
	}
	c.geometry(drawlist.CmdSolidPolygon, drawlist.FlagClosed, [6]float64{}, c.resolve(points...))
}

// DrawEllipse draws the outline of an axis-aligned ellipse.
func (c *Context2D) DrawEllipse(center mgl64.Vec2, radiusX, radiusY float64) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdEllipse, 0, [6]float64{radiusX, radiusY}, c.resolve(center))
}

// DrawSolidEllipse draws a filled axis-aligned ellipse.
func (c *Context2D) DrawSolidEllipse(center mgl64.Vec2, radiusX, radiusY float64) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdSolidEllipse, 0, [6]float64{radiusX, radiusY}, c.resolve(center))
}

// DrawArc draws an arc from start to end degrees. A counter-clockwise arc
// sweeps with increasing angle.
func (c *Context2D) DrawArc(center mgl64.Vec2, radius, start, end float64, counterClockwise bool) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdArc, arcFlags(counterClockwise), [6]float64{radius, start, end}, c.resolve(center))
}

// DrawSolidArc fills the circular sector between start and end degrees.
func (c *Context2D) DrawSolidArc(center mgl64.Vec2, radius, start, end float64, counterClockwise bool) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdSolidArc, arcFlags(counterClockwise), [6]float64{radius, start, end}, c.resolve(center))
}

func arcFlags(counterClockwise bool) drawlist.Flags {
	if counterClockwise {
		return drawlist.FlagCounterClockwise
	}
	return 0
}

// DrawBezier draws a cubic Bezier curve from p1 to p4 with control points
// p2 and p3.
func (c *Context2D) DrawBezier(p1, p2, p3, p4 mgl64.Vec2) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdBezier, 0, [6]float64{}, c.resolve(p1, p2, p3, p4))
}

// DrawQuadratic draws a quadratic Bezier curve from p1 to p3 with control
// point p2.
func (c *Context2D) DrawQuadratic(p1, p2, p3 mgl64.Vec2) {
	if !c.Available() {
		return
	}
	c.geometry(drawlist.CmdQuadratic, 0, [6]float64{}, c.resolve(p1, p2, p3))
}

// DrawLabel shows text at pos for the current frame. Labels are pooled by
// id: drawing the same id again replaces its content. A zero fontSize uses
// the configured default and a zero scale means 1.
func (c *Context2D) DrawLabel(id, text string, pos mgl64.Vec2, fontSize float64, scale mgl64.Vec2) {
	if !c.Available() {
		return
	}
	if fontSize <= 0 {
		fontSize = c.cfg.FontSize2D
	}
	scale = unitScale(scale)
	st := c.scope.cur
	ref, _ := c.labels.GetOrCreate(id, c.newLabel)
	c.buf.Append(drawlist.Command{
		Type:   drawlist.CmdLabel,
		Handle: ref,
		Layer:  uint32(st.Layer),
		Color:  st.Color,
		Params: [6]float64{fontSize, scale.X(), scale.Y()},
		Text:   norm.NFC.String(text),
	}, c.resolve(pos)...)
}

// DrawSprite shows img at pos for the current frame. Sprites are pooled by
// id. A zero scale means 1 and a zero tint draws the image unmodified.
func (c *Context2D) DrawSprite(id string, img image.Image, pos, scale mgl64.Vec2, tint gg.RGBA) {
	if !c.Available() {
		return
	}
	if tint == (gg.RGBA{}) {
		tint = gg.White
	}
	scale = unitScale(scale)
	ref, _ := c.sprites.GetOrCreate(id, c.newSprite)
	c.buf.Append(drawlist.Command{
		Type:   drawlist.CmdSprite,
		Handle: ref,
		Layer:  uint32(c.scope.cur.Layer),
		Color:  tint,
		Params: [6]float64{scale.X(), scale.Y()},
		Image:  img,
	}, c.resolve(pos)...)
}

func unitScale(s mgl64.Vec2) mgl64.Vec2 {
	if s == (mgl64.Vec2{}) {
		return mgl64.Vec2{1, 1}
	}
	return s
}

func (c *Context2D) newLabel(string) backend.Label {
	l := c.surface.NewLabel()
	l.SetLayer(c.cfg.Layer)
	return l
}

func (c *Context2D) newSprite(string) backend.Sprite {
	s := c.surface.NewSprite()
	s.SetLayer(c.cfg.Layer)
	return s
}

// Flush renders the draw calls issued since the previous Flush and resets
// the scoped state to its defaults.
//
// Labels and sprites not drawn again are blanked and every geometry handle
// is cleared before the buffer is replayed, so nothing from the previous
// frame survives.
func (c *Context2D) Flush() {
	if c.Available() {
		for _, l := range c.labels.All() {
			l.SetText("")
		}
		for _, s := range c.sprites.All() {
			s.SetImage(nil)
		}
		for _, g := range c.graphics.All() {
			g.Clear()
		}
		c.buf.Drain(c.execute)
	} else {
		c.buf.Reset()
	}
	c.scope.reset()
}

func (c *Context2D) execute(cmd *drawlist.Command, pts []mgl64.Vec3) {
	switch cmd.Type {
	case drawlist.CmdLabel:
		l := c.labels.Get(cmd.Handle)
		l.SetLayer(backend.Layer(cmd.Layer))
		l.SetColor(cmd.Color)
		l.SetFontSize(cmd.Params[0])
		l.SetScale(cmd.Params[1], cmd.Params[2])
		l.SetPosition(pts[0])
		l.SetText(cmd.Text)
		return
	case drawlist.CmdSprite:
		s := c.sprites.Get(cmd.Handle)
		s.SetLayer(backend.Layer(cmd.Layer))
		s.SetColor(cmd.Color)
		s.SetScale(cmd.Params[0], cmd.Params[1])
		s.SetPosition(pts[0])
		s.SetImage(cmd.Image)
		return
	}

	g := c.graphics.Get(cmd.Handle)
	p := cmd.Params
	switch cmd.Type {
	case drawlist.CmdLine, drawlist.CmdLineList, drawlist.CmdSolidPolygon:
		g.MoveTo(pts[0].X(), pts[0].Y())
		for _, pt := range pts[1:] {
			g.LineTo(pt.X(), pt.Y())
		}
		if cmd.Flags.Has(drawlist.FlagClosed) {
			g.ClosePath()
		}
	case drawlist.CmdCircle, drawlist.CmdSolidCircle:
		g.Circle(pts[0].X(), pts[0].Y(), p[0])
	case drawlist.CmdRect, drawlist.CmdSolidRect:
		g.Rect(pts[0].X()-p[0]/2, pts[0].Y()-p[1]/2, p[0], p[1])
	case drawlist.CmdEllipse, drawlist.CmdSolidEllipse:
		g.Ellipse(pts[0].X(), pts[0].Y(), p[0], p[1])
	case drawlist.CmdArc:
		g.Arc(pts[0].X(), pts[0].Y(), p[0], mgl64.DegToRad(p[1]), mgl64.DegToRad(p[2]),
			cmd.Flags.Has(drawlist.FlagCounterClockwise))
	case drawlist.CmdSolidArc:
		g.Arc(pts[0].X(), pts[0].Y(), p[0], mgl64.DegToRad(p[1]), mgl64.DegToRad(p[2]),
			cmd.Flags.Has(drawlist.FlagCounterClockwise))
		g.LineTo(pts[0].X(), pts[0].Y())
		g.ClosePath()
	case drawlist.CmdBezier:
		g.MoveTo(pts[0].X(), pts[0].Y())
		g.CubicTo(pts[1].X(), pts[1].Y(), pts[2].X(), pts[2].Y(), pts[3].X(), pts[3].Y())
	case drawlist.CmdQuadratic:
		g.MoveTo(pts[0].X(), pts[0].Y())
		g.QuadraticTo(pts[1].X(), pts[1].Y(), pts[2].X(), pts[2].Y())
	default:
		c.log.Debug("gizmo: unsupported 2D command", "type", cmd.Type)
		return
	}
	if isFilled(cmd.Type) {
		g.Fill()
	} else {
		g.Stroke()
	}
}

func isFilled(t drawlist.CommandType) bool {
	switch t {
	case drawlist.CmdSolidCircle, drawlist.CmdSolidRect, drawlist.CmdSolidPolygon,
		drawlist.CmdSolidEllipse, drawlist.CmdSolidArc:
		return true
	}
	return false
}

// Close releases every pooled handle and the backing surface. Draw calls
// and flushes on a closed context are ignored. Close always returns nil.
func (c *Context2D) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.graphics.Release(func(g backend.Graphics) { g.Release() })
	c.labels.Release(func(l backend.Label) { l.Release() })
	c.sprites.Release(func(s backend.Sprite) { s.Release() })
	if c.surface != nil {
		c.surface.Release()
	}
	c.buf.Reset()
	c.log.Debug("gizmo: 2D context closed", "target", c.target.ID())
	return nil
}
