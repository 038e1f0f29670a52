package gizmo

import (
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/gizmo/backend"
	"github.com/gogpu/gizmo/drawlist"
	"github.com/gogpu/gizmo/shape"
)

// Context3D is the 3D draw context of one target.
//
// Shapes are tessellated when they are issued: the optional rotation
// (euler degrees around the shape's pivot) is applied first, then points
// given in local space are carried into world space with the target's
// world transform. Batches are submitted to the viewport's geometry
// renderer on the next Flush.
//
// If the viewport has no geometry renderer the context logs one warning
// and ignores every draw call.
//
// Context3D is not safe for concurrent use.
type Context3D struct {
	target   Target
	viewport backend.Viewport
	renderer backend.GeometryRenderer
	overlay  backend.Surface
	cfg      Config
	log      *slog.Logger
	builder  shape.Builder

	scope     scope
	depthTest bool
	buf       *drawlist.Buffer
	labels    *drawlist.Pool[string, backend.Label]
	sprites   *drawlist.Pool[string, backend.Sprite]
	scratch   []mgl64.Vec3
	closed    bool
}

func newContext3D(t Target, o *options) *Context3D {
	c := &Context3D{
		target:    t,
		viewport:  o.viewport,
		cfg:       o.config,
		log:       o.log(),
		builder:   o.config.builder(),
		scope:     newScope(o.config.defaultState()),
		depthTest: o.config.DepthTest,
		buf:       drawlist.NewBuffer(),
		labels:    drawlist.NewPool[string, backend.Label](),
		sprites:   drawlist.NewPool[string, backend.Sprite](),
	}
	c.init()
	t.Attach(c)
	c.log.Debug("gizmo: 3D context created", "target", t.ID(), "available", c.Available())
	return c
}

func (c *Context3D) init() {
	if c.viewport == nil {
		c.log.Warn("gizmo: no viewport configured, 3D gizmos disabled", "target", c.target.ID())
		return
	}
	r, err := c.viewport.GeometryRenderer()
	if err != nil || r == nil {
		c.log.Warn("gizmo: geometry renderer unavailable, 3D gizmos disabled",
			"target", c.target.ID(), "err", err)
		return
	}
	c.renderer = r
	s, err := c.viewport.NewSurface(c.target)
	if err != nil {
		c.log.Warn("gizmo: overlay surface unavailable, 3D labels and sprites disabled",
			"target", c.target.ID(), "err", err)
		return
	}
	c.overlay = s
}

// Available reports whether draw calls on c have any effect.
func (c *Context3D) Available() bool {
	return c.renderer != nil && !c.closed
}

// Target returns the object c is attached to.
func (c *Context3D) Target() Target { return c.target }

// State returns the state the next draw call will capture.
func (c *Context3D) State() State { return c.scope.cur }

// Pending returns the number of draw calls waiting for the next Flush.
func (c *Context3D) Pending() int { return c.buf.Len() }

// BeginColor sets the color of subsequent draw calls until EndColor.
func (c *Context3D) BeginColor(col gg.RGBA) { c.scope.beginColor(col) }

// EndColor restores the color active before the matching BeginColor.
func (c *Context3D) EndColor() { c.scope.endColor() }

// BeginLocalPosition makes subsequent draw calls take target-local points.
func (c *Context3D) BeginLocalPosition() { c.scope.beginSpace(LocalSpace) }

// EndLocalPosition restores the coordinate space active before the
// matching BeginLocalPosition.
func (c *Context3D) EndLocalPosition() { c.scope.endSpace() }

// SetDepthTest sets whether subsequent shapes are occluded by nearer
// geometry. Unlike the scoped state it is kept across frames.
func (c *Context3D) SetDepthTest(on bool) { c.depthTest = on }

// DepthTest reports the current depth-test flag.
func (c *Context3D) DepthTest() bool { return c.depthTest }

// toWorld returns the transform from the current input space into world
// space.
func (c *Context3D) toWorld() mgl64.Mat4 {
	if c.scope.cur.Space == LocalSpace {
		return c.target.WorldMatrix()
	}
	return mgl64.Ident4()
}

// record appends the tessellated scratch buffer, rotated by rot around
// pivot and carried into world space. triangles selects a triangle list.
func (c *Context3D) record(typ drawlist.CommandType, pivot, rot mgl64.Vec3, triangles bool) {
	pts := c.scratch
	if len(pts) == 0 {
		return
	}
	shape.Transform(pts, shape.Rotation(pivot, rot))
	shape.Transform(pts, c.toWorld())

	var flags drawlist.Flags
	if triangles {
		flags |= drawlist.FlagTriangles
	}
	if c.depthTest {
		flags |= drawlist.FlagDepthTest
	}
	st := c.scope.cur
	c.buf.Append(drawlist.Command{
		Type:   typ,
		Flags:  flags,
		Handle: drawlist.InvalidRef,
		Layer:  uint32(st.Layer),
		Color:  st.Color,
	}, pts...)
}

// DrawLine draws a segment from p1 to p2.
func (c *Context3D) DrawLine(p1, p2 mgl64.Vec3) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.Line(c.scratch[:0], p1, p2)
	c.record(drawlist.CmdLine, p1, mgl64.Vec3{}, false)
}

// DrawLineList draws a polyline through points, closed back to the first
// point if closed is set.
func (c *Context3D) DrawLineList(points []mgl64.Vec3, closed bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.LineList(c.scratch[:0], points, closed)
	c.record(drawlist.CmdLineList, mgl64.Vec3{}, mgl64.Vec3{}, false)
}

// DrawDashLine draws a dashed segment from p1 to p2.
func (c *Context3D) DrawDashLine(p1, p2 mgl64.Vec3) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.DashLine(c.scratch[:0], p1, p2)
	c.record(drawlist.CmdDashLine, p1, mgl64.Vec3{}, false)
}

// DrawDashLineList draws a dashed polyline through points.
func (c *Context3D) DrawDashLineList(points []mgl64.Vec3, closed bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.DashLineList(c.scratch[:0], points, closed)
	c.record(drawlist.CmdDashLine, mgl64.Vec3{}, mgl64.Vec3{}, false)
}

// DrawCircle draws a circle outline in the XZ plane, rotated by rot. A
// non-positive segments uses the configured count.
func (c *Context3D) DrawCircle(center mgl64.Vec3, radius float64, segments int, rot mgl64.Vec3) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.WithSegments(segments).Circle(c.scratch[:0], center, radius)
	c.record(drawlist.CmdCircle, center, rot, false)
}

// DrawDisc draws a filled circle in the XZ plane, rotated by rot.
func (c *Context3D) DrawDisc(center mgl64.Vec3, radius float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.WithSegments(segments).Disc(c.scratch[:0], center, radius, wireframe)
	c.record(drawlist.CmdDisc, center, rot, !wireframe)
}

// DrawQuad draws the quadrilateral p1-p2-p3-p4.
func (c *Context3D) DrawQuad(p1, p2, p3, p4 mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.Quad(c.scratch[:0], p1, p2, p3, p4, wireframe)
	c.record(drawlist.CmdQuad, p1, mgl64.Vec3{}, !wireframe)
}

// DrawSphere draws a UV sphere with segmentsX meridians and segmentsY
// latitude bands. Non-positive counts use the configured ones.
func (c *Context3D) DrawSphere(center mgl64.Vec3, radius float64, segmentsX, segmentsY int, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.WithSphere(segmentsX, segmentsY).Sphere(c.scratch[:0], center, radius, wireframe)
	c.record(drawlist.CmdSphere, center, mgl64.Vec3{}, !wireframe)
}

// DrawArc draws an arc outline from start to end degrees in the XZ plane,
// rotated by rot.
func (c *Context3D) DrawArc(center mgl64.Vec3, radius, start, end float64, segments int, rot mgl64.Vec3) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.WithSegments(segments).Arc(c.scratch[:0], center, radius, start, end)
	c.record(drawlist.CmdArc, center, rot, false)
}

// DrawSolidArc draws a circular sector from start to end degrees in the XZ
// plane, rotated by rot.
func (c *Context3D) DrawSolidArc(center mgl64.Vec3, radius, start, end float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.WithSegments(segments).Sector(c.scratch[:0], center, radius, start, end, wireframe)
	c.record(drawlist.CmdSolidArc, center, rot, !wireframe)
}

// DrawPolygon draws a regular polygon with the given number of sides.
func (c *Context3D) DrawPolygon(center mgl64.Vec3, radius float64, sides int, rot mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.Polygon(c.scratch[:0], center, radius, sides, wireframe)
	c.record(drawlist.CmdPolygon, center, rot, !wireframe)
}

// DrawOctahedron draws an octahedron with vertices radius away from center.
func (c *Context3D) DrawOctahedron(center mgl64.Vec3, radius float64, rot mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.Octahedron(c.scratch[:0], center, radius, wireframe)
	c.record(drawlist.CmdOctahedron, center, rot, !wireframe)
}

// DrawCross draws three axis-aligned segments of length size.
func (c *Context3D) DrawCross(center mgl64.Vec3, size float64) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.Cross(c.scratch[:0], center, size)
	c.record(drawlist.CmdCross, center, mgl64.Vec3{}, false)
}

// DrawCapsule draws a capsule whose lower hemisphere is centered on base
// and whose upper hemisphere is height above it.
func (c *Context3D) DrawCapsule(base mgl64.Vec3, radius, height float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.WithSegments(segments).Capsule(c.scratch[:0], base, radius, height, wireframe)
	c.record(drawlist.CmdCapsule, base, rot, !wireframe)
}

// DrawBox draws a box with the given half extents.
func (c *Context3D) DrawBox(center, halfExtents, rot mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.Box(c.scratch[:0], center, halfExtents, wireframe)
	c.record(drawlist.CmdBox, center, rot, !wireframe)
}

// DrawCylinder draws a capped cylinder standing on base.
func (c *Context3D) DrawCylinder(base mgl64.Vec3, radius, height float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.WithSegments(segments).Cylinder(c.scratch[:0], base, radius, height, wireframe)
	c.record(drawlist.CmdCylinder, base, rot, !wireframe)
}

// DrawCone draws a cone with its base disc centered on base.
func (c *Context3D) DrawCone(base mgl64.Vec3, radius, height float64, segments int, rot mgl64.Vec3, wireframe bool) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.WithSegments(segments).Cone(c.scratch[:0], base, radius, height, wireframe)
	c.record(drawlist.CmdCone, base, rot, !wireframe)
}

// DrawBezier draws a cubic Bezier curve from p1 to p4 with control points
// p2 and p3, rotated by rot around p1.
func (c *Context3D) DrawBezier(p1, p2, p3, p4, rot mgl64.Vec3) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.Bezier(c.scratch[:0], p1, p2, p3, p4)
	c.record(drawlist.CmdBezier, p1, rot, false)
}

// DrawSpline draws a curve through knots, marking each knot with a cross
// of knotSize.
func (c *Context3D) DrawSpline(knots []mgl64.Vec3, mode shape.SplineMode, knotSize float64) {
	if !c.Available() {
		return
	}
	c.scratch = c.builder.Spline(c.scratch[:0], knots, mode, knotSize)
	c.record(drawlist.CmdSpline, mgl64.Vec3{}, mgl64.Vec3{}, false)
}

// DrawLabel shows text at pos, facing the camera, for the current frame.
// Labels are pooled by id. A zero fontSize uses the configured default and
// a zero scale means 1.
func (c *Context3D) DrawLabel(id, text string, pos mgl64.Vec3, fontSize, scale float64) {
	if !c.Available() || c.overlay == nil {
		return
	}
	if fontSize <= 0 {
		fontSize = c.cfg.FontSize3D
	}
	if scale == 0 {
		scale = 1
	}
	st := c.scope.cur
	ref, _ := c.labels.GetOrCreate(id, c.newLabel)
	c.buf.Append(drawlist.Command{
		Type:   drawlist.CmdLabel,
		Handle: ref,
		Layer:  uint32(st.Layer),
		Color:  st.Color,
		Params: [6]float64{fontSize, scale, scale},
		Text:   norm.NFC.String(text),
	}, mgl64.TransformCoordinate(pos, c.toWorld()))
}

// DrawSprite shows img at pos, facing the camera, for the current frame.
// Sprites are pooled by id. A zero scale means 1 and a zero tint draws the
// image unmodified.
func (c *Context3D) DrawSprite(id string, img image.Image, pos mgl64.Vec3, scale mgl64.Vec2, tint gg.RGBA) {
	if !c.Available() || c.overlay == nil {
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
	}, mgl64.TransformCoordinate(pos, c.toWorld()))
}

func (c *Context3D) newLabel(string) backend.Label {
	l := c.overlay.NewLabel()
	l.SetLayer(c.cfg.Layer)
	return l
}

func (c *Context3D) newSprite(string) backend.Sprite {
	s := c.overlay.NewSprite()
	s.SetLayer(c.cfg.Layer)
	return s
}

// Flush submits the shapes issued since the previous Flush, updates labels
// and sprites, and resets the scoped state to its defaults. The depth-test
// flag is kept.
func (c *Context3D) Flush() {
	if !c.Available() {
		c.buf.Reset()
		c.scope.reset()
		return
	}
	facing := c.viewport.CameraRotation()
	for _, l := range c.labels.All() {
		l.SetText("")
		l.SetRotation(facing)
	}
	for _, s := range c.sprites.All() {
		s.SetImage(nil)
		s.SetRotation(facing)
	}
	c.buf.Drain(c.execute)
	c.scope.reset()
}

func (c *Context3D) execute(cmd *drawlist.Command, pts []mgl64.Vec3) {
	switch cmd.Type {
	case drawlist.CmdLabel:
		l := c.labels.Get(cmd.Handle)
		l.SetLayer(backend.Layer(cmd.Layer))
		l.SetColor(cmd.Color)
		l.SetFontSize(cmd.Params[0])
		l.SetScale(cmd.Params[1], cmd.Params[2])
		l.SetPosition(pts[0])
		l.SetText(cmd.Text)
	case drawlist.CmdSprite:
		s := c.sprites.Get(cmd.Handle)
		s.SetLayer(backend.Layer(cmd.Layer))
		s.SetColor(cmd.Color)
		s.SetScale(cmd.Params[0], cmd.Params[1])
		s.SetPosition(pts[0])
		s.SetImage(cmd.Image)
	default:
		b := backend.Batch{
			Topology:     gputypes.PrimitiveTopologyLineList,
			DepthCompare: gputypes.CompareFunctionAlways,
			Color:        gpuColor(cmd.Color),
			Vertices:     pts,
		}
		if cmd.Flags.Has(drawlist.FlagTriangles) {
			b.Topology = gputypes.PrimitiveTopologyTriangleList
		}
		if cmd.Flags.Has(drawlist.FlagDepthTest) {
			b.DepthCompare = gputypes.CompareFunctionLess
		}
		c.renderer.Submit(b)
	}
}

// Close releases every pooled handle and the overlay surface. Draw calls
// and flushes on a closed context are ignored. Close always returns nil.
func (c *Context3D) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.labels.Release(func(l backend.Label) { l.Release() })
	c.sprites.Release(func(s backend.Sprite) { s.Release() })
	if c.overlay != nil {
		c.overlay.Release()
	}
	c.buf.Reset()
	c.log.Debug("gizmo: 3D context closed", "target", c.target.ID())
	return nil
}
