package backend

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Common backend errors.
var (
	// ErrUnknownBackend is returned by New for a name nobody registered.
	ErrUnknownBackend = errors.New("backend: unknown backend")

	// ErrNoRenderer is returned by Viewport.GeometryRenderer when the
	// viewport has no initialized geometry renderer.
	ErrNoRenderer = errors.New("backend: geometry renderer not initialized")
)

// Owner is the scene object a surface is attached to.
type Owner interface {
	// ID returns the stable identifier of the object.
	ID() string

	// WorldMatrix returns the object's local-to-world transform.
	WorldMatrix() mgl64.Mat4
}

// Graphics is a reusable 2D path renderer.
//
// Coordinates are in the local frame of the owner of the surface that
// created the handle. Stroke and Fill consume the current path; the
// resulting shapes stay visible until Clear.
type Graphics interface {
	SetLayer(l Layer)
	SetLineWidth(w float64)
	// SetColor sets both the stroke and fill color.
	SetColor(c gg.RGBA)

	// Clear removes every shape stroked or filled since the last Clear.
	Clear()

	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	// Arc adds a circular arc from angle start to end, in radians.
	// A counter-clockwise arc sweeps with increasing angle.
	Arc(cx, cy, r, start, end float64, counterClockwise bool)
	Circle(cx, cy, r float64)
	Ellipse(cx, cy, rx, ry float64)
	// Rect adds a rectangle with its minimum corner at (x, y).
	Rect(x, y, w, h float64)
	ClosePath()

	Stroke()
	Fill()

	// Release detaches the handle from its surface.
	Release()
}

// Overlay is the part of a label or sprite handle shared by both kinds.
type Overlay interface {
	SetLayer(l Layer)
	SetColor(c gg.RGBA)
	SetScale(sx, sy float64)
	SetPosition(p mgl64.Vec3)
	SetRotation(q mgl64.Quat)
	Release()
}

// Label is a reusable text handle. An empty text hides it.
type Label interface {
	Overlay
	SetText(s string)
	SetFontSize(size float64)
}

// Sprite is a reusable image handle. A nil image hides it.
type Sprite interface {
	Overlay
	SetImage(img image.Image)
}

// Surface is the hidden backing object a draw context attaches to its
// target. Handles created from it are owned by the surface.
type Surface interface {
	NewGraphics() Graphics
	NewLabel() Label
	NewSprite() Sprite

	// Release destroys the surface and every handle it created.
	Release()
}

// SurfaceFactory creates surfaces attached to scene objects.
type SurfaceFactory interface {
	NewSurface(owner Owner) (Surface, error)
}

// Batch is a run of world-space vertices sharing one color and pipeline
// state.
type Batch struct {
	// Topology is gputypes.PrimitiveTopologyLineList or
	// gputypes.PrimitiveTopologyTriangleList.
	Topology gputypes.PrimitiveTopology

	// DepthCompare is gputypes.CompareFunctionLess for depth-tested
	// geometry and gputypes.CompareFunctionAlways otherwise.
	DepthCompare gputypes.CompareFunction

	Color gputypes.Color

	// Vertices is only valid for the duration of Submit.
	Vertices []mgl64.Vec3
}

// DepthTested reports whether the batch is occluded by nearer geometry.
func (b Batch) DepthTested() bool {
	return b.DepthCompare != gputypes.CompareFunctionAlways &&
		b.DepthCompare != gputypes.CompareFunctionUndefined
}

// GeometryRenderer draws immediate 3D geometry for the current frame.
// Submitted batches are displayed once and then discarded by the renderer.
type GeometryRenderer interface {
	Submit(b Batch)
}

// Viewport is a 3D view of the scene.
type Viewport interface {
	SurfaceFactory

	// GeometryRenderer returns ErrNoRenderer if the viewport cannot draw
	// immediate geometry.
	GeometryRenderer() (GeometryRenderer, error)

	// CameraRotation returns the world rotation of the viewport camera.
	CameraRotation() mgl64.Quat
}

// Backend is a complete rendering engine: a 2D canvas and a 3D viewport
// composed into one image.
type Backend interface {
	SurfaceFactory

	// Name returns the registered name of the backend.
	Name() string

	Viewport() Viewport

	// Render composes the current frame.
	Render() error

	// Image returns the last composed frame.
	Image() image.Image

	Release()
}
