package drawlist

import (
	"image"

	"github.com/gogpu/gg"
)

// CommandType identifies the kind of a deferred draw command.
// Each command type corresponds to one drawing primitive of a draw context.
type CommandType uint8

const (
	// Path primitives (2D and 3D)
	CmdLine      CommandType = iota // Segment between two points
	CmdLineList  // Polyline, optionally closed
	CmdDashLine  // Dashed segment or polyline
	CmdCircle    // Circle outline
	CmdArc       // Circular arc outline
	CmdBezier    // Cubic Bezier curve
	CmdQuadratic // Quadratic Bezier curve
	CmdSpline    // Spline through knots

	// Filled 2D primitives
	CmdSolidCircle  // Filled circle
	CmdRect         // Rectangle outline
	CmdSolidRect    // Filled rectangle
	CmdSolidPolygon // Filled polygon
	CmdEllipse      // Ellipse outline
	CmdSolidEllipse // Filled ellipse
	CmdSolidArc     // Filled circular sector

	// Volumetric primitives (3D)
	CmdDisc       // Disc
	CmdQuad       // Quadrilateral
	CmdSphere     // UV sphere
	CmdPolygon    // Regular polygon
	CmdOctahedron // Octahedron
	CmdCross      // Axis-aligned cross
	CmdCapsule    // Capsule
	CmdBox        // Box
	CmdCylinder   // Cylinder
	CmdCone       // Cone

	// Overlay commands (non-geometry)
	CmdLabel  // Update a pooled text label
	CmdSprite // Update a pooled sprite
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdLine:         "Line",
	CmdLineList:     "LineList",
	CmdDashLine:     "DashLine",
	CmdCircle:       "Circle",
	CmdArc:          "Arc",
	CmdBezier:       "Bezier",
	CmdQuadratic:    "Quadratic",
	CmdSpline:       "Spline",
	CmdSolidCircle:  "SolidCircle",
	CmdRect:         "Rect",
	CmdSolidRect:    "SolidRect",
	CmdSolidPolygon: "SolidPolygon",
	CmdEllipse:      "Ellipse",
	CmdSolidEllipse: "SolidEllipse",
	CmdSolidArc:     "SolidArc",
	CmdDisc:         "Disc",
	CmdQuad:         "Quad",
	CmdSphere:       "Sphere",
	CmdPolygon:      "Polygon",
	CmdOctahedron:   "Octahedron",
	CmdCross:        "Cross",
	CmdCapsule:      "Capsule",
	CmdBox:          "Box",
	CmdCylinder:     "Cylinder",
	CmdCone:         "Cone",
	CmdLabel:        "Label",
	CmdSprite:       "Sprite",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsOverlay reports whether the command mutates a label or sprite handle
// instead of contributing geometry.
func (c CommandType) IsOverlay() bool {
	return c == CmdLabel || c == CmdSprite
}

// Flags are boolean attributes captured with a command.
type Flags uint8

const (
	// FlagClosed closes a polyline back to its first point.
	FlagClosed Flags = 1 << iota
	// FlagCounterClockwise sweeps an arc with increasing angle.
	FlagCounterClockwise
	// FlagWireframe draws a volumetric primitive as edges only.
	FlagWireframe
	// FlagDepthTest makes the primitive occlude and be occluded by scene geometry.
	FlagDepthTest
	// FlagTriangles marks the command's points as a triangle list
	// (three points per triangle). Without it, points form a line list.
	FlagTriangles
)

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Ref is a reference to a handle in a [Pool].
type Ref uint32

// InvalidRef is the sentinel value for a reference that points nowhere.
const InvalidRef = ^Ref(0)

// IsValid returns true if the reference is not InvalidRef.
func (r Ref) IsValid() bool {
	return r != InvalidRef
}

// Span addresses a run of points in a [Buffer]'s point arena.
type Span struct {
	Offset uint32
	Len    uint32
}

// Command is a deferred draw operation. All state a command depends on is
// resolved when it is recorded: later changes to the draw context's color,
// layer or coordinate space do not affect commands already in the buffer.
//
// Params meaning depends on Type:
//
//	Circle, SolidCircle:         [0]=radius
//	Rect, SolidRect:             [0]=width [1]=height
//	Ellipse, SolidEllipse:       [0]=radiusX [1]=radiusY
//	Arc, SolidArc (2D):          [0]=radius [1]=start [2]=end (degrees)
//	Label:                       [0]=font size [1]=scaleX [2]=scaleY
//	Sprite:                      [0]=scaleX [1]=scaleY
//
// Volumetric commands carry fully tessellated points and leave Params unused.
type Command struct {
	Type   CommandType
	Flags  Flags
	Handle Ref
	Layer  uint32
	Color  gg.RGBA
	Points Span
	Params [6]float64

	// Text is the label string for CmdLabel.
	Text string
	// Image is the sprite frame for CmdSprite.
	Image image.Image
}
