package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Builder tessellates primitives at a fixed resolution.
type Builder struct {
	// Segments is the number of subdivisions around a circle and along a
	// curve.
	Segments int

	// SphereRings is the number of latitude bands of a sphere.
	SphereRings int

	// CapsuleRings is the number of latitude bands of each capsule cap.
	CapsuleRings int

	// DashLength is the length of one dash and of one gap of a dashed
	// line. Non-positive values draw solid lines.
	DashLength float64
}

// DefaultBuilder returns a builder with 32 segments, 16 sphere rings,
// 8 capsule rings and 0.25 dashes.
func DefaultBuilder() Builder {
	return Builder{Segments: 32, SphereRings: 16, CapsuleRings: 8, DashLength: 0.25}
}

// WithSegments returns a copy of b using n segments. A non-positive n keeps
// the segments of b.
func (b Builder) WithSegments(n int) Builder {
	if n > 0 {
		b.Segments = n
	}
	return b
}

// WithSphere returns a copy of b using segments around and rings bands
// for spheres. Non-positive values keep those of b.
func (b Builder) WithSphere(segments, rings int) Builder {
	b = b.WithSegments(segments)
	if rings > 0 {
		b.SphereRings = rings
	}
	return b
}

func (b Builder) segments() int {
	if b.Segments < 3 {
		return 3
	}
	return b.Segments
}

func atLeast(n, lo int) int {
	if n < lo {
		return lo
	}
	return n
}

// planar returns the point at angle a (radians) on the XZ circle of radius
// r around c.
func planar(c mgl64.Vec3, r, a float64) mgl64.Vec3 {
	sin, cos := math.Sincos(a)
	return mgl64.Vec3{c.X() + r*cos, c.Y(), c.Z() + r*sin}
}

// Line appends the segment a-b.
func (b Builder) Line(dst []mgl64.Vec3, p0, p1 mgl64.Vec3) []mgl64.Vec3 {
	return append(dst, p0, p1)
}

// LineList appends a polyline through points, closed back to the first
// point if closed is set. Fewer than two points produce nothing.
func (b Builder) LineList(dst []mgl64.Vec3, points []mgl64.Vec3, closed bool) []mgl64.Vec3 {
	if len(points) < 2 {
		return dst
	}
	for i := 0; i < len(points)-1; i++ {
		dst = append(dst, points[i], points[i+1])
	}
	if closed && len(points) > 2 {
		dst = append(dst, points[len(points)-1], points[0])
	}
	return dst
}

// DashLine appends a dashed segment from p0 to p1. The pattern starts
// with a dash at p0.
func (b Builder) DashLine(dst []mgl64.Vec3, p0, p1 mgl64.Vec3) []mgl64.Vec3 {
	d := p1.Sub(p0)
	length := d.Len()
	if b.DashLength <= 0 || length <= b.DashLength {
		return append(dst, p0, p1)
	}
	dir := d.Mul(1 / length)
	for s := 0.0; s < length; s += 2 * b.DashLength {
		e := math.Min(s+b.DashLength, length)
		dst = append(dst, p0.Add(dir.Mul(s)), p0.Add(dir.Mul(e)))
	}
	return dst
}

// DashLineList appends a dashed polyline.
func (b Builder) DashLineList(dst []mgl64.Vec3, points []mgl64.Vec3, closed bool) []mgl64.Vec3 {
	if len(points) < 2 {
		return dst
	}
	for i := 0; i < len(points)-1; i++ {
		dst = b.DashLine(dst, points[i], points[i+1])
	}
	if closed && len(points) > 2 {
		dst = b.DashLine(dst, points[len(points)-1], points[0])
	}
	return dst
}

// Circle appends the outline of a circle in the XZ plane.
func (b Builder) Circle(dst []mgl64.Vec3, center mgl64.Vec3, radius float64) []mgl64.Vec3 {
	return b.Arc(dst, center, radius, 0, 360)
}

// Arc appends an arc outline from start to end degrees.
func (b Builder) Arc(dst []mgl64.Vec3, center mgl64.Vec3, radius, start, end float64) []mgl64.Vec3 {
	n := b.segments()
	a0 := mgl64.DegToRad(start)
	step := mgl64.DegToRad(end-start) / float64(n)
	prev := planar(center, radius, a0)
	for i := 1; i <= n; i++ {
		p := planar(center, radius, a0+step*float64(i))
		dst = append(dst, prev, p)
		prev = p
	}
	return dst
}

// Sector appends a circular sector from start to end degrees. Wireframe
// sectors are the arc plus both bounding radii.
func (b Builder) Sector(dst []mgl64.Vec3, center mgl64.Vec3, radius, start, end float64, wireframe bool) []mgl64.Vec3 {
	if wireframe {
		dst = b.Arc(dst, center, radius, start, end)
		return append(dst,
			center, planar(center, radius, mgl64.DegToRad(start)),
			center, planar(center, radius, mgl64.DegToRad(end)))
	}
	n := b.segments()
	a0 := mgl64.DegToRad(start)
	step := mgl64.DegToRad(end-start) / float64(n)
	prev := planar(center, radius, a0)
	for i := 1; i <= n; i++ {
		p := planar(center, radius, a0+step*float64(i))
		dst = append(dst, center, prev, p)
		prev = p
	}
	return dst
}

// Disc appends a filled circle. Wireframe discs are the outline plus one
// spoke per segment.
func (b Builder) Disc(dst []mgl64.Vec3, center mgl64.Vec3, radius float64, wireframe bool) []mgl64.Vec3 {
	if !wireframe {
		return b.Sector(dst, center, radius, 0, 360, false)
	}
	n := b.segments()
	for i := 0; i < n; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(n)
		a1 := 2 * math.Pi * float64(i+1) / float64(n)
		p := planar(center, radius, a0)
		dst = append(dst, p, planar(center, radius, a1), center, p)
	}
	return dst
}

// Polygon appends a regular polygon with the given number of sides
// inscribed in a circle of radius. Wireframe polygons are the outline.
func (b Builder) Polygon(dst []mgl64.Vec3, center mgl64.Vec3, radius float64, sides int, wireframe bool) []mgl64.Vec3 {
	sides = atLeast(sides, 3)
	for i := 0; i < sides; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(sides)
		a1 := 2 * math.Pi * float64(i+1) / float64(sides)
		p0, p1 := planar(center, radius, a0), planar(center, radius, a1)
		if wireframe {
			dst = append(dst, p0, p1)
		} else {
			dst = append(dst, center, p0, p1)
		}
	}
	return dst
}

// Quad appends the quadrilateral p0-p1-p2-p3.
func (b Builder) Quad(dst []mgl64.Vec3, p0, p1, p2, p3 mgl64.Vec3, wireframe bool) []mgl64.Vec3 {
	if wireframe {
		return append(dst, p0, p1, p1, p2, p2, p3, p3, p0)
	}
	return append(dst, p0, p1, p2, p0, p2, p3)
}

// Cross appends three axis-aligned segments of length size centered on
// center.
func (b Builder) Cross(dst []mgl64.Vec3, center mgl64.Vec3, size float64) []mgl64.Vec3 {
	h := size / 2
	return append(dst,
		center.Sub(mgl64.Vec3{h, 0, 0}), center.Add(mgl64.Vec3{h, 0, 0}),
		center.Sub(mgl64.Vec3{0, h, 0}), center.Add(mgl64.Vec3{0, h, 0}),
		center.Sub(mgl64.Vec3{0, 0, h}), center.Add(mgl64.Vec3{0, 0, h}),
	)
}

// Octahedron appends an octahedron with its vertices radius away from
// center along each axis.
func (b Builder) Octahedron(dst []mgl64.Vec3, center mgl64.Vec3, radius float64, wireframe bool) []mgl64.Vec3 {
	top := center.Add(mgl64.Vec3{0, radius, 0})
	bottom := center.Sub(mgl64.Vec3{0, radius, 0})
	ring := [4]mgl64.Vec3{
		center.Add(mgl64.Vec3{radius, 0, 0}),
		center.Add(mgl64.Vec3{0, 0, radius}),
		center.Sub(mgl64.Vec3{radius, 0, 0}),
		center.Sub(mgl64.Vec3{0, 0, radius}),
	}
	for i := range ring {
		e0, e1 := ring[i], ring[(i+1)%len(ring)]
		if wireframe {
			dst = append(dst, e0, e1, top, e0, bottom, e0)
		} else {
			dst = append(dst, top, e1, e0, bottom, e0, e1)
		}
	}
	return dst
}

// Box appends an axis-aligned box.
func (b Builder) Box(dst []mgl64.Vec3, center, halfExtents mgl64.Vec3, wireframe bool) []mgl64.Vec3 {
	var c [8]mgl64.Vec3
	for i := range c {
		s := mgl64.Vec3{-1, -1, -1}
		if i&1 != 0 {
			s[0] = 1
		}
		if i&2 != 0 {
			s[1] = 1
		}
		if i&4 != 0 {
			s[2] = 1
		}
		c[i] = center.Add(mgl64.Vec3{s[0] * halfExtents[0], s[1] * halfExtents[1], s[2] * halfExtents[2]})
	}
	if wireframe {
		for _, e := range boxEdges {
			dst = append(dst, c[e[0]], c[e[1]])
		}
		return dst
	}
	for _, f := range boxFaces {
		dst = append(dst, c[f[0]], c[f[1]], c[f[2]], c[f[0]], c[f[2]], c[f[3]])
	}
	return dst
}

// Corner index bits: 1=+X, 2=+Y, 4=+Z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var boxFaces = [6][4]int{
	{0, 2, 3, 1}, // -Z
	{4, 5, 7, 6}, // +Z
	{0, 4, 6, 2}, // -X
	{1, 3, 7, 5}, // +X
	{0, 1, 5, 4}, // -Y
	{2, 6, 7, 3}, // +Y
}

// Sphere appends a UV sphere.
func (b Builder) Sphere(dst []mgl64.Vec3, center mgl64.Vec3, radius float64, wireframe bool) []mgl64.Vec3 {
	rings := atLeast(b.SphereRings, 2)
	rows := make([]row, 0, rings+1)
	for j := 0; j <= rings; j++ {
		sin, cos := math.Sincos(math.Pi * float64(j) / float64(rings))
		if j == 0 || j == rings {
			sin = 0
		}
		rows = append(rows, row{y: radius * cos, r: radius * sin})
	}
	return b.lathe(dst, center, rows, wireframe)
}

// Capsule appends a capsule whose lower hemisphere is centered on base and
// whose upper hemisphere is height above it along +Y.
func (b Builder) Capsule(dst []mgl64.Vec3, base mgl64.Vec3, radius, height float64, wireframe bool) []mgl64.Vec3 {
	rings := atLeast(b.CapsuleRings, 1)
	rows := make([]row, 0, 2*rings+2)
	for j := 0; j <= rings; j++ {
		sin, cos := math.Sincos(math.Pi / 2 * float64(j) / float64(rings))
		rows = append(rows, row{y: height + radius*cos, r: radius * sin})
	}
	for j := 0; j <= rings; j++ {
		sin, cos := math.Sincos(math.Pi/2 + math.Pi/2*float64(j)/float64(rings))
		if j == rings {
			sin = 0
		}
		rows = append(rows, row{y: radius * cos, r: radius * sin})
	}
	return b.lathe(dst, base, rows, wireframe)
}

// Cylinder appends a capped cylinder standing on base and extending height
// along +Y.
func (b Builder) Cylinder(dst []mgl64.Vec3, base mgl64.Vec3, radius, height float64, wireframe bool) []mgl64.Vec3 {
	rows := []row{{y: height, r: 0}, {y: height, r: radius}, {y: 0, r: radius}, {y: 0, r: 0}}
	return b.lathe(dst, base, rows, wireframe)
}

// Cone appends a cone with its base disc centered on base and its apex
// height above it along +Y.
func (b Builder) Cone(dst []mgl64.Vec3, base mgl64.Vec3, radius, height float64, wireframe bool) []mgl64.Vec3 {
	rows := []row{{y: height, r: 0}, {y: 0, r: radius}, {y: 0, r: 0}}
	return b.lathe(dst, base, rows, wireframe)
}

// row is one latitude of a surface of revolution around the Y axis.
type row struct {
	y, r float64
}

// lathe sweeps consecutive rows around the Y axis through center. Rows of
// zero radius collapse to a point and emit no ring.
func (b Builder) lathe(dst []mgl64.Vec3, center mgl64.Vec3, rows []row, wireframe bool) []mgl64.Vec3 {
	n := b.segments()
	at := func(k, i int) mgl64.Vec3 {
		c := center.Add(mgl64.Vec3{0, rows[k].y, 0})
		return planar(c, rows[k].r, 2*math.Pi*float64(i%n)/float64(n))
	}
	if wireframe {
		for k := range rows {
			if rows[k].r == 0 {
				continue
			}
			for i := 0; i < n; i++ {
				dst = append(dst, at(k, i), at(k, i+1))
			}
		}
		for k := 0; k < len(rows)-1; k++ {
			if rows[k].r == 0 && rows[k+1].r == 0 {
				continue
			}
			for i := 0; i < n; i++ {
				dst = append(dst, at(k, i), at(k+1, i))
			}
		}
		return dst
	}
	for k := 0; k < len(rows)-1; k++ {
		for i := 0; i < n; i++ {
			a, bb, c, d := at(k, i), at(k+1, i), at(k+1, i+1), at(k, i+1)
			if rows[k+1].r != 0 {
				dst = append(dst, a, bb, c)
			}
			if rows[k].r != 0 {
				dst = append(dst, a, c, d)
			}
		}
	}
	return dst
}

// Bezier appends a cubic Bezier curve from p0 to p3 with control points p1
// and p2.
func (b Builder) Bezier(dst []mgl64.Vec3, p0, p1, p2, p3 mgl64.Vec3) []mgl64.Vec3 {
	n := b.segments()
	prev := p0
	for i := 1; i <= n; i++ {
		p := mgl64.CubicBezierCurve3D(float64(i)/float64(n), p0, p1, p2, p3)
		dst = append(dst, prev, p)
		prev = p
	}
	return dst
}
