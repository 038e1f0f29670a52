package shape

import "github.com/go-gl/mathgl/mgl64"

// SplineMode selects how knots of a spline are interpolated.
type SplineMode uint8

const (
	// SplineBezier treats knots as consecutive cubic Bezier segments
	// sharing end points: p0 c0 c1 p1 c2 c3 p2 ...
	SplineBezier SplineMode = iota
	// SplineCatmullRom passes a Catmull-Rom curve through every knot.
	SplineCatmullRom
	// SplineLinear connects knots with straight segments.
	SplineLinear
)

var splineModeNames = [...]string{
	SplineBezier:     "bezier",
	SplineCatmullRom: "catmull_rom",
	SplineLinear:     "linear",
}

// String returns the string representation of a SplineMode.
func (m SplineMode) String() string {
	if int(m) < len(splineModeNames) {
		return splineModeNames[m]
	}
	return "unknown"
}

// Spline appends a curve through knots. Each knot is additionally marked
// with a cross of knotSize when knotSize is positive.
func (b Builder) Spline(dst []mgl64.Vec3, knots []mgl64.Vec3, mode SplineMode, knotSize float64) []mgl64.Vec3 {
	if len(knots) < 2 {
		return dst
	}
	switch mode {
	case SplineBezier:
		i := 0
		for ; i+3 < len(knots); i += 3 {
			dst = b.Bezier(dst, knots[i], knots[i+1], knots[i+2], knots[i+3])
		}
		// Trailing knots that do not form a full segment are joined
		// linearly.
		dst = b.LineList(dst, knots[i:], false)
	case SplineCatmullRom:
		dst = b.catmullRom(dst, knots)
	default:
		dst = b.LineList(dst, knots, false)
	}
	if knotSize > 0 {
		for _, k := range knots {
			dst = b.Cross(dst, k, knotSize)
		}
	}
	return dst
}

func (b Builder) catmullRom(dst []mgl64.Vec3, knots []mgl64.Vec3) []mgl64.Vec3 {
	n := b.segments()
	last := len(knots) - 1
	for i := 0; i < last; i++ {
		p0 := knots[max(i-1, 0)]
		p1 := knots[i]
		p2 := knots[i+1]
		p3 := knots[min(i+2, last)]
		prev := p1
		for s := 1; s <= n; s++ {
			p := catmullRomPoint(float64(s)/float64(n), p0, p1, p2, p3)
			dst = append(dst, prev, p)
			prev = p
		}
	}
	return dst
}

// catmullRomPoint evaluates a uniform Catmull-Rom segment between p1 and p2.
func catmullRomPoint(t float64, p0, p1, p2, p3 mgl64.Vec3) mgl64.Vec3 {
	t2 := t * t
	t3 := t2 * t
	a := p1.Mul(2)
	bb := p2.Sub(p0).Mul(t)
	c := p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)
	d := p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(t3)
	return a.Add(bb).Add(c).Add(d).Mul(0.5)
}
