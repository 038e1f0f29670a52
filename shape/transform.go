package shape

import "github.com/go-gl/mathgl/mgl64"

// Rotation returns the transform that rotates around pos by euler angles
// in degrees, applied in X, Y, Z order:
//
//	T(pos) · Rx · Ry · Rz · T(-pos)
func Rotation(pos, eulerDeg mgl64.Vec3) mgl64.Mat4 {
	if eulerDeg == (mgl64.Vec3{}) {
		return mgl64.Ident4()
	}
	m := mgl64.Translate3D(pos.X(), pos.Y(), pos.Z())
	m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(eulerDeg.X())))
	m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(eulerDeg.Y())))
	m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(eulerDeg.Z())))
	return m.Mul4(mgl64.Translate3D(-pos.X(), -pos.Y(), -pos.Z()))
}

// Transform applies m to every point in place.
func Transform(points []mgl64.Vec3, m mgl64.Mat4) {
	if m == mgl64.Ident4() {
		return
	}
	for i, p := range points {
		points[i] = mgl64.TransformCoordinate(p, m)
	}
}
