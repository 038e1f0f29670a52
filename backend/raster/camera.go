package raster

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3

	// FovY is the vertical field of view in degrees.
	FovY float64

	Near float64
	Far  float64
}

// DefaultCamera looks at the origin from above and to the side.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl64.Vec3{6, 5, 8},
		Target: mgl64.Vec3{0, 0, 0},
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   45,
		Near:   0.1,
		Far:    100,
	}
}

// View returns the world-to-camera transform.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the camera-to-clip transform for the aspect ratio.
func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Rotation returns the world rotation of the camera. Billboards use it to
// face the viewer.
func (c Camera) Rotation() mgl64.Quat {
	return mgl64.QuatLookAtV(c.Eye, c.Target, c.Up)
}

// Project maps p to pixel coordinates in a width x height frame with y
// pointing down. ok is false for points behind the near plane.
func (c Camera) Project(p mgl64.Vec3, width, height int) (x, y float64, ok bool) {
	x, y, _, ok = c.project(c.Projection(float64(width)/float64(height)).Mul4(c.View()), p, width, height)
	return x, y, ok
}

// project maps p through the view-projection matrix vp and also returns
// the normalized depth in [-1, 1].
func (c Camera) project(vp mgl64.Mat4, p mgl64.Vec3, width, height int) (x, y, depth float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= c.Near*1e-3 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * float64(width)
	y = (1 - ndc.Y()) / 2 * float64(height)
	return x, y, ndc.Z(), true
}
