package raster

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gizmo"
	"github.com/gogpu/gizmo/backend"
)

// View is the 3D viewport of a Backend. It is also its geometry renderer.
type View struct {
	backend  *Backend
	camera   Camera
	batches  []backend.Batch
	overlays []*surface
}

var (
	_ backend.Viewport         = (*View)(nil)
	_ backend.GeometryRenderer = (*View)(nil)
)

func newView(b *Backend) *View {
	return &View{backend: b, camera: b.opts.camera}
}

// Camera returns the current camera.
func (v *View) Camera() Camera { return v.camera }

// SetCamera replaces the camera.
func (v *View) SetCamera(c Camera) { v.camera = c }

// CameraRotation returns the world rotation of the camera.
func (v *View) CameraRotation() mgl64.Quat { return v.camera.Rotation() }

// GeometryRenderer returns the view itself, or backend.ErrNoRenderer if
// the backend was created WithoutGeometryRenderer.
func (v *View) GeometryRenderer() (backend.GeometryRenderer, error) {
	if v.backend.opts.noRenderer {
		return nil, backend.ErrNoRenderer
	}
	return v, nil
}

// NewSurface creates an overlay surface: labels and sprites are placed
// at world positions, graphics are drawn in pixels.
func (v *View) NewSurface(owner backend.Owner) (backend.Surface, error) {
	if v.backend.released {
		return nil, ErrReleased
	}
	s := &surface{backend: v.backend, owner: owner, world: true}
	v.overlays = append(v.overlays, s)
	return s, nil
}

func (v *View) removeSurface(s *surface) {
	v.overlays = slices.DeleteFunc(v.overlays, func(x *surface) bool { return x == s })
}

// Submit queues b for the next render. The vertices are copied.
func (v *View) Submit(b backend.Batch) {
	if len(b.Vertices) == 0 {
		return
	}
	b.Vertices = slices.Clone(b.Vertices)
	v.batches = append(v.batches, b)
}

// Pending returns the number of batches waiting for the next render.
func (v *View) Pending() int { return len(v.batches) }

// primitive is one projected line or triangle.
type primitive struct {
	pts   [3][2]float64
	n     int
	depth float64
	color gg.RGBA
}

// render paints depth-tested primitives back to front, then the rest in
// submission order, then the overlay surfaces. The batches are dropped.
func (v *View) render(dc *gg.Context) error {
	b := v.backend
	vp := v.camera.Projection(float64(b.width) / float64(b.height)).Mul4(v.camera.View())

	var sorted, onTop []primitive
	for _, batch := range v.batches {
		prims := v.project(vp, batch)
		if batch.DepthTested() {
			sorted = append(sorted, prims...)
		} else {
			onTop = append(onTop, prims...)
		}
	}
	// Larger normalized depth is farther away.
	slices.SortStableFunc(sorted, func(a, b primitive) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	clear(v.batches)
	v.batches = v.batches[:0]

	for _, p := range sorted {
		if err := v.paint(dc, p); err != nil {
			return err
		}
	}
	for _, p := range onTop {
		if err := v.paint(dc, p); err != nil {
			return err
		}
	}
	for _, s := range v.overlays {
		if err := s.render(dc); err != nil {
			return err
		}
	}
	return nil
}

// project splits batch into primitives. Primitives with a vertex behind
// the camera are skipped.
func (v *View) project(vp mgl64.Mat4, batch backend.Batch) []primitive {
	n := 2
	if batch.Topology == gputypes.PrimitiveTopologyTriangleList {
		n = 3
	}
	col := gg.RGBA{R: batch.Color.R, G: batch.Color.G, B: batch.Color.B, A: batch.Color.A}
	w, h := v.backend.width, v.backend.height

	prims := make([]primitive, 0, len(batch.Vertices)/n)
	skipped := 0
	for i := 0; i+n <= len(batch.Vertices); i += n {
		p := primitive{n: n, color: col}
		ok := true
		for j := range n {
			x, y, z, visible := v.camera.project(vp, batch.Vertices[i+j], w, h)
			if !visible {
				ok = false
				break
			}
			p.pts[j] = [2]float64{x, y}
			p.depth += z / float64(n)
		}
		if !ok {
			skipped++
			continue
		}
		prims = append(prims, p)
	}
	if skipped > 0 {
		gizmo.Logger().Debug("raster: primitives behind camera skipped", "count", skipped)
	}
	return prims
}

func (v *View) paint(dc *gg.Context, p primitive) error {
	dc.SetColor(p.color)
	dc.MoveTo(p.pts[0][0], p.pts[0][1])
	for j := 1; j < p.n; j++ {
		dc.LineTo(p.pts[j][0], p.pts[j][1])
	}
	if p.n == 3 {
		dc.ClosePath()
		return dc.Fill()
	}
	dc.SetLineWidth(v.backend.opts.lineWidth3D)
	return dc.Stroke()
}
