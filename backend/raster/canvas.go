package raster

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/gizmo/backend"
)

// surface holds the handles of one owner. Surfaces created by the
// backend position handles in the owner's local 2D frame; surfaces
// created by the viewport position overlays in world space and paint
// graphics in pixels.
type surface struct {
	backend  *Backend
	owner    backend.Owner
	world    bool
	graphics []*graphics
	labels   []*label
	sprites  []*sprite
	released bool
}

var _ backend.Surface = (*surface)(nil)

func (s *surface) NewGraphics() backend.Graphics {
	g := newGraphics(s)
	s.graphics = append(s.graphics, g)
	return g
}

func (s *surface) NewLabel() backend.Label {
	l := &label{overlay: newOverlay(s)}
	s.labels = append(s.labels, l)
	return l
}

func (s *surface) NewSprite() backend.Sprite {
	sp := &sprite{overlay: newOverlay(s)}
	s.sprites = append(s.sprites, sp)
	return sp
}

func (s *surface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.graphics = nil
	s.labels = nil
	s.sprites = nil
	if s.world {
		s.backend.view.removeSurface(s)
	} else {
		s.backend.removeSurface(s)
	}
}

// matrix maps handle coordinates to pixels.
func (s *surface) matrix() gg.Matrix {
	if s.world {
		return gg.Identity()
	}
	return s.backend.screen2D().Multiply(affine2D(s.owner.WorldMatrix()))
}

// point maps an overlay position to pixels.
func (s *surface) point(p mgl64.Vec3, m gg.Matrix) (x, y float64, ok bool) {
	if s.world {
		return s.backend.view.camera.Project(p, s.backend.width, s.backend.height)
	}
	pt := m.TransformPoint(gg.Pt(p.X(), p.Y()))
	return pt.X, pt.Y, true
}

func (s *surface) render(dc *gg.Context) error {
	if s.released {
		return nil
	}
	m := s.matrix()
	for _, g := range s.graphics {
		if !g.released && s.backend.visible(g.layer) {
			if err := g.render(dc, m); err != nil {
				return err
			}
		}
	}
	for _, sp := range s.sprites {
		if !sp.released && sp.img != nil && s.backend.visible(sp.layer) {
			if x, y, ok := s.point(sp.pos, m); ok {
				sp.render(dc, x, y)
			}
		}
	}
	for _, l := range s.labels {
		if !l.released && l.text != "" && s.backend.visible(l.layer) {
			if x, y, ok := s.point(l.pos, m); ok {
				l.render(dc, s.backend, x, y)
			}
		}
	}
	return nil
}

// screen2D maps 2D world units to pixels: origin at the image center,
// y up.
func (b *Backend) screen2D() gg.Matrix {
	ppu := b.opts.pixelsPerUnit
	return gg.Matrix{
		A: ppu, B: 0, C: float64(b.width) / 2,
		D: 0, E: -ppu, F: float64(b.height) / 2,
	}
}

// affine2D extracts the XY affine part of a column-major 3D transform.
func affine2D(m mgl64.Mat4) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[4], C: m[12],
		D: m[1], E: m[5], F: m[13],
	}
}
