package raster

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gizmo"
	"github.com/gogpu/gizmo/backend"
)

// Name is the registered name of the raster backend.
const Name = "raster"

func init() {
	backend.Register(Name, func(width, height int) (backend.Backend, error) {
		return New(width, height)
	})
}

// Backend renders 2D surfaces and 3D batches into one image.
//
// Backend is not safe for concurrent use.
type Backend struct {
	dc     *gg.Context
	width  int
	height int
	opts   options

	font  *text.FontSource
	faces map[float64]text.Face

	surfaces []*surface
	view     *View
	frame    image.Image
	released bool
}

var _ backend.Backend = (*Backend)(nil)

// New creates a backend rendering width x height pixel frames.
func New(width, height int, opts ...Option) (*Backend, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	font, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: load default font: %w", err)
	}
	b := &Backend{
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
		opts:   o,
		font:   font,
		faces:  make(map[float64]text.Face),
	}
	b.view = newView(b)
	gizmo.Logger().Debug("raster: backend created", "width", width, "height", height)
	return b, nil
}

// Name returns "raster".
func (b *Backend) Name() string { return Name }

// Viewport returns the 3D view.
func (b *Backend) Viewport() backend.Viewport { return b.view }

// View returns the 3D view with its camera controls.
func (b *Backend) View() *View { return b.view }

// Size returns the frame size in pixels.
func (b *Backend) Size() (width, height int) { return b.width, b.height }

// NewSurface creates a 2D surface whose handles are positioned in the
// local frame of owner.
func (b *Backend) NewSurface(owner backend.Owner) (backend.Surface, error) {
	if b.released {
		return nil, ErrReleased
	}
	s := &surface{backend: b, owner: owner}
	b.surfaces = append(b.surfaces, s)
	return s, nil
}

func (b *Backend) removeSurface(s *surface) {
	b.surfaces = slices.DeleteFunc(b.surfaces, func(x *surface) bool { return x == s })
}

// Render composes the current frame: background, 3D batches, then every
// surface in creation order. Submitted 3D batches are discarded.
func (b *Backend) Render() error {
	if b.released {
		return ErrReleased
	}
	b.dc.ClearWithColor(b.opts.background)
	if err := b.view.render(b.dc); err != nil {
		return fmt.Errorf("raster: render viewport: %w", err)
	}
	for _, s := range b.surfaces {
		if err := s.render(b.dc); err != nil {
			return fmt.Errorf("raster: render surface: %w", err)
		}
	}
	b.frame = b.dc.Image()
	return nil
}

// Image returns the last rendered frame, or nil before the first Render.
func (b *Backend) Image() image.Image { return b.frame }

// SavePNG writes the last rendered frame to path.
func (b *Backend) SavePNG(path string) error {
	if b.released {
		return ErrReleased
	}
	return b.dc.SavePNG(path)
}

// Release frees the canvas and the font. Surfaces created earlier stop
// rendering.
func (b *Backend) Release() {
	if b.released {
		return
	}
	b.released = true
	b.surfaces = nil
	b.view.batches = nil
	if err := b.font.Close(); err != nil {
		gizmo.Logger().Warn("raster: close font", "err", err)
	}
	if err := b.dc.Close(); err != nil {
		gizmo.Logger().Warn("raster: close context", "err", err)
	}
}

// face returns the cached label face of the given pixel size.
func (b *Backend) face(size float64) text.Face {
	if f, ok := b.faces[size]; ok {
		return f
	}
	f := b.font.Face(size)
	b.faces[size] = f
	return f
}

// visible reports whether handles on l are painted.
func (b *Backend) visible(l backend.Layer) bool {
	return b.opts.visible&l != 0
}
